package tmapp

import (
	"context"

	"tmcalc/core/melting"
	"tmcalc/internal/cache"
	"tmcalc/internal/config"
	"tmcalc/internal/metrics"
	"tmcalc/internal/server"
)

func (a *app) serve(ctx context.Context, c config.Config) error {
	log, err := a.logger(c)
	if err != nil {
		return err
	}
	var store cache.Cache = cache.Nop{}
	if c.Serve.Redis != "" {
		r := cache.NewRedis(c.Serve.Redis, "", 0,
			cache.WithPrefix(c.Serve.RedisPrefix),
			cache.WithTTL(c.Serve.CacheTTL))
		defer func() { _ = r.Close() }()
		if err := r.Ping(ctx); err != nil {
			return err
		}
		log.Info("result cache", "redis", c.Serve.Redis, "ttl", c.Serve.CacheTTL)
		store = r
	}
	h := server.NewHandler(&server.Server{
		Engine:  melting.NewEngine(c.DataDir),
		Base:    c,
		Cache:   store,
		Metrics: metrics.New(),
		Logger:  log,
	})
	err = server.ListenAndServe(ctx, c.Serve.Addr, h, log, nil)
	if err == nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
