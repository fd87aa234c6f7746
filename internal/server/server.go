// Package server is the HTTP API of tmcalc.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tmcalc/core/duplex"
	"tmcalc/core/melting"
	"tmcalc/core/thermo"
	"tmcalc/core/trace"
	"tmcalc/internal/cache"
	"tmcalc/internal/cmdutil"
	"tmcalc/internal/config"
	"tmcalc/internal/logging"
	"tmcalc/internal/metrics"
	"tmcalc/internal/writers"
	"tmcalc/pkg/api"
)

// maxBody bounds a request body.
const maxBody = 1 << 20

// Server handles the API routes. Base supplies every setting a request
// leaves empty.
type Server struct {
	Engine  *melting.Engine
	Base    config.Config
	Cache   cache.Cache
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// NewHandler routes:
//
//	POST /v1/tm       RequestV1 → ResultV1
//	GET  /v1/methods  ?hybridization=dnadna
//	GET  /healthz
//	GET  /metrics
func NewHandler(s *Server) http.Handler {
	if s.Cache == nil {
		s.Cache = cache.Nop{}
	}
	if s.Metrics == nil {
		s.Metrics = metrics.New()
	}
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}
	if s.Engine == nil {
		s.Engine = melting.NewEngine(s.Base.DataDir)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/v1/tm", s.compute)
	r.Get("/v1/methods", s.methods)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	return r
}

func (s *Server) compute(w http.ResponseWriter, r *http.Request) {
	var req api.RequestV1
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, api.ErrorV1{Error: "invalid request body: " + err.Error(), Kind: cmdutil.KindInvalidOption})
		return
	}
	cfg, err := s.Base.WithRequest(req)
	if err != nil {
		s.fail(w, err)
		return
	}
	opts, err := cfg.Options()
	if err != nil {
		s.fail(w, err)
		return
	}
	key, err := cache.Key(config.Request(opts, cfg.Solution, cfg.Trace))
	if err != nil {
		s.fail(w, err)
		return
	}
	if v, ok, err := s.Cache.Get(r.Context(), key); err != nil {
		s.Logger.Warn("cache lookup failed", "error", err)
	} else if ok {
		w.Header().Set("X-Cache", "hit")
		writeJSON(w, http.StatusOK, v)
		return
	}

	start := time.Now()
	rep, err := s.Engine.Compute(opts, trace.New(s.Logger))
	s.Metrics.Observe(opts.Mode, rep, err, time.Since(start))
	if err != nil {
		s.fail(w, err)
		return
	}
	v := writers.ToAPIResult("", rep, cfg.Trace)
	if err := s.Cache.Put(r.Context(), key, v); err != nil {
		s.Logger.Warn("cache store failed", "error", err)
	}
	w.Header().Set("X-Cache", "miss")
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) methods(w http.ResponseWriter, r *http.Request) {
	hyb := r.URL.Query().Get("hybridization")
	if hyb == "" {
		hyb = s.Base.Hybridization
	}
	h, err := duplex.ParseHybridization(hyb)
	if err != nil {
		s.fail(w, &melting.OptionError{Option: "hybridization", Msg: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, writers.ToAPIMethods(string(h), melting.Catalog(s.Engine.Registry, h)))
}

// Status maps an error to its HTTP status: 400 for the request's own
// faults, 422 when no model can compute it, 500 otherwise.
func Status(err error) int {
	if cmdutil.IsUsage(err) {
		return http.StatusBadRequest
	}
	switch cmdutil.Classify(err) {
	case cmdutil.KindNoMethod, cmdutil.KindMissingParameter, cmdutil.KindNotApplicable:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := Status(err)
	body := api.ErrorV1{Error: err.Error(), Kind: cmdutil.Classify(err)}
	var na *thermo.MethodNotApplicableError
	if errors.As(err, &na) {
		body.Reasons = na.Reasons
	}
	if status == http.StatusInternalServerError {
		s.Logger.Error("computation failed", "error", err)
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
