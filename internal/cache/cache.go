// Package cache stores computed results keyed by their normalized request.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"tmcalc/pkg/api"
)

// Cache is a result store. A miss is (zero, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) (api.ResultV1, bool, error)
	Put(ctx context.Context, key string, v api.ResultV1) error
}

// Key is the SHA-256 (hex) of the canonical JSON of r. encoding/json writes
// struct fields in declaration order and map keys sorted, so equal requests
// give equal keys.
func Key(r api.RequestV1) (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) (api.ResultV1, bool, error) {
	return api.ResultV1{}, false, nil
}

func (Nop) Put(context.Context, string, api.ResultV1) error { return nil }
