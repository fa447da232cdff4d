package kv

import (
	"context"
	"log/slog"
	"time"
)

type Config struct {
	Logger    *slog.Logger
	Directory string
	AppCtx    context.Context
	CacheTTL  time.Duration
}

// KV is the host-provided persistent key-value store the session state is
// serialized into. One process owns the store directory at a time; badger's
// directory lock enforces that in practice.
type KV interface {
	Get(key string) (string, error)
	Set(key string, value string) error
	Delete(key string) error

	Close() error
}
