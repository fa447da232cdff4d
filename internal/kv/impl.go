package kv

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/jellydator/ttlcache/v3"
	pkgerrors "github.com/pkg/errors"
)

var DefaultCacheTTL = 1 * time.Minute

type store struct {
	logger *slog.Logger
	appCtx context.Context

	db    *badger.DB
	cache *ttlcache.Cache[string, string]
}

var _ KV = &store{}

func New(config Config) (KV, error) {

	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	valuesDir := filepath.Join(config.Directory, "values")

	if err := os.MkdirAll(valuesDir, 0755); err != nil {
		return nil, &ErrInternal{Err: err}
	}

	db, err := badger.Open(
		badger.DefaultOptions(valuesDir).
			WithLogger(newLogger(config.Logger.WithGroup("store"))))
	if err != nil {
		return nil, &ErrInternal{Err: pkgerrors.Wrap(err, "open badger store")}
	}

	if config.CacheTTL == 0 {
		config.CacheTTL = DefaultCacheTTL
	}

	cache := ttlcache.New[string, string](
		ttlcache.WithTTL[string, string](config.CacheTTL),
		ttlcache.WithDisableTouchOnHit[string, string](),
	)
	go cache.Start()

	return &store{
		logger: config.Logger.WithGroup("kv"),
		appCtx: config.AppCtx,
		db:     db,
		cache:  cache,
	}, nil
}

func (s *store) Close() error {
	if s.cache != nil {
		s.cache.Stop()
		s.logger.Info("ttl cache stopped")
	}
	if err := s.db.Close(); err != nil {
		s.logger.Error("error closing store db", "error", err)
		return &ErrInternal{Err: err}
	}
	return nil
}

func (s *store) Get(key string) (string, error) {
	if item := s.cache.Get(key); item != nil {
		return item.Value(), nil
	}

	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return &ErrKeyNotFound{Key: key}
			}
			return &ErrInternal{Err: err}
		}
		value, err = item.ValueCopy(nil)
		if err != nil {
			return &ErrInternal{Err: err}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	s.cache.Set(key, string(value), ttlcache.DefaultTTL)
	return string(value), nil
}

func (s *store) Set(key string, value string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(key), []byte(value)); err != nil {
			return &ErrInternal{Err: err}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.cache.Set(key, value, ttlcache.DefaultTTL)
	return nil
}

func (s *store) Delete(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(key)); err != nil {
			return &ErrInternal{Err: err}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.cache.Delete(key)
	return nil
}
