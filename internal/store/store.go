package store

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/inovacc/pplaces/internal/model"
)

// ErrNoCache is returned when nothing has been persisted yet.
var ErrNoCache = errors.New("no cache found, run scan first")

// CorruptError reports a cache that exists but cannot be decoded.
type CorruptError struct {
	Location string
	Err      error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("cache %s is unreadable: %v", e.Location, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// Store reads and replaces the persisted cache.
type Store interface {
	// Read returns the persisted cache, or ErrNoCache when none exists.
	Read() (model.Cache, error)
	// Write replaces the persisted cache with c.
	Write(c model.Cache) error
	Close() error
}

// Open returns the backend selected by cfg.Cache.Backend.
func Open(cfg model.Config) (Store, error) {
	path := cfg.CacheFile()

	switch cfg.Cache.Backend {
	case model.CacheBackendJSON, "":
		return NewJSON(path), nil
	case model.CacheBackendBolt:
		return NewBolt(path)
	case model.CacheBackendSQLite:
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// Load reads the cache for a scan. Any failure is logged and yields an
// empty cache so a scan can always rebuild it.
func Load(s Store, logger *slog.Logger) model.Cache {
	c, err := s.Read()
	if err == nil {
		return c
	}

	if !errors.Is(err, ErrNoCache) && logger != nil {
		logger.Warn("ignoring unreadable cache", "error", err)
	}

	return model.Cache{}
}

// LoadExisting reads the cache for show and clone. It returns ErrNoCache
// when no cache has been written yet.
func LoadExisting(s Store) (model.Cache, error) {
	c, err := s.Read()
	if err != nil {
		return nil, err
	}

	if c == nil {
		c = model.Cache{}
	}

	return c, nil
}
