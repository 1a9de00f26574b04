package storage

import (
	"fmt"
	"time"

	"github.com/julianstephens/triage/internal/constants"
	"github.com/julianstephens/triage/internal/logger"
	"github.com/julianstephens/triage/internal/storage/memory"
	"github.com/julianstephens/triage/internal/storage/seed"
	"github.com/julianstephens/triage/internal/storage/sqlite"
)

// New returns an uninitialized provider for the named backend.
func New(backend string) (Provider, error) {
	switch backend {
	case constants.BackendMemory, "":
		return memory.NewStore(), nil
	case constants.BackendSQLite:
		return sqlite.NewStore(""), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// Open creates, initializes and seeds a provider. Seed timestamps are
// relative to now.
func Open(backend string, now time.Time) (Provider, error) {
	p, err := New(backend)
	if err != nil {
		return nil, err
	}
	if err := p.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize %s storage: %w", backend, err)
	}
	records := seed.Records(now)
	if err := p.Reset(records); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to seed %s storage: %w", backend, err)
	}
	logger.Debug("Storage ready", "backend", backend, "records", len(records))
	return p, nil
}
