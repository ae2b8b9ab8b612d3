// Package factory builds the configured persistence adapter. The rest of
// the program only ever sees store.Store.
package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/roden1999/money-tracking-app/internal/config"
	"github.com/roden1999/money-tracking-app/internal/store"
	"github.com/roden1999/money-tracking-app/internal/store/postgres"
	"github.com/roden1999/money-tracking-app/internal/store/supabase"
)

// NewStore selects and initializes the backend named in cfg.Backend.
func NewStore(cfg *config.Config, log *zap.SugaredLogger) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		st, err := postgres.New(cfg.Postgres.DSN, log)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
		log.Infow("persistence backend ready", "backend", "postgres")
		return st, nil
	case config.BackendSupabase:
		st, err := supabase.New(cfg.Supabase.URL, cfg.Supabase.Key, log)
		if err != nil {
			return nil, fmt.Errorf("init supabase store: %w", err)
		}
		log.Infow("persistence backend ready", "backend", "supabase")
		return st, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
