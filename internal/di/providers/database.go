package providers

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/chatlabs/chat-api/internal/config"
	"github.com/chatlabs/chat-api/internal/logger"
	"github.com/chatlabs/chat-api/internal/store/sqlstore"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlstore.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore opens the configured database and applies the schema.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	var (
		db  *sqlstore.Store
		err error
	)

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err = sqlstore.OpenPostgres(cfg.Database.PostgresDSN(), cfg.Database.MaxOpenConns, log.Logger)
		if err != nil {
			return nil, err
		}
		log.Info("Database initialized", "driver", cfg.Database.Driver, "host", cfg.Database.Host)

	case config.DriverSQLite:
		db, err = sqlstore.OpenSQLite(cfg.Database.Path, log.Logger)
		if err != nil {
			return nil, err
		}
		log.Info("Database initialized", "driver", cfg.Database.Driver, "path", cfg.Database.Path)

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	return &StoreHandle{Store: db}, nil
}
