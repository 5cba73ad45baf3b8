package app

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pizzaria/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/pizzaria/internal/health"
	"github.com/vladislavdragonenkov/pizzaria/internal/storage/memory"
	"github.com/vladislavdragonenkov/pizzaria/internal/storage/postgres"
)

// runtimeDependencies содержит хранилища, выбранные конфигурацией.
type runtimeDependencies struct {
	orders         domain.OrderRepository
	flavors        domain.FlavorRepository
	storageChecker healthcheck.Checker
	closeFn        func() error
}

func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	if driver == "" {
		driver = StorageDriverMemory
	}

	switch driver {
	case StorageDriverMemory:
		items := memory.NewItemRepository(nil)
		logger.Info("using in-memory order storage")
		return &runtimeDependencies{
			orders:  memory.NewOrderRepository(items, cfg.FallbackCustomerID),
			flavors: items,
			storageChecker: healthcheck.NewSimpleChecker("storage", func(context.Context) error {
				return nil
			}),
		}, nil
	case StorageDriverPostgres:
		if strings.TrimSpace(cfg.PostgresDSN) == "" {
			return nil, fmt.Errorf("postgres storage requires DSN")
		}

		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if cfg.PostgresAutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("apply postgres migrations: %w", err)
			}
		}

		opts := []postgres.Option{}
		if cfg.FallbackCustomerID > 0 {
			opts = append(opts, postgres.WithFallbackCustomerID(cfg.FallbackCustomerID))
		}

		logger.WithField("auto_migrate", cfg.PostgresAutoMigrate).Info("using postgres order storage")
		return &runtimeDependencies{
			orders:         postgres.NewOrderRepository(store, postgres.NewItemRepository(store), opts...),
			flavors:        postgres.NewFlavorRepository(store),
			storageChecker: healthcheck.NewPingChecker("postgres", store),
			closeFn:        store.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func (d *runtimeDependencies) close(logger *log.Entry) {
	if d == nil || d.closeFn == nil {
		return
	}
	if err := d.closeFn(); err != nil {
		logger.WithError(err).Warn("failed to close storage")
	}
}
