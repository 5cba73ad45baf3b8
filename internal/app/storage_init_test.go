package app

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pizzaria/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/pizzaria/internal/health"
)

func TestInitRuntimeDependencies_Memory(t *testing.T) {
	t.Parallel()

	deps, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver:      StorageDriverMemory,
		FallbackCustomerID: 5,
	}, log.WithField("test", "memory-storage"))
	if err != nil {
		t.Fatalf("initRuntimeDependencies(memory) failed: %v", err)
	}
	if deps.orders == nil {
		t.Fatal("orders should not be nil for memory storage")
	}
	if deps.flavors == nil {
		t.Fatal("flavors should not be nil for memory storage")
	}
	if check := deps.storageChecker.Check(context.Background()); check.Status != healthcheck.StatusHealthy {
		t.Fatalf("expected healthy memory storage, got %+v", check)
	}

	ctx := context.Background()
	order := &domain.Order{
		PlacedAt: time.Now().UTC(),
		Status:   domain.OrderStatusPending,
		Total:    decimal.NewFromInt(30),
		Items:    []domain.OrderItem{{Type: "GRANDE", Flavor: domain.Flavor{ID: 1}}},
	}
	if err := deps.orders.Create(ctx, order); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	stored, err := deps.orders.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.CustomerID != 5 {
		t.Fatalf("expected configured fallback customer 5, got %d", stored.CustomerID)
	}
}

func TestInitRuntimeDependencies_EmptyDriverDefaultsToMemory(t *testing.T) {
	t.Parallel()

	deps, err := initRuntimeDependencies(context.Background(), Config{}, log.WithField("test", "default-storage"))
	if err != nil {
		t.Fatalf("initRuntimeDependencies(\"\") failed: %v", err)
	}
	if deps.closeFn != nil {
		t.Fatal("memory storage has nothing to close")
	}
}

func TestInitRuntimeDependencies_PostgresRequiresDSN(t *testing.T) {
	t.Parallel()

	_, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: StorageDriverPostgres,
	}, log.WithField("test", "postgres-missing-dsn"))
	if err == nil {
		t.Fatal("expected error when postgres driver is selected without DSN")
	}
}

func TestInitRuntimeDependencies_UnsupportedDriver(t *testing.T) {
	t.Parallel()

	_, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: "sqlite",
	}, log.WithField("test", "unsupported-driver"))
	if err == nil {
		t.Fatal("expected error for unsupported storage driver")
	}
}
