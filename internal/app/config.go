package app

import "github.com/vladislavdragonenkov/pizzaria/internal/domain"

// Драйверы хранилища заказов.
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	HTTPAddr    string
	GRPCAddr    string
	MetricsAddr string

	StorageDriver       string
	PostgresDSN         string
	PostgresAutoMigrate bool

	// KafkaBrokers: список через запятую; пустая строка отключает публикацию событий.
	KafkaBrokers string
	KafkaTopic   string

	// FallbackCustomerID записывается в заказы без клиента.
	FallbackCustomerID int64
}

// DefaultConfig возвращает конфигурацию для локального запуска.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:            ":8080",
		GRPCAddr:            ":50051",
		MetricsAddr:         ":9090",
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
		KafkaTopic:          "pizzeria.order.events",
		FallbackCustomerID:  domain.DefaultCustomerID,
	}
}
