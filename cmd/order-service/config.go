package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pizzaria/internal/app"
)

const (
	envHTTPAddr            = "PIZZARIA_HTTP_ADDR"
	envGRPCAddr            = "PIZZARIA_GRPC_ADDR"
	envMetricsAddr         = "PIZZARIA_METRICS_ADDR"
	envStorageDriver       = "PIZZARIA_STORAGE_DRIVER"
	envPostgresDSN         = "PIZZARIA_POSTGRES_DSN"
	envPostgresAutoMigrate = "PIZZARIA_POSTGRES_AUTO_MIGRATE"
	envKafkaBrokers        = "PIZZARIA_KAFKA_BROKERS"
	envKafkaTopic          = "PIZZARIA_KAFKA_TOPIC"
	envFallbackCustomerID  = "PIZZARIA_FALLBACK_CUSTOMER_ID"
	envLogLevel            = "PIZZARIA_LOG_LEVEL"
)

type envLookup func(string) (string, bool)

// readConfig формирует конфигурацию из окружения процесса и логирует некорректные значения.
func readConfig() app.Config {
	cfg, warnings := readConfigFromEnv(os.LookupEnv)
	for _, w := range warnings {
		log.Warn(w)
	}
	return cfg
}

// readConfigFromEnv накладывает переменные окружения на app.DefaultConfig.
// Некорректное значение не прерывает запуск: остаётся default, а в warnings попадает причина.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string

	setString := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	setString(envHTTPAddr, &cfg.HTTPAddr)
	setString(envGRPCAddr, &cfg.GRPCAddr)
	setString(envMetricsAddr, &cfg.MetricsAddr)
	setString(envPostgresDSN, &cfg.PostgresDSN)
	setString(envKafkaBrokers, &cfg.KafkaBrokers)
	setString(envKafkaTopic, &cfg.KafkaTopic)

	if v, ok := lookup(envStorageDriver); ok && strings.TrimSpace(v) != "" {
		cfg.StorageDriver = strings.ToLower(strings.TrimSpace(v))
	}

	if v, ok := lookup(envPostgresAutoMigrate); ok {
		parsed, err := parseBool(v)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v, using default %t", envPostgresAutoMigrate, err, cfg.PostgresAutoMigrate))
		} else {
			cfg.PostgresAutoMigrate = parsed
		}
	}

	if v, ok := lookup(envFallbackCustomerID); ok {
		parsed, err := parseInt(v, func(v int) bool { return v > 0 }, "must be > 0")
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v, using default %d", envFallbackCustomerID, err, cfg.FallbackCustomerID))
		} else {
			cfg.FallbackCustomerID = int64(parsed)
		}
	}

	return cfg, warnings
}

// logLevelFromEnv возвращает уровень логирования; по умолчанию info.
func logLevelFromEnv(lookup envLookup) (log.Level, error) {
	v, ok := lookup(envLogLevel)
	if !ok || strings.TrimSpace(v) == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(strings.TrimSpace(v))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("%s: %w", envLogLevel, err)
	}
	return level, nil
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool value %q", raw)
	}
}

func parseInt(raw string, valid func(int) bool, rule string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid int value %q", raw)
	}
	if !valid(value) {
		return 0, fmt.Errorf("value %d %s", value, rule)
	}
	return value, nil
}
