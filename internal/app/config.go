package app

import (
	"os"
	"strings"
)

// Config описывает настройки запуска приложения.
// PostgresDSN пустой — работаем на in-memory хранилище (dev/demo режим).
// KafkaBrokers пустой — события заказов не публикуются.
type Config struct {
	HTTPAddr     string
	MetricsAddr  string
	PostgresDSN  string
	KafkaBrokers []string
	KafkaTopic   string
}

// DefaultConfig возвращает базовые адреса для API и HTTP-метрик.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
	}
}

// LoadFromEnv накладывает переменные окружения ORDERS_* поверх дефолтов.
func LoadFromEnv() Config {
	cfg := DefaultConfig()
	if v := strings.TrimSpace(os.Getenv("ORDERS_HTTP_ADDR")); v != "" {
		cfg.HTTPAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("ORDERS_METRICS_ADDR")); v != "" {
		cfg.MetricsAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("ORDERS_POSTGRES_DSN")); v != "" {
		cfg.PostgresDSN = v
	}
	if v := strings.TrimSpace(os.Getenv("ORDERS_KAFKA_BROKERS")); v != "" {
		cfg.KafkaBrokers = splitBrokers(v)
	}
	if v := strings.TrimSpace(os.Getenv("ORDERS_KAFKA_TOPIC")); v != "" {
		cfg.KafkaTopic = v
	}
	return cfg
}

func splitBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
