package app

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("expected HTTP addr :8080, got %s", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("expected metrics addr :9090, got %s", cfg.MetricsAddr)
	}
	if cfg.PostgresDSN != "" {
		t.Errorf("expected empty postgres dsn, got %s", cfg.PostgresDSN)
	}
	if len(cfg.KafkaBrokers) != 0 {
		t.Errorf("expected no kafka brokers, got %v", cfg.KafkaBrokers)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("ORDERS_HTTP_ADDR", ":8181")
	t.Setenv("ORDERS_METRICS_ADDR", ":9191")
	t.Setenv("ORDERS_POSTGRES_DSN", "postgres://orders:orders@db:5432/orders")
	t.Setenv("ORDERS_KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092 ,")
	t.Setenv("ORDERS_KAFKA_TOPIC", "orders.custom")

	cfg := LoadFromEnv()

	if cfg.HTTPAddr != ":8181" {
		t.Errorf("expected :8181, got %s", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != ":9191" {
		t.Errorf("expected :9191, got %s", cfg.MetricsAddr)
	}
	if cfg.PostgresDSN != "postgres://orders:orders@db:5432/orders" {
		t.Errorf("unexpected dsn: %s", cfg.PostgresDSN)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[0] != "kafka-1:9092" || cfg.KafkaBrokers[1] != "kafka-2:9092" {
		t.Errorf("unexpected brokers: %v", cfg.KafkaBrokers)
	}
	if cfg.KafkaTopic != "orders.custom" {
		t.Errorf("unexpected topic: %s", cfg.KafkaTopic)
	}
}

func TestLoadFromEnv_BlankValuesIgnored(t *testing.T) {
	t.Setenv("ORDERS_HTTP_ADDR", "   ")

	cfg := LoadFromEnv()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("blank env value must keep default, got %s", cfg.HTTPAddr)
	}
}
