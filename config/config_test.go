package config

import (
	"reflect"
	"testing"
)

func TestLoadEnvDefaults(t *testing.T) {
	cfg := LoadEnv()
	if cfg.Server.HTTPPort != ":8080" {
		t.Errorf("HTTPPort = %q", cfg.Server.HTTPPort)
	}
	if cfg.Redis.TreeTTL != 300 {
		t.Errorf("TreeTTL = %d", cfg.Redis.TreeTTL)
	}
	if cfg.Kafka.Enabled {
		t.Error("kafka should be disabled by default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("POSTGRES_MAX_OPEN_CONNS", "25")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("APP_ENV", "production")

	cfg := LoadEnv()
	if cfg.Postgres.MaxOpenConns != 25 {
		t.Errorf("MaxOpenConns = %d", cfg.Postgres.MaxOpenConns)
	}
	if want := []string{"a:9092", "b:9092"}; !reflect.DeepEqual(cfg.Kafka.Brokers, want) {
		t.Errorf("Brokers = %v, want %v", cfg.Kafka.Brokers, want)
	}
	if cfg.Redis.Enabled {
		t.Error("redis should be disabled")
	}
	if cfg.IsDevelopment() {
		t.Error("production should not be development")
	}
}

func TestLoadEnvIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	if got := LoadEnv().Redis.DB; got != 0 {
		t.Errorf("DB = %d, want fallback 0", got)
	}
}
