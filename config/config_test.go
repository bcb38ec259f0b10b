package config

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestLoad_SQLiteDefaults(t *testing.T) {
	t.Setenv("APP_PORT", ":8080")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "test.db")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("STATS_RECONCILE_INTERVAL", "15m")
	t.Setenv("COMANDA_INVALID_MESA", "DEGRADE")

	cfg := Load(zap.NewNop())

	if cfg.DB.SQLitePath != "test.db" || cfg.DB.Driver != "sqlite" {
		t.Fatalf("db config mismatch: %+v", cfg.DB)
	}
	if len(cfg.Kafka.Brokers) != 2 || !cfg.Kafka.Enabled() {
		t.Fatalf("brokers mismatch: %v", cfg.Kafka.Brokers)
	}
	if cfg.StatsReconcileInterval != 15*time.Minute {
		t.Fatalf("interval mismatch: %v", cfg.StatsReconcileInterval)
	}
	if cfg.Comanda.InvalidMesaPolicy != "degrade" {
		t.Fatalf("policy mismatch: %s", cfg.Comanda.InvalidMesaPolicy)
	}
	if len(cfg.CORS.AllowOrigins) != len(defaultOrigins) {
		t.Fatalf("expected default origins, got %v", cfg.CORS.AllowOrigins)
	}
	if cfg.Redis.Enabled || cfg.Redis.TTLSeconds != 60 {
		t.Fatalf("redis defaults mismatch: %+v", cfg.Redis)
	}
}

func TestLoad_UnknownPolicyFallsBackToReject(t *testing.T) {
	t.Setenv("APP_PORT", ":8080")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("COMANDA_INVALID_MESA", "whatever")

	if got := Load(zap.NewNop()).Comanda.InvalidMesaPolicy; got != "reject" {
		t.Fatalf("expected reject, got %s", got)
	}
}

func TestLoad_MissingRequiredPanics(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for missing APP_PORT")
		}
	}()
	_ = getEnv("RESTAURANTE_SURELY_UNSET_KEY", zap.NewNop())
}

func TestSplitAndTrim(t *testing.T) {
	if got := splitAndTrim(""); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	got := splitAndTrim(" a , ,b")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected %v", got)
	}
}
