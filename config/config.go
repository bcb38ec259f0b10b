package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yasminalves16/restaurante/internal/database"

	"go.uber.org/zap"
)

type Config struct {
	Port    string
	DB      DB
	Redis   Redis
	Kafka   Kafka
	CORS    CORS
	Comanda Comanda

	// StatsReconcileInterval enables the periodic stats reconciliation when > 0.
	StatsReconcileInterval time.Duration
}

type DB struct {
	database.Config
}

type Redis struct {
	Enabled    bool
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

type Kafka struct {
	Brokers     []string
	OrdersTopic string
}

func (k Kafka) Enabled() bool { return len(k.Brokers) > 0 }

type CORS struct {
	AllowOrigins []string
}

type Comanda struct {
	// InvalidMesaPolicy is "reject" or "degrade".
	InvalidMesaPolicy string
}

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://localhost:5174",
}

func Load(log *zap.Logger) *Config {
	driver := getEnvDefault("DB_DRIVER", database.DriverPostgres)

	dbCfg := database.Config{
		Driver:       driver,
		MaxOpenConns: atoiDefault(os.Getenv("DB_MAX_OPEN_CONNS"), 20),
		MaxIdleConns: atoiDefault(os.Getenv("DB_MAX_IDLE_CONNS"), 5),
	}
	if driver == database.DriverSQLite {
		dbCfg.SQLitePath = getEnvDefault("SQLITE_PATH", "restaurante.db")
	} else {
		dbCfg.Host = getEnv("DB_HOST", log)
		dbCfg.Port = getEnv("DB_PORT", log)
		dbCfg.User = getEnv("DB_USER", log)
		dbCfg.Password = getEnv("DB_PASSWORD", log)
		dbCfg.Name = getEnv("DB_NAME", log)
		dbCfg.SSLMode = getEnvDefault("DB_SSLMODE", "disable")
	}

	cfg := &Config{
		Port: getEnv("APP_PORT", log),
		DB:   DB{Config: dbCfg},
		Redis: Redis{
			Enabled:    getEnvDefault("REDIS_ENABLED", "false") == "true",
			Addr:       getEnvDefault("REDIS_ADDR", "localhost:6379"),
			Password:   os.Getenv("REDIS_PASSWORD"),
			DB:         atoiDefault(os.Getenv("REDIS_DB"), 0),
			TTLSeconds: atoiDefault(os.Getenv("CACHE_TTL_SECONDS"), 60),
		},
		Kafka: Kafka{
			Brokers:     splitAndTrim(os.Getenv("KAFKA_BROKERS")),
			OrdersTopic: getEnvDefault("KAFKA_TOPIC_ORDERS", "restaurante.orders"),
		},
		CORS: CORS{
			AllowOrigins: splitAndTrim(os.Getenv("CORS_ORIGINS")),
		},
		Comanda: Comanda{
			InvalidMesaPolicy: strings.ToLower(getEnvDefault("COMANDA_INVALID_MESA", "reject")),
		},
		StatsReconcileInterval: parseDurationDefault(os.Getenv("STATS_RECONCILE_INTERVAL"), 0),
	}
	if len(cfg.CORS.AllowOrigins) == 0 {
		cfg.CORS.AllowOrigins = defaultOrigins
	}
	if cfg.Comanda.InvalidMesaPolicy != "reject" && cfg.Comanda.InvalidMesaPolicy != "degrade" {
		log.Warn("unknown COMANDA_INVALID_MESA, falling back to reject", zap.String("value", cfg.Comanda.InvalidMesaPolicy))
		cfg.Comanda.InvalidMesaPolicy = "reject"
	}
	return cfg
}

// LoadDB reads only the database settings; the migrate and maintenance commands do not need the HTTP port.
func LoadDB(log *zap.Logger) DB {
	if getEnvDefault("DB_DRIVER", database.DriverPostgres) == database.DriverSQLite {
		return DB{Config: database.Config{
			Driver:     database.DriverSQLite,
			SQLitePath: getEnvDefault("SQLITE_PATH", "restaurante.db"),
		}}
	}
	return DB{Config: database.Config{
		Driver:   database.DriverPostgres,
		Host:     getEnv("DB_HOST", log),
		Port:     getEnv("DB_PORT", log),
		User:     getEnv("DB_USER", log),
		Password: getEnv("DB_PASSWORD", log),
		Name:     getEnv("DB_NAME", log),
		SSLMode:  getEnvDefault("DB_SSLMODE", "disable"),
	}}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("required environment variable is not set", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return def
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func parseDurationDefault(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}
