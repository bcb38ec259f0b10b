package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	// SQLitePath is used when Driver is sqlite.
	SQLitePath string

	MaxOpenConns int
	MaxIdleConns int
}

func (c *Config) DSN() string {
	if c.Driver == DriverSQLite {
		return c.SQLitePath + "?_foreign_keys=on&_busy_timeout=5000"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

func dialector(c *Config) gorm.Dialector {
	if c.Driver == DriverSQLite {
		return sqlite.Open(c.DSN())
	}
	return postgres.Open(c.DSN())
}

// Open returns a configured connection without exiting the process on failure.
// TranslateError turns unique violations into gorm.ErrDuplicatedKey for both drivers.
func Open(c *Config, logLevel gormlogger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(dialector(c), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(logLevel),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// sqlite allows one writer; a single connection serializes transactions instead of failing with SQLITE_BUSY.
	if c.Driver == DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	} else {
		if c.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(c.MaxOpenConns)
		}
		if c.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(c.MaxIdleConns)
		}
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	return db, nil
}

func ConnectDB(c *Config, log *zap.Logger) *gorm.DB {
	db, err := Open(c, gormlogger.Warn)
	if err != nil {
		log.Fatal("failed to connect to database", zap.String("driver", c.Driver), zap.Error(err))
	}
	log.Info("database connected", zap.String("driver", c.Driver))
	return db
}

// ConnectDBForMigration logs every statement so migration output shows the applied DDL.
func ConnectDBForMigration(c *Config, log *zap.Logger) *gorm.DB {
	db, err := Open(c, gormlogger.Info)
	if err != nil {
		log.Fatal("failed to connect to database for migration", zap.String("driver", c.Driver), zap.Error(err))
	}
	return db
}

func CloseDB(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("failed to get sql.DB", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Error("failed to close database connection", zap.Error(err))
		return
	}
	log.Info("database connection closed")
}
