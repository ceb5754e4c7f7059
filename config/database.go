package config

import (
	"context"
	"fmt"

	"itdocsapi/pkg/logger"
	"itdocsapi/pkg/memsql"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB is the global GORM database instance used throughout the application.
var DB *gorm.DB

var memServer *memsql.Server

// ConnectDB opens the database selected by DB_DRIVER.
func ConnectDB() error {
	dialector, err := dialectorFor(Cfg)
	if err != nil {
		return err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		logger.Errorf("GORM connection failed: %v", err)
		return fmt.Errorf("failed to open %s database: %w", Cfg.DBDriver, err)
	}
	logger.Infof("GORM connected successfully using driver %s", Cfg.DBDriver)

	DB = db
	return nil
}

func dialectorFor(c AppConfig) (gorm.Dialector, error) {
	switch c.DBDriver {
	case DriverMySQL:
		logger.Infof("Connecting to database %s@%s:%d/%s", c.DBUser, c.DBHost, c.DBPort, c.DBName)
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
		return mysql.Open(dsn), nil
	case DriverPostgres:
		logger.Infof("Connecting to database %s@%s:%d/%s", c.DBUser, c.DBHost, c.DBPort, c.DBName)
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName)
		return postgres.Open(dsn), nil
	case DriverSQLite:
		logger.Infof("Opening sqlite database %s", c.DBPath)
		return sqlite.Open(c.DBPath), nil
	case DriverMemory:
		srv, err := memsql.Start(context.Background(), c.DBName)
		if err != nil {
			return nil, fmt.Errorf("failed to start in-memory database: %w", err)
		}
		memServer = srv
		logger.Warnf("Using in-memory database %s, data is lost on shutdown", c.DBName)
		return mysql.Open(srv.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
}

// CloseDB closes the connection pool and the embedded server, if any.
func CloseDB() error {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warnf("Failed to close database pool: %v", err)
			}
		}
	}
	if memServer != nil {
		return memServer.Close()
	}
	return nil
}
