package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported values of DB_DRIVER.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// AppConfig holds application configuration loaded from environment variables and .env file.
type AppConfig struct {
	Port string

	// Database config
	DBDriver string
	DBHost   string
	DBPort   int
	DBUser   string
	DBPass   string
	DBName   string
	DBPath   string // sqlite file

	// Auth config
	JWTSecret     string
	TokenTTL      time.Duration
	AdminUsername string
	AdminPassword string
	AdminEmail    string

	// RedactSecrets masks credential fields in API responses
	RedactSecrets bool

	// Logging config
	LogLevel      string
	LogFile       string
	LogMaxSize    int // MB
	LogMaxBackups int
	LogMaxAge     int // days
	LogCompress   bool

	ShutdownTimeout time.Duration
}

// Cfg is the global application configuration instance.
var Cfg AppConfig

// LoadConfig loads application configuration from .env file and environment variables.
func LoadConfig() error {
	err := godotenv.Load()
	if err != nil {
		// Use standard log here since logger is not initialized yet
		log.Printf("[WARN] .env file not found or cannot be loaded: %v", err)
	} else {
		log.Printf("[INFO] .env file loaded successfully")
	}

	Cfg = fromEnv()

	log.Printf("[INFO] Config loaded - Driver: %s, DB: %s@%s:%d/%s, LogLevel: %s",
		Cfg.DBDriver, Cfg.DBUser, Cfg.DBHost, Cfg.DBPort, Cfg.DBName, Cfg.LogLevel)
	if Cfg.JWTSecret == defaultJWTSecret {
		log.Printf("[WARN] JWT_SECRET is not set, tokens are signed with the development secret")
	}
	return nil
}

const defaultJWTSecret = "itdocs-dev-secret"

func fromEnv() AppConfig {
	var c AppConfig
	c.Port = getEnv("PORT", "8081")

	c.DBDriver = strings.ToLower(getEnv("DB_DRIVER", DriverMySQL))
	c.DBHost = getEnv("DB_HOST", "127.0.0.1")
	c.DBUser = getEnv("DB_USER", "root")
	c.DBPass = getEnv("DB_PASS", "")
	c.DBName = getEnv("DB_NAME", "itdocs")
	c.DBPort = getEnvInt("DB_PORT", defaultPort(c.DBDriver))
	c.DBPath = getEnv("DB_PATH", "itdocs.db")

	c.JWTSecret = getEnv("JWT_SECRET", defaultJWTSecret)
	c.TokenTTL = time.Duration(getEnvInt("TOKEN_TTL", 24*60)) * time.Minute
	c.AdminUsername = getEnv("ADMIN_USERNAME", "admin")
	c.AdminPassword = getEnv("ADMIN_PASSWORD", "")
	c.AdminEmail = getEnv("ADMIN_EMAIL", "")

	c.RedactSecrets = getEnvBool("REDACT_SECRETS", false)

	c.LogLevel = getEnv("LOG_LEVEL", "INFO")
	c.LogFile = getEnv("LOG_FILE", "")
	c.LogMaxSize = getEnvInt("LOG_MAX_SIZE", 10)
	c.LogMaxBackups = getEnvInt("LOG_MAX_BACKUPS", 3)
	c.LogMaxAge = getEnvInt("LOG_MAX_AGE", 28)
	c.LogCompress = getEnvBool("LOG_COMPRESS", true)

	c.ShutdownTimeout = time.Duration(getEnvInt("SHUTDOWN_TIMEOUT", 10)) * time.Second
	return c
}

func defaultPort(driver string) int {
	if driver == DriverPostgres {
		return 5432
	}
	return 3306
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if boolVal, err := strconv.ParseBool(val); err == nil {
			return boolVal
		}
	}
	return defaultVal
}
