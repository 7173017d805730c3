package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/bar-pos/utils"
)

type Config struct {
	Port            string
	GinMode         string
	DBDriver        string
	DBDSN           string
	CORSOrigin      string
	RateLimitRPS    float64
	RateLimitBurst  int
	LogLevel        string
	AMQPURL         string
	InvoiceExchange string
	RestaurantName  string
	CurrencySymbol  string
}

// Load reads .env when present and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		utils.ErrorLogger.Warnf("Warning: .env file could not be loaded: %v", err)
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		DBDriver:        strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBDSN:           getEnv("DB_DSN", "pos.db"),
		CORSOrigin:      getEnv("CORS_ORIGIN", "*"),
		RateLimitRPS:    getFloat("RATE_LIMIT_RPS", 50),
		RateLimitBurst:  getInt("RATE_LIMIT_BURST", 100),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		AMQPURL:         getEnv("AMQP_URL", ""),
		InvoiceExchange: getEnv("INVOICE_EXCHANGE", "invoices"),
		RestaurantName:  getEnv("RESTAURANT_NAME", "Bar POS"),
		CurrencySymbol:  getEnv("CURRENCY_SYMBOL", "$"),
	}
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want sqlite or mysql)", c.DBDriver)
	}
	if c.DBDSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}
	return nil
}

// InitDB opens the configured database with SQL logging routed to logrus.
func InitDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "mysql":
		dialector = mysql.Open(cfg.DBDSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	gormLogger := logger.New(utils.InfoLogger, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger, TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}

	if cfg.DBDriver == "sqlite" {
		// sqlite allows one writer; a single connection keeps transactions from
		// failing with "database is locked"
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return fallback
	}
	return v
}
