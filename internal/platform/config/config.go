package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                      string
	DatabaseURL               string
	Environment               string
	MigrationsDir             string
	RunMigrations             bool
	RunSeed                   bool
	MaxBodyBytes              int64
	RateLimitPerMinute        int
	MetricsEnabled            bool
	EmployeeDefaultStatus     string
	DocumentTypeDefaultStatus string
	EmployeePageSize          int
	DocumentTypePageSize      int
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:                      getEnv("APP_ADDR", ":8080"),
		DatabaseURL:               getEnv("DATABASE_URL", ""),
		Environment:               getEnv("APP_ENV", "development"),
		MigrationsDir:             getEnv("MIGRATIONS_DIR", "migrations"),
		RunMigrations:             getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:                   getEnvBool("RUN_SEED", true),
		MaxBodyBytes:              int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute:        getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		MetricsEnabled:            getEnvBool("METRICS_ENABLED", true),
		EmployeeDefaultStatus:     getEnv("EMPLOYEE_DEFAULT_STATUS", "all"),
		DocumentTypeDefaultStatus: getEnv("DOCTYPE_DEFAULT_STATUS", "active"),
		EmployeePageSize:          getEnvInt("EMPLOYEE_PAGE_SIZE", 20),
		DocumentTypePageSize:      getEnvInt("DOCTYPE_PAGE_SIZE", 10),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if !isStatusFilter(c.EmployeeDefaultStatus) {
		return fmt.Errorf("EMPLOYEE_DEFAULT_STATUS must be one of active, inactive, all")
	}
	if !isStatusFilter(c.DocumentTypeDefaultStatus) {
		return fmt.Errorf("DOCTYPE_DEFAULT_STATUS must be one of active, inactive, all")
	}
	if c.EmployeePageSize <= 0 || c.DocumentTypePageSize <= 0 {
		return fmt.Errorf("page sizes must be positive")
	}
	return nil
}

func isStatusFilter(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "active", "inactive", "all":
		return true
	}
	return false
}
