package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	IsProduction   bool
	LogLevel       string
	LogFormat      string
	RunMigrations  bool
	MigrationsPath string
	ImportPath     string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("RUN_MIGRATIONS", true)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("IMPORT_PATH", "./data")

	// Defaults < .env file < actual environment variables.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.LogFormat = strings.ToLower(viper.GetString("LOG_FORMAT"))
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		log.Printf("Warning: Invalid value for LOG_FORMAT ('%s'). Defaulting to json.\n", cfg.LogFormat)
		cfg.LogFormat = "json"
	}

	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	if !strings.Contains(cfg.MigrationsPath, "://") {
		cfg.MigrationsPath = "file://" + cfg.MigrationsPath
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.LogLevel = viper.GetString("LOG_LEVEL")
	cfg.RunMigrations = viper.GetBool("RUN_MIGRATIONS")
	cfg.ImportPath = viper.GetString("IMPORT_PATH")

	return cfg, nil
}
