package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Supported values for DBDriver
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	GinMode         string        `mapstructure:"gin_mode" validate:"oneof=debug release test"`
	LogLevel        string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat       string        `mapstructure:"log_format" validate:"oneof=json text"`
	DBDriver        string        `mapstructure:"db_driver" validate:"oneof=sqlite mysql postgres memory"`
	DBPath          string        `mapstructure:"db_path" validate:"required_if=DBDriver sqlite"`
	DBHost          string        `mapstructure:"db_host"`
	DBPort          string        `mapstructure:"db_port"`
	DBUser          string        `mapstructure:"db_user"`
	DBPassword      string        `mapstructure:"db_password"`
	DBName          string        `mapstructure:"db_name"`
	DBRecreate      bool          `mapstructure:"db_recreate"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

var defaults = map[string]any{
	"port":             8080,
	"gin_mode":         "debug",
	"log_level":        "info",
	"log_format":       "json",
	"db_driver":        DriverSQLite,
	"db_path":          "./tasks.db",
	"db_host":          "localhost",
	"db_port":          "",
	"db_user":          "taskuser",
	"db_password":      "taskpassword",
	"db_name":          "task_management",
	"db_recreate":      true,
	"shutdown_timeout": "30s",
}

// Load reads the configuration from environment variables, falling back to
// defaults, and validates the result.
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if cfg.DBPort == "" {
		cfg.DBPort = defaultDBPort(cfg.DBDriver)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func defaultDBPort(driver string) string {
	switch driver {
	case DriverMySQL:
		return "3306"
	case DriverPostgres:
		return "5432"
	default:
		return ""
	}
}
