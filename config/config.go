package config

import (
	"fmt"
	"net"
	"regexp"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type Config struct {
	DBHost     string `mapstructure:"db_host"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBPort     int    `mapstructure:"db_port"`
	DBName     string `mapstructure:"db_database"`
	DBTable    string `mapstructure:"db_table"`
	Port       int    `mapstructure:"port"`
	LogLevel   string `mapstructure:"log_level"`
	LogFormat  string `mapstructure:"log_format"`
	Store      string `mapstructure:"store"`
}

// Load reads the configuration from the process environment. A .env file,
// when present, is expected to have been loaded already (godotenv/autoload).
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	// Every key needs a default, otherwise Unmarshal never asks the env for it.
	v.SetDefault("db_host", "127.0.0.1")
	v.SetDefault("db_user", "root")
	v.SetDefault("db_password", "")
	v.SetDefault("db_port", 3306)
	v.SetDefault("db_database", "school_management")
	v.SetDefault("db_table", "school_db")
	v.SetDefault("port", 3000)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("store", "mysql")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.DBPort <= 0 || c.DBPort > 65535 {
		return fmt.Errorf("invalid DB_PORT %d", c.DBPort)
	}
	if c.DBName == "" {
		return fmt.Errorf("DB_DATABASE is required")
	}
	if !tableNamePattern.MatchString(c.DBTable) {
		return fmt.Errorf("invalid DB_TABLE %q", c.DBTable)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q (want json or console)", c.LogFormat)
	}
	switch c.Store {
	case "mysql", "memory":
	default:
		return fmt.Errorf("unknown STORE %q (want mysql or memory)", c.Store)
	}
	return nil
}

// DSN returns the go-sql-driver connection string.
func (c *Config) DSN() string {
	mc := mysql.NewConfig()
	mc.User = c.DBUser
	mc.Passwd = c.DBPassword
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort))
	mc.DBName = c.DBName
	return mc.FormatDSN()
}

func (c *Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.Port)
}
