package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the explicitly constructed configuration object passed to the
// service constructors. Nothing reads configuration at import time.
type Config struct {
	Port      int            `mapstructure:"port"`
	Env       string         `mapstructure:"env"`
	UploadDir string         `mapstructure:"upload_dir"`
	Database  PostgresConfig `mapstructure:"database"`
	Sentry    SentryConfig   `mapstructure:"sentry"`
}

// IsProd reports whether we're running in production.
func (c Config) IsProd() bool {
	return c.Env == "prod"
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

// ConnectionInfo builds the postgres DSN.
func (pc PostgresConfig) ConnectionInfo() string {
	if pc.Password == "" {
		return fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=disable", pc.Host, pc.Port, pc.User, pc.Name)
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", pc.Host, pc.Port, pc.User, pc.Password, pc.Name)
}

type SentryConfig struct {
	DSN string `mapstructure:"dsn"`
}

// DefaultConfig returns the dev setup used when no config file is present.
func DefaultConfig() Config {
	return Config{
		Port:      1111,
		Env:       "dev",
		UploadDir: "media",
		Database: PostgresConfig{
			Host: "localhost",
			Port: 5432,
			User: "postgres",
			Name: "minitweet",
		},
	}
}

// LoadConfig loads configuration from an optional config.yaml in the working
// directory, with MINITWEET_* environment variables taking precedence
// (e.g. MINITWEET_DATABASE_PASSWORD). In production the file is required
// and the app refuses to start without it.
func LoadConfig(prod bool) Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("minitweet")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("port", defaults.Port)
	v.SetDefault("env", defaults.Env)
	v.SetDefault("upload_dir", defaults.UploadDir)
	v.SetDefault("database.host", defaults.Database.Host)
	v.SetDefault("database.port", defaults.Database.Port)
	v.SetDefault("database.user", defaults.Database.User)
	v.SetDefault("database.password", defaults.Database.Password)
	v.SetDefault("database.name", defaults.Database.Name)
	v.SetDefault("sentry.dsn", "")

	if err := v.ReadInConfig(); err != nil {
		if prod {
			panic(fmt.Errorf("a config.yaml is required in production: %w", err))
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		panic(fmt.Errorf("err unmarshalling config: %w", err))
	}
	return c
}
