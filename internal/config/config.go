package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Global
		Log
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Log struct {
		Level string // zerolog level name: debug, info, warn, error
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("log_level", "info")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Log: Log{
			Level: v.GetString("LOG_LEVEL"),
		},
	}
}
