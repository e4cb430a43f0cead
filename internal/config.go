package internal

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Transfer TransferConfig `mapstructure:"transfer"`
	Sessions SessionsConfig `mapstructure:"sessions"`
}

type ServerConfig struct {
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type TransferConfig struct {
	ChunkSize      int64  `mapstructure:"chunk_size"`
	MaxFileSize    int64  `mapstructure:"max_file_size"`
	MaxParts       int    `mapstructure:"max_parts"`
	WorkerPoolSize int    `mapstructure:"worker_pool_size"`
	UploadDir      string `mapstructure:"upload_dir"`
}

type SessionsConfig struct {
	Database   string `mapstructure:"database"`
	Migrations string `mapstructure:"migrations"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile("files/config.yaml")

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("transfer.chunk_size", 1*1024*1024)
	viper.SetDefault("transfer.max_file_size", 100*1024*1024)
	viper.SetDefault("transfer.max_parts", 100)
	viper.SetDefault("transfer.worker_pool_size", 5)
	viper.SetDefault("transfer.upload_dir", "files/uploads")
	viper.SetDefault("sessions.database", "files/partflow.db")
	viper.SetDefault("sessions.migrations", "file://files/migrations")

	if err := viper.ReadInConfig(); err != nil {
		// Defaults cover a missing config file; anything else is real.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &config, nil
}
