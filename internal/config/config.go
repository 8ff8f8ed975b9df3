package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port           int    `mapstructure:"port" default:"8080"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" default:"30"`
	LogLevel       string `mapstructure:"log_level" split_words:"true" default:"info"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host" default:"localhost"`
	Port     int    `mapstructure:"port" default:"5432"`
	User     string `mapstructure:"user" default:"postgres"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name" default:"booking"`
	SSLMode  string `mapstructure:"sslmode" default:"disable"`
}

type RedisConfig struct {
	URL string `mapstructure:"url" default:""`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours" default:"1"`
}

type StorageConfig struct {
	UploadDir string `mapstructure:"upload_dir" split_words:"true" default:"uploads"`
	BaseURL   string `mapstructure:"base_url" split_words:"true" default:"http://localhost:8080"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps" default:"50"`
	Burst int     `mapstructure:"burst" default:"100"`
}

// LoadConfig reads config.yaml when present and falls back to
// environment variables otherwise.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		return loadFromEnv()
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func loadFromEnv() (*Config, error) {
	var config Config
	if err := envconfig.Process("booking", &config); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}
	return &config, nil
}
