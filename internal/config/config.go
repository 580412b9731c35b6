package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env      string         `mapstructure:"env"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	// JWTSecret signs session tokens. There is no generated fallback: an
	// ephemeral key would invalidate every issued session on restart.
	JWTSecret      string        `mapstructure:"jwt_secret"`
	TokenDuration  time.Duration `mapstructure:"token_duration"`
	LoginRateLimit int           `mapstructure:"login_rate_limit"`
	APIRateLimit   int           `mapstructure:"api_rate_limit"`
	RateWindow     time.Duration `mapstructure:"rate_window"`
	CacheDuration  time.Duration `mapstructure:"cache_duration"`
}

type StorageConfig struct {
	Path                 string   `mapstructure:"path"`
	AllowedLocalPrefixes []string `mapstructure:"allowed_local_prefixes"`
	AllowedExternalHosts []string `mapstructure:"allowed_external_hosts"`
}

func Load() (Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetDefault("env", "dev")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.read_timeout", "10s")
	viper.SetDefault("server.write_timeout", "10s")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("redis.address", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("auth.token_duration", "30m")
	viper.SetDefault("auth.login_rate_limit", 5)
	viper.SetDefault("auth.api_rate_limit", 100)
	viper.SetDefault("auth.rate_window", "1m")
	viper.SetDefault("auth.cache_duration", "1h")
	viper.SetDefault("storage.path", "./uploads")
	viper.SetDefault("storage.allowed_local_prefixes", []string{"/uploads"})

	viper.SetEnvPrefix("dochub")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.Auth.JWTSecret == "" {
		return Config{}, errors.New("auth.jwt_secret is required")
	}

	return cfg, nil
}
