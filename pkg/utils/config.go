package utils

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Order    OrderConfig
	Session  SessionConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type StorageConfig struct {
	Driver string // sqlite, postgres, memory
	Path   string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type OrderConfig struct {
	APIURL          string
	Timeout         time.Duration
	FallbackDelay   time.Duration
	ReceiverEnabled bool
	// Secret signs the bearer token sent with each order. Empty disables
	// signing on the client and the token check on the receiver.
	Secret string
}

type SessionConfig struct {
	PreserveCartOnLogout bool
	BcryptCost           int
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "art-shop")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("STORAGE_DRIVER", "sqlite")
	v.SetDefault("STORAGE_PATH", "data/art-shop.db")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("ORDER_API_URL", "http://localhost:8080")
	v.SetDefault("ORDER_API_TIMEOUT_SECONDS", 10)
	v.SetDefault("ORDER_FALLBACK_DELAY_MS", 800)
	v.SetDefault("ORDER_RECEIVER_ENABLED", true)
	v.SetDefault("PRESERVE_CART_ON_LOGOUT", false)
	v.SetDefault("BCRYPT_COST", 10)

	// .env bersifat opsional, env var tetap dipakai
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Storage: StorageConfig{
			Driver: v.GetString("STORAGE_DRIVER"),
			Path:   v.GetString("STORAGE_PATH"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Order: OrderConfig{
			APIURL:          v.GetString("ORDER_API_URL"),
			Timeout:         time.Duration(v.GetInt("ORDER_API_TIMEOUT_SECONDS")) * time.Second,
			FallbackDelay:   time.Duration(v.GetInt("ORDER_FALLBACK_DELAY_MS")) * time.Millisecond,
			ReceiverEnabled: v.GetBool("ORDER_RECEIVER_ENABLED"),
			Secret:          v.GetString("ORDER_API_SECRET"),
		},
		Session: SessionConfig{
			PreserveCartOnLogout: v.GetBool("PRESERVE_CART_ON_LOGOUT"),
			BcryptCost:           v.GetInt("BCRYPT_COST"),
		},
	}

	return config, nil
}
