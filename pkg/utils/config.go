package utils

import (
	"errors"
	"io/fs"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Redis    RedisConfig
	AMQP     AMQPConfig
	Catalog  CatalogConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	ExpiryHours int
}

// RedisConfig is optional; an empty Addr disables the catalog cache.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

// AMQPConfig is optional; an empty URL disables reservation events.
type AMQPConfig struct {
	URL      string
	Exchange string
}

type CatalogConfig struct {
	SeedOnStart   bool
	FeaturedRooms int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "dorm-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CATALOG_CACHE_TTL_SECONDS", 300)
	viper.SetDefault("AMQP_EXCHANGE", "dorm.reservations")
	viper.SetDefault("SEED_ON_START", true)
	viper.SetDefault("FEATURED_ROOMS", 5)

	// .env is optional when everything comes from the environment
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Redis: RedisConfig{
			Addr:       viper.GetString("REDIS_ADDR"),
			Password:   viper.GetString("REDIS_PASSWORD"),
			DB:         viper.GetInt("REDIS_DB"),
			TTLSeconds: viper.GetInt("CATALOG_CACHE_TTL_SECONDS"),
		},
		AMQP: AMQPConfig{
			URL:      viper.GetString("AMQP_URL"),
			Exchange: viper.GetString("AMQP_EXCHANGE"),
		},
		Catalog: CatalogConfig{
			SeedOnStart:   viper.GetBool("SEED_ON_START"),
			FeaturedRooms: viper.GetInt("FEATURED_ROOMS"),
		},
	}

	return config, nil
}
