package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Booking session behaviour.
	SessionTTLMinutes int `mapstructure:"SESSION_TTL_MINUTES"`

	// Pricing. TAX_RATE overrides the default consumption tax rate.
	TaxRate  float64 `mapstructure:"TAX_RATE"`
	Currency string  `mapstructure:"CURRENCY"`

	// External collaborators.
	RoomAPIBaseURL  string `mapstructure:"ROOM_API_BASE_URL"`
	OfferAPIBaseURL string `mapstructure:"OFFER_API_BASE_URL"`
	HotelAPIBaseURL string `mapstructure:"HOTEL_API_BASE_URL"`

	// Payment gateway.
	StripeKey string `mapstructure:"STRIPE_KEY"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("TAX_RATE", 0.18)
	viper.SetDefault("CURRENCY", "INR")
	viper.SetDefault("ROOM_API_BASE_URL", "http://localhost:9001")
	viper.SetDefault("OFFER_API_BASE_URL", "http://localhost:9002")
	viper.SetDefault("HOTEL_API_BASE_URL", "http://localhost:9003")
	viper.SetDefault("STRIPE_KEY", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
