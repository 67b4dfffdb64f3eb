package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB          int    `mapstructure:"REDIS_AUTH_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Storefront policy.
	DeliveryFeeCents            int64 `mapstructure:"DELIVERY_FEE_CENTS"`
	CreditCapCents              int64 `mapstructure:"CREDIT_CAP_CENTS"`
	RefundFullOnCancel          bool  `mapstructure:"REFUND_FULL_ON_CANCEL"`
	DeactivateOnForbiddenDelete bool  `mapstructure:"DEACTIVATE_ON_FORBIDDEN_DELETE"`

	// Availability gate.
	GateExemptPaths     []string `mapstructure:"GATE_EXEMPT_PATHS"`
	SiteCacheTTLSeconds int      `mapstructure:"SITE_CACHE_TTL_SECONDS"`
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
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DELIVERY_FEE_CENTS", 50000)
	viper.SetDefault("CREDIT_CAP_CENTS", 5000000)
	viper.SetDefault("REFUND_FULL_ON_CANCEL", true)
	viper.SetDefault("DEACTIVATE_ON_FORBIDDEN_DELETE", false)
	viper.SetDefault("GATE_EXEMPT_PATHS", []string{"/api/admin/", "/static/", "/media/", "/favicon.ico", "/health"})
	viper.SetDefault("SITE_CACHE_TTL_SECONDS", 30)

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
