package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values for the web tier.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Upstream core API.
	APIBaseURL     string `mapstructure:"API_BASE_URL"`
	APITimeoutSecs int    `mapstructure:"API_TIMEOUT_SECS"`

	// Session cookie signing.
	SessionSecret     string `mapstructure:"SESSION_SECRET"`
	SessionCookieName string `mapstructure:"SESSION_COOKIE_NAME"`
	SessionTTLMins    int    `mapstructure:"SESSION_TTL_MINS"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisWizardDB int    `mapstructure:"REDIS_WIZARD_DB"`
	RedisTaskDB   int    `mapstructure:"REDIS_TASK_DB"`

	// Stripe / PayPal checkout. Payment webhooks land upstream, not here,
	// so no webhook secret is configured in this tier.
	StripeKey         string `mapstructure:"STRIPE_KEY"`
	PayPalCheckoutURL string `mapstructure:"PAYPAL_CHECKOUT_URL"`
	CheckoutReturnURL string `mapstructure:"CHECKOUT_RETURN_URL"`

	// Consent catalog.
	ConsentLanguage string `mapstructure:"CONSENT_LANGUAGE"`
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
	viper.SetDefault("API_BASE_URL", "http://localhost:9000")
	viper.SetDefault("API_TIMEOUT_SECS", 30)
	viper.SetDefault("SESSION_COOKIE_NAME", "clarimed_session")
	viper.SetDefault("SESSION_TTL_MINS", 720)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_WIZARD_DB", 1)
	viper.SetDefault("REDIS_TASK_DB", 2)
	viper.SetDefault("PAYPAL_CHECKOUT_URL", "https://www.paypal.com/checkoutnow")
	viper.SetDefault("CHECKOUT_RETURN_URL", "http://localhost:8080/checkout/return")
	viper.SetDefault("CONSENT_LANGUAGE", "it-IT")

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
