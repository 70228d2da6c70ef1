package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from flags, environment
// variables, .env files, and an optional config file.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool

	// Engine configuration
	StorePath string
	Interval  time.Duration
	Threshold int

	// Demo platform seeds: YAML files of raw records, keyed by platform ID
	// in fetch-precedence order.
	PlatformA string
	PlatformB string
	SeedA     string
	SeedB     string

	// Logging configuration
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (.skubridge.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.SetEnvPrefix("SKUBRIDGE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	viper.SetDefault("store_path", "data/catalog.yaml")
	viper.SetDefault("interval", 5*time.Minute)
	viper.SetDefault("threshold", 10)
	viper.SetDefault("platform_a", "storefront")
	viper.SetDefault("platform_b", "marketplace")

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".skubridge")
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),

		StorePath: viper.GetString("store_path"),
		Interval:  viper.GetDuration("interval"),
		Threshold: viper.GetInt("threshold"),

		PlatformA: viper.GetString("platform_a"),
		PlatformB: viper.GetString("platform_b"),
		SeedA:     viper.GetString("seed_a"),
		SeedB:     viper.GetString("seed_b"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
	}

	return config, nil
}

// loadEnvFiles loads .env files from the working directory, most specific
// first so earlier files win.
func loadEnvFiles() {
	for _, name := range []string{".env.local", ".env"} {
		if _, err := os.Stat(name); err == nil {
			_ = godotenv.Load(name)
		}
	}
}

// getEnvOrDefault returns the environment value or a fallback.
func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
