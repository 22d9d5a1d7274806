package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/wanderstone/heritage/pkg/constants"
)

// Config holds the application configuration loaded from flags, environment
// variables, .env files, and the config file, in that precedence order.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool

	// Config file
	ConfigFile string

	// Pipeline configuration
	RawDir      string
	DatasetPath string
	ServingPath string
	Locales     []string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later via UpdateFromFlags)
// 2. Environment variables (HERITAGE_ prefix)
// 3. .env files
// 4. Config file (~/.heritage.yaml or ./.heritage.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first so Viper's env binding sees them
	loadEnvFiles()

	viper.SetEnvPrefix("HERITAGE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".heritage")
		}
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),

		ConfigFile: viper.ConfigFileUsed(),

		RawDir:      viper.GetString("raw_dir"),
		DatasetPath: viper.GetString("dataset_path"),
		ServingPath: viper.GetString("serving_path"),
		Locales:     viper.GetStringSlice("locales"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	// Defaults for unset paths
	if config.RawDir == "" {
		config.RawDir = constants.DefaultRawDir
	}
	if config.DatasetPath == "" {
		config.DatasetPath = constants.DefaultDatasetPath
	}
	if config.ServingPath == "" {
		config.ServingPath = constants.DefaultServingPath
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags so flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
