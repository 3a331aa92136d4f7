// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	AI struct {
		Enabled      bool   `mapstructure:"enabled" yaml:"enabled"`
		Model        string `mapstructure:"model" yaml:"model"`
		MaxTextChars int    `mapstructure:"max_text_chars" yaml:"max_text_chars"`
		APIKey       string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Pipeline struct {
		MaxFileSizeMB       int      `mapstructure:"max_file_size_mb" yaml:"max_file_size_mb"`
		AllowedMIMEPrefixes []string `mapstructure:"allowed_mime_prefixes" yaml:"allowed_mime_prefixes"`
	} `mapstructure:"pipeline" yaml:"pipeline"`

	Categories struct {
		File             string `mapstructure:"file" yaml:"file"`
		FallbackCategory string `mapstructure:"fallback_category" yaml:"fallback_category"`
	} `mapstructure:"categories" yaml:"categories"`
}

// MaxFileSizeBytes returns the configured upload ceiling in bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.Pipeline.MaxFileSizeMB) * 1024 * 1024
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.receipt-parser")
	v.AddConfigPath(".receipt-parser")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("RECEIPT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
		// Config file not found or invalid is OK, we'll use defaults and env vars
	}

	// 5. Handle special case for API key (always from env, not prefixed)
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// AI defaults
	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.model", "gemini-1.5-flash")
	v.SetDefault("ai.max_text_chars", 20000)

	// Pipeline defaults
	v.SetDefault("pipeline.max_file_size_mb", 10)
	v.SetDefault("pipeline.allowed_mime_prefixes", []string{"application/pdf", "image/"})

	// Categories defaults: empty file means the built-in category set
	v.SetDefault("categories.file", "")
	v.SetDefault("categories.fallback_category", "Other")
}

// validateConfig validates the loaded configuration
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level '%s'", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format '%s', must be 'text' or 'json'", config.Log.Format)
	}

	if config.AI.MaxTextChars <= 0 {
		return fmt.Errorf("ai.max_text_chars must be positive, got %d", config.AI.MaxTextChars)
	}

	if config.Pipeline.MaxFileSizeMB <= 0 {
		return fmt.Errorf("pipeline.max_file_size_mb must be positive, got %d", config.Pipeline.MaxFileSizeMB)
	}

	if len(config.Pipeline.AllowedMIMEPrefixes) == 0 {
		return fmt.Errorf("pipeline.allowed_mime_prefixes must not be empty")
	}

	return nil
}
