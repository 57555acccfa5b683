package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// defaultChatSystemInstruction is the persona applied to chat-path
// generation calls when no instruction is configured.
const defaultChatSystemInstruction = "You are a careful health assistant. " +
	"Offer general wellness guidance grounded in the information provided, " +
	"recommend consulting a clinician for anything serious, and never present " +
	"your answers as a medical diagnosis."

// Load reads configuration from an optional config.yaml, a .env file, and
// environment variables with the GALEN_ prefix. Environment variables take
// precedence over file values. Returns a populated, validated Config.
func Load() (*Config, error) {
	// A .env file is a developer convenience; its absence is not an error.
	_ = godotenv.Load()

	v := viper.New()

	// Defaults. Keys that are env-only (no sensible default) still get an
	// empty default so viper knows about them during Unmarshal.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.url", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 10080)
	v.SetDefault("auth.bcrypt_cost", 0)
	v.SetDefault("llm.project_id", "")
	v.SetDefault("llm.region", "us-central1")
	v.SetDefault("llm.credentials_file", "")
	v.SetDefault("llm.models", []string{"gemini-2.5-pro", "gemini-2.5-flash", "gemini-2.0-flash"})
	v.SetDefault("llm.chat_system_instruction", defaultChatSystemInstruction)
	v.SetDefault("llm.timeout_minutes", 20)
	v.SetDefault("llm.endpoint", "")

	// Optional config file in the working directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables: GALEN_SERVER_PORT maps to server.port.
	v.SetEnvPrefix("GALEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
