package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	// BcryptCost selects the bcrypt work factor for password hashing.
	// Zero means the bcrypt library default.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"omitempty,gte=4,lte=31"`
}

// LLMConfig contains the settings for the upstream generation service.
type LLMConfig struct {
	// ProjectID is the Google Cloud project the models are invoked under.
	// Its absence is logged at startup but is not fatal; calls will fail
	// upstream instead.
	ProjectID string `mapstructure:"project_id"`

	// Region is the deployment region substituted into the endpoint URL.
	Region string `mapstructure:"region" validate:"required"`

	// CredentialsFile is an optional path to a service-account JSON key.
	// When empty, ambient application-default credentials are used.
	CredentialsFile string `mapstructure:"credentials_file"`

	// Models is the ordered candidate list, most capable first. The
	// invoker tries each in order until one succeeds.
	Models []string `mapstructure:"models" validate:"required,min=1,dive,required"`

	// ChatSystemInstruction is prepended (as the systemInstruction field)
	// to chat-path generation calls only.
	ChatSystemInstruction string `mapstructure:"chat_system_instruction"`

	// TimeoutMinutes bounds each candidate attempt. Generation latency is
	// unpredictable, so the default is generous.
	TimeoutMinutes int `mapstructure:"timeout_minutes" validate:"required,gt=0"`

	// Endpoint overrides the regional Google endpoint base URL.
	// Used by tests; empty means the real endpoint.
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
}
