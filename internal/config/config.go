package config

// Config is the top-level application configuration.
// It is loaded from ~/.config/costctl/config.yaml, COSTCTL_* environment
// variables and command-line flags, in increasing order of precedence.
// It must never be committed with real secrets.
type Config struct {
	AWS AWSConfig `mapstructure:"aws" yaml:"aws" json:"aws"`

	// Output is the default output format: "json", "yaml" or "text".
	Output string `mapstructure:"output" yaml:"output" json:"output"`

	// LogLevel is a logrus level name ("debug", "info", "warn", ...).
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
}

// AWSConfig holds AWS-specific defaults used when flags are not provided.
type AWSConfig struct {
	// Profile is used when no --profile flag is provided.
	Profile string `mapstructure:"profile" yaml:"profile" json:"profile"`

	// Region is the Cost Explorer region; empty means us-east-1.
	Region string `mapstructure:"region" yaml:"region" json:"region"`

	// EndpointURL overrides the Cost Explorer endpoint.
	EndpointURL string `mapstructure:"endpoint_url" yaml:"endpoint_url" json:"endpoint_url"`

	// MaxAttempts caps SDK retries; 0 keeps the SDK default.
	MaxAttempts int `mapstructure:"max_attempts" yaml:"max_attempts" json:"max_attempts"`
}

// Loader is the interface for reading Config.
// Default implementation reads from ~/.config/costctl/config.yaml.
type Loader interface {
	// Load reads, parses, and validates the configuration.
	Load() (*Config, error)

	// ConfigPath returns the absolute path to the configuration file.
	ConfigPath() string
}
