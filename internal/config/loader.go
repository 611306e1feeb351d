package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the loader, e.g.
// COSTCTL_AWS_PROFILE or COSTCTL_OUTPUT.
const EnvPrefix = "COSTCTL"

// Configuration keys and the flag each one is bound to.
const (
	KeyProfile     = "aws.profile"
	KeyRegion      = "aws.region"
	KeyEndpointURL = "aws.endpoint_url"
	KeyMaxAttempts = "aws.max_attempts"
	KeyOutput      = "output"
	KeyLogLevel    = "log_level"
)

var flagKeys = map[string]string{
	KeyProfile:     "profile",
	KeyRegion:      "region",
	KeyEndpointURL: "endpoint-url",
	KeyMaxAttempts: "max-attempts",
	KeyOutput:      "output",
	KeyLogLevel:    "log-level",
}

var _ Loader = (*ViperLoader)(nil)

// ViperLoader is the default Loader. It layers flags over COSTCTL_*
// environment variables over the YAML file over built-in defaults.
type ViperLoader struct {
	v        *viper.Viper
	path     string
	explicit bool
}

// NewLoader returns a loader for path. An empty path selects DefaultPath;
// a missing file is then tolerated, while a missing explicit path is an
// error.
func NewLoader(path string) *ViperLoader {
	l := &ViperLoader{v: viper.New(), path: path, explicit: path != ""}
	if path == "" {
		l.path = DefaultPath()
	}

	l.v.SetConfigType("yaml")
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	l.v.SetDefault(KeyProfile, "")
	l.v.SetDefault(KeyRegion, "")
	l.v.SetDefault(KeyEndpointURL, "")
	l.v.SetDefault(KeyMaxAttempts, 0)
	l.v.SetDefault(KeyOutput, "json")
	l.v.SetDefault(KeyLogLevel, "warn")
	return l
}

// DefaultPath returns ~/.config/costctl/config.yaml, or an empty string
// when the home directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "costctl", "config.yaml")
}

// ConfigPath implements Loader.
func (l *ViperLoader) ConfigPath() string { return l.path }

// BindFlags makes changed flags in flags take precedence over every other
// source. Flags missing from the set are skipped.
func (l *ViperLoader) BindFlags(flags *pflag.FlagSet) error {
	for key, name := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := l.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// Load implements Loader.
func (l *ViperLoader) Load() (*Config, error) {
	if l.path != "" {
		_, statErr := os.Stat(l.path)
		switch {
		case statErr == nil:
			l.v.SetConfigFile(l.path)
			if err := l.v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", l.path, err)
			}
		case errors.Is(statErr, os.ErrNotExist) && !l.explicit:
			// The default file is optional.
		default:
			return nil, fmt.Errorf("read config %s: %w", l.path, statErr)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting in cfg.
func Validate(cfg *Config) error {
	switch strings.ToLower(cfg.Output) {
	case "json", "yaml", "text":
	default:
		return fmt.Errorf("invalid output %q: want json, yaml or text", cfg.Output)
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	if cfg.AWS.MaxAttempts < 0 {
		return fmt.Errorf("invalid aws.max_attempts %d: must not be negative", cfg.AWS.MaxAttempts)
	}
	return nil
}
