package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from an optional config file and from environment
// variables with the VOCAB_ prefix; environment variables take precedence.
// file may be empty, in which case only defaults and the environment apply.
// Returns a validated Config or an error describing what failed.
func Load(file string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8787)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("storage.path", "vocab.db")
	v.SetDefault("catalog.path", "")
	v.SetDefault("review.session_cap", 50)

	// Environment: VOCAB_SERVER_PORT overrides server.port, etc.
	v.SetEnvPrefix("VOCAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate runs struct-tag validation and rewrites the error into a readable
// field-by-field message.
func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			problems := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				problems = append(problems,
					fmt.Sprintf("%s failed %q validation", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
