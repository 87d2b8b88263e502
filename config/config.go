// Package config loads trollsmile settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/zrma/trollsmile/logging"
)

type Config struct {
	Environment string `env:"environment" envDefault:"development"`

	CommandsDir   string `env:"TROLLSMILE_COMMANDS_DIR" envDefault:"commands"`
	CommandExt    string `env:"TROLLSMILE_COMMAND_EXT" envDefault:".so"`
	AllowOverride bool   `env:"TROLLSMILE_ALLOW_OVERRIDE" envDefault:"false"`

	Prefix string `env:"TROLLSMILE_PREFIX"`
	Prompt string `env:"TROLLSMILE_PROMPT" envDefault:"> "`
	Logo   string `env:"TROLLSMILE_LOGO"`
	Name   string `env:"TROLLSMILE_NAME" envDefault:"trollsmile cli"`
	Icon   string `env:"TROLLSMILE_ICON"`

	// Listen switches cmd/trollsmile from the local console to the remote console server.
	Listen string `env:"TROLLSMILE_LISTEN"`
	Remote string `env:"TROLLSMILE_REMOTE" envDefault:"localhost:5555"`

	OtelEndpoint    string  `env:"TROLLSMILE_OTEL_ENDPOINT"`
	OtelSampleRatio float64 `env:"TROLLSMILE_OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// Load reads the configuration from the environment, falling back to the
// defaults for anything unset.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) LogLevel() logging.LogLevel {
	return logging.ParseLevel(c.Environment)
}
