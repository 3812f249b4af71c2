package config

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dvloznov/pandacsv/internal/logger"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "PANDACSV"

// Config holds the runtime settings of the CLI.
type Config struct {
	LogLevel   string `mapstructure:"log_level"`
	LogFormat  string `mapstructure:"log_format"`
	ConfigFile string `mapstructure:"config"`

	// Level is LogLevel resolved by Validate.
	Level zerolog.Level `mapstructure:"-"`
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("log-level", "warn", "log level (debug, info, warn, error, disabled)")
	fs.String("log-format", logger.FormatConsole, "log format (console or json)")
	fs.String("config", "", "optional config file (yaml, json or toml)")
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", logger.FormatConsole)
	v.SetDefault("config", "")
}

// Load resolves the configuration from flags, PANDACSV_* environment
// variables, an optional config file and defaults, in that order of precedence.
// fs must already be parsed.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for flagName, key := range map[string]string{
			"log-level":  "log_level",
			"log-format": "log_format",
			"config":     "config",
		} {
			if f := fs.Lookup(flagName); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "failed to bind flag %s", flagName)
				}
			}
		}
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "failed to read from config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the log settings are usable and resolves Level.
func (c *Config) Validate() error {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	c.Level = level
	switch c.LogFormat {
	case logger.FormatConsole, logger.FormatJSON:
	default:
		return fmt.Errorf("invalid log format %q: want %s or %s", c.LogFormat, logger.FormatConsole, logger.FormatJSON)
	}
	return nil
}
