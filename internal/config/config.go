// Package config resolves command settings from flags, environment and an
// optional config file.
//
// Precedence, highest first: explicitly set flags, IRATTRS_* environment
// variables, the config file, built-in defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variables, e.g. IRATTRS_FORMAT.
const EnvPrefix = "IRATTRS"

// Keys shared by flags, environment and config file.
const (
	KeyFormat  = "format"
	KeyDB      = "db"
	KeyVerbose = "verbose"
)

// Config holds resolved settings.
type Config struct {
	Format  string `mapstructure:"format"`
	DB      string `mapstructure:"db"`
	Verbose bool   `mapstructure:"verbose"`
}

// Loader wraps a private viper instance so tests and commands never share
// global state.
type Loader struct {
	v *viper.Viper
}

// NewLoader returns a Loader with defaults and environment binding applied.
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyFormat, "text")
	v.SetDefault(KeyDB, "")
	v.SetDefault(KeyVerbose, false)

	return &Loader{v: v}
}

// BindFlags binds every flag in fs whose name is a config key.
// Flags override environment and file values only when set explicitly.
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	for _, key := range []string{KeyFormat, KeyDB, KeyVerbose} {
		f := fs.Lookup(key)
		if f == nil {
			continue
		}
		if err := l.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %q: %w", key, err)
		}
	}
	return nil
}

// Load reads the optional config file and returns the resolved Config.
// The file format is inferred from its extension (yaml, json, toml).
func (l *Loader) Load(file string) (*Config, error) {
	if file != "" {
		l.v.SetConfigFile(file)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}
