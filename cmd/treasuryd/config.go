package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/iov-one/treasury/cmd/treasuryd/app"
	"github.com/iov-one/treasury/errors"
	"github.com/spf13/viper"
)

const envPrefix = "TREASURY"

// Configuration keys. Each one can be set with a flag, a TREASURY_
// environment variable or in treasury.yaml in the home directory.
const (
	keyHome     = "home"
	keyBackend  = "backend"
	keyLogLevel = "log-level"
	keyDebug    = "debug"
	keyBech32   = "bech32-prefix"
)

type config struct {
	Home         string
	Backend      string
	LogLevel     string
	Debug        bool
	Bech32Prefix string
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".treasury"
	}
	return filepath.Join(home, ".treasury")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(keyHome, defaultHome())
	v.SetDefault(keyBackend, app.BackendIavl)
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyBech32, "")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfig reads the configuration file from the home directory, if
// present. Flags and environment variables take precedence over it.
func loadConfig(v *viper.Viper) (config, error) {
	v.SetConfigName("treasury")
	v.SetConfigType("yaml")
	v.AddConfigPath(v.GetString(keyHome))
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return config{}, errors.Wrapf(errors.ErrInput, "config file: %s", err)
		}
	}

	c := config{
		Home:         v.GetString(keyHome),
		Backend:      v.GetString(keyBackend),
		LogLevel:     v.GetString(keyLogLevel),
		Debug:        v.GetBool(keyDebug),
		Bech32Prefix: v.GetString(keyBech32),
	}
	switch c.Backend {
	case app.BackendIavl, app.BackendBolt, app.BackendMemory:
	default:
		return c, errors.Wrapf(errors.ErrInput, "unknown backend %q", c.Backend)
	}
	return c, nil
}

// debugErrors tells if full error details should be printed. It is read
// from the environment only, as the command line may not parse.
func debugErrors() bool {
	v := newViper()
	return v.GetBool(keyDebug)
}
