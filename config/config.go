// Package config loads the settings of the command line tools.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables, CASEFOLIO_BACKEND_BASE_URL
// sets backend.base_url.
const EnvPrefix = "CASEFOLIO"

type Config struct {
	Backend   BackendConfig `mapstructure:"backend"`
	Currency  string        `mapstructure:"currency"`
	StateFile string        `mapstructure:"state_file"`
	Log       LogConfig     `mapstructure:"log"`
	Ticker    TickerConfig  `mapstructure:"ticker"`
	Assist    AssistConfig  `mapstructure:"assist"`
}

type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type TickerConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	Step     int           `mapstructure:"step"`
	// Refresh is a cron spec, empty disables the scheduled refresh.
	Refresh string `mapstructure:"refresh"`
}

type AssistConfig struct {
	Model string `mapstructure:"model"`
}

// Load reads the yaml file at path, the environment overriding it. An empty
// path reads the environment only.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("backend.base_url", "http://127.0.0.1:5000")
	v.SetDefault("backend.timeout", "10s")
	v.SetDefault("currency", "USD")
	v.SetDefault("state_file", ".casefolio.json")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", false)
	v.SetDefault("log.disable_caller", true)
	v.SetDefault("log.disable_stacktrace", true)
	v.SetDefault("ticker.interval", "80ms")
	v.SetDefault("ticker.step", 1)
	v.SetDefault("ticker.refresh", "")
	v.SetDefault("assist.model", "gemini-2.5-flash")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
