package config

import (
	"os"
	"time"

	"cheat-server/internal/util"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the cheat server
type Config struct {
	loaded bool
	Addr   string `yaml:"addr" envconfig:"addr"`
	Log    struct {
		Level             string `yaml:"level" envconfig:"level"`
		Format            string `yaml:"format" envconfig:"format"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	JWT struct {
		Secret string        `yaml:"secret" envconfig:"secret"`
		TTL    time.Duration `yaml:"ttl" envconfig:"ttl"`
	} `yaml:"jwt"`
	Redis struct {
		Addr     string `yaml:"addr" envconfig:"addr"`
		Password string `yaml:"password" envconfig:"password"`
		DB       int    `yaml:"db" envconfig:"db"`
	} `yaml:"redis"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins" envconfig:"allowed_origins"`
	} `yaml:"cors"`
	Session struct {
		EmptyTTL time.Duration `yaml:"emptyTtl" envconfig:"empty_ttl"`
		IdleTTL  time.Duration `yaml:"idleTtl" envconfig:"idle_ttl"`
	} `yaml:"session"`
	Bot struct {
		Enabled bool          `yaml:"enabled" envconfig:"enabled"`
		Name    string        `yaml:"name" envconfig:"name"`
		Delay   time.Duration `yaml:"delay" envconfig:"delay"`
	} `yaml:"bot"`
}

var config Config

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	cfg := Config{
		Addr: ":5000",
	}

	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.JWT.TTL = 24 * time.Hour
	cfg.CORS.AllowedOrigins = []string{"*"}
	cfg.Session.EmptyTTL = 5 * time.Minute
	cfg.Session.IdleTTL = 30 * time.Minute
	cfg.Bot.Enabled = true
	cfg.Bot.Name = "otis"
	cfg.Bot.Delay = 1500 * time.Millisecond

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error; the defaults and environment are used instead
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("CHEAT_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if file != nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("cheat", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
