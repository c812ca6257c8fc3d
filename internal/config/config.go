package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"pokerhall-server/internal/util"
)

// Config provides configuration for the poker hall server
type Config struct {
	loaded bool
	Log    struct {
		Level             string `yaml:"level" envconfig:"level"`
		Format            string `yaml:"format" envconfig:"format"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	Table struct {
		SeatsCount int `yaml:"seatsCount" envconfig:"seats_count"`
		SmallBlind int `yaml:"smallBlind" envconfig:"small_blind"`
		BigBlind   int `yaml:"bigBlind" envconfig:"big_blind"`
		MinBuyIn   int `yaml:"minBuyIn" envconfig:"min_buy_in"`
		MaxBuyIn   int `yaml:"maxBuyIn" envconfig:"max_buy_in"`
	}
	// delays are in milliseconds
	Delay struct {
		AllIn    int `yaml:"allIn" envconfig:"all_in"`
		Showdown int `yaml:"showdown" envconfig:"showdown"`
	}
	StartingChips int `yaml:"startingChips" envconfig:"starting_chips"`
	// PlayerCreateDelay is the minimum number of seconds between two player
	// create requests from a single remote address
	PlayerCreateDelay int `yaml:"playerCreateDelay" envconfig:"player_create_delay"`
}

var config Config

// DefaultConfig returns a config with every default applied
func DefaultConfig() Config {
	c := Config{}
	setDefaults(&c)
	return c
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
// A missing config file is not an error; defaults and environment variables still apply
func Load() error {
	config = Config{}

	configFile := util.Getenv("PHS_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("phs", &config); err != nil {
		return err
	}

	setDefaults(&config)
	config.loaded = true
	return nil
}

func setDefaults(c *Config) {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if c.Table.SeatsCount == 0 {
		c.Table.SeatsCount = 10
	}

	if c.Table.SmallBlind == 0 {
		c.Table.SmallBlind = 10
	}

	if c.Table.BigBlind == 0 {
		c.Table.BigBlind = c.Table.SmallBlind * 2
	}

	if c.Table.MinBuyIn == 0 {
		c.Table.MinBuyIn = c.Table.BigBlind * 20
	}

	if c.Table.MaxBuyIn == 0 {
		c.Table.MaxBuyIn = c.Table.BigBlind * 100
	}

	if c.Delay.AllIn == 0 {
		c.Delay.AllIn = 1000
	}

	if c.Delay.Showdown == 0 {
		c.Delay.Showdown = 2500
	}

	if c.StartingChips == 0 {
		c.StartingChips = 10000
	}

	if c.PlayerCreateDelay == 0 {
		c.PlayerCreateDelay = 60
	}
}
