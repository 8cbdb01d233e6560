package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Addr                string `yaml:"addr"`
		ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
		WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
		IdleTimeoutSeconds  int    `yaml:"idle_timeout_seconds"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"logging"`
	Exchange struct {
		Symbol string `yaml:"symbol"`
	} `yaml:"exchange"`
}

func defaultConfig() Config {
	var c Config
	c.Server.Addr = ":3000"
	c.Server.ReadTimeoutSeconds = 5
	c.Server.WriteTimeoutSeconds = 10
	c.Server.IdleTimeoutSeconds = 60
	c.Logging.Level = "info"
	c.Logging.Pretty = false
	c.Exchange.Symbol = "BTC_USDT"
	return c
}

// Load builds the config from defaults, then an optional YAML file pointed at
// by EXCHANGE_CONFIG, then env overrides.
func Load() Config {
	c := defaultConfig()
	if path := os.Getenv("EXCHANGE_CONFIG"); path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}
	if v := os.Getenv("EXCHANGE_HTTP_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("EXCHANGE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("EXCHANGE_SYMBOL"); v != "" {
		c.Exchange.Symbol = v
	}
	return c
}
