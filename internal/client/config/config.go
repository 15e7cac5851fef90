package config

import "time"

const EnvPrefix = "FRAUDCHECK"

// Config holds runtime settings for the fraudcheck CLI.
type Config struct {
	ServerEndpointAddr string        `envconfig:"SERVER_ADDR"`
	SessionDBPath      string        `envconfig:"SESSION_DB"`
	DownloadDir        string        `envconfig:"DOWNLOAD_DIR"`
	PingTimeout        time.Duration `envconfig:"PING_TIMEOUT"`
	LogLevel           string        `envconfig:"LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.SessionDBPath = "session.db"
	c.DownloadDir = "downloads"
	c.PingTimeout = 3 * time.Second
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays the config
// file, the environment and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
