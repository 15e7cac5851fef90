package config

import "github.com/kelseyhightower/envconfig"

// parseEnv overlays FRAUDCHECK_* variables, e.g. FRAUDCHECK_DATABASE_DSN or
// FRAUDCHECK_ACCESS_TOKEN_TTL=30m. Unset variables leave fields untouched.
func parseEnv(config *Config) {
	if err := envconfig.Process(EnvPrefix, config); err != nil {
		panic(err)
	}
}
