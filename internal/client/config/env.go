package config

import (
	"fmt"
	"time"
)

func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("GOPHAUTH_SERVER_URL"); ok {
		cfg.ServerURL = v
	}
	if v, ok := lookup("GOPHAUTH_CLIENT_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("GOPHAUTH_CLIENT_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}
