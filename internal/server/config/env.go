package config

import (
	"fmt"
	"strconv"
	"time"
)

const envPrefix = "GOPHAUTH_"

// parseEnv overlays GOPHAUTH_* variables. Unset variables are ignored; a set
// but unparsable duration or integer is an error.
func parseEnv(config *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"HTTP_ADDR":    &config.EndpointAddrHTTP,
		"GRPC_ADDR":    &config.EndpointAddrGRPC,
		"DATABASE_DSN": &config.DatabaseDSN,
		"SECRET_KEY":   &config.SecretKey,
		"ISSUER":       &config.Issuer,
		"LOG_LEVEL":    &config.LogLevel,
	}
	for name, dst := range strs {
		if v, ok := lookup(envPrefix + name); ok {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"ACCESS_TTL":            &config.AccessTokenValidityDuration,
		"REFRESH_TTL":           &config.RefreshTokenValidityDuration,
		"REQUEST_TIMEOUT":       &config.RequestTimeout,
		"HEALTH_CHECK_INTERVAL": &config.HealthCheckInterval,
	}
	for name, dst := range durations {
		v, ok := lookup(envPrefix + name)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = d
	}

	if v, ok := lookup(envPrefix + "BCRYPT_COST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sBCRYPT_COST: %w", envPrefix, err)
		}
		config.BcryptCost = n
	}

	return nil
}
