package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func Test_parseEnv(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	err := parseEnv(cfg, mapLookup(map[string]string{
		"GOPHAUTH_HTTP_ADDR":    ":8081",
		"GOPHAUTH_GRPC_ADDR":    "",
		"GOPHAUTH_DATABASE_DSN": "postgres://env",
		"GOPHAUTH_ACCESS_TTL":   "45s",
		"GOPHAUTH_REFRESH_TTL":  "15m",
		"GOPHAUTH_BCRYPT_COST":  "8",
		"UNRELATED":             "x",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.EndpointAddrHTTP)
	assert.Equal(t, "", cfg.EndpointAddrGRPC)
	assert.Equal(t, "postgres://env", cfg.DatabaseDSN)
	assert.Equal(t, 45*time.Second, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 15*time.Minute, cfg.RefreshTokenValidityDuration)
	assert.Equal(t, 8, cfg.BcryptCost)
	assert.Equal(t, "secretKey", cfg.SecretKey, "unset variables keep defaults")
}

func Test_parseEnv_Errors(t *testing.T) {
	require.Error(t, parseEnv(&Config{}, mapLookup(map[string]string{"GOPHAUTH_ACCESS_TTL": "forever"})))
	require.Error(t, parseEnv(&Config{}, mapLookup(map[string]string{"GOPHAUTH_BCRYPT_COST": "ten"})))
}
