package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":5000", c.EndpointAddrHTTP)
	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Empty(t, c.DatabaseDSN)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, 20*time.Second, c.AccessTokenValidityDuration)
	assert.Equal(t, 5*time.Minute, c.RefreshTokenValidityDuration)
	assert.Equal(t, "gophauth", c.Issuer)
	assert.Equal(t, 10, c.BcryptCost)
	assert.Equal(t, "info", c.LogLevel)
	assert.NoError(t, c.Validate())
}

func TestLoad_NoSourcesGivesDefaults(t *testing.T) {
	c, err := Load(nil, noEnv)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, want, *c)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"secret_key":                     "from-json",
		"database_dsn":                   "postgres://json",
		"access_token_validity_duration": "30s",
		"issuer":                         "json-issuer",
	})
	env := map[string]string{
		"GOPHAUTH_SECRET_KEY": "from-env",
		"GOPHAUTH_ISSUER":     "env-issuer",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	c, err := Load([]string{"-c", path, "-s", "from-flag"}, lookup)
	require.NoError(t, err)

	assert.Equal(t, "from-flag", c.SecretKey, "flags beat env and json")
	assert.Equal(t, "env-issuer", c.Issuer, "env beats json")
	assert.Equal(t, "postgres://json", c.DatabaseDSN, "json beats defaults")
	assert.Equal(t, 30*time.Second, c.AccessTokenValidityDuration)
}

func TestLoad_InvalidRejected(t *testing.T) {
	_, err := Load([]string{"-t", "10m", "-r", "5m"}, noEnv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh token validity must exceed")

	_, err = Load([]string{"-s", ""}, noEnv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret key is empty")
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	c := Config{}
	err := c.Validate()
	require.Error(t, err)
	for _, s := range []string{"http address", "secret key", "access token", "refresh token", "request timeout", "health check"} {
		assert.Contains(t, err.Error(), s)
	}
}
