package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

// parseFlags overlays values from command-line flags.
//
// Supported flags:
//
//	-a string     HTTP bind address (e.g. ":5000")
//	-g string     gRPC health bind address; "" disables it
//	-d string     PostgreSQL DSN; "" selects the in-memory store
//	-s string     JWT HMAC secret key
//	-t duration   access token validity (e.g. "20s")
//	-r duration   refresh token validity (e.g. "5m")
//	-i string     token issuer
//	-b int        bcrypt cost
//	-l string     log level
//	-w duration   per-request timeout
//	-h duration   interval between storage health probes
//
// Args are first filtered with flagx.FilterArgs so that the -c/-config flag
// handled by parseJson does not trip the parser.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-s", "-t", "-r", "-i", "-b", "-l", "-w", "-h"})

	fs := flag.NewFlagSet("gophauth", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to serve HTTP on")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port for the gRPC health service")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.AccessTokenValidityDuration, "t", config.AccessTokenValidityDuration, "access token validity")
	fs.DurationVar(&config.RefreshTokenValidityDuration, "r", config.RefreshTokenValidityDuration, "refresh token validity")
	fs.StringVar(&config.Issuer, "i", config.Issuer, "token issuer")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.DurationVar(&config.RequestTimeout, "w", config.RequestTimeout, "request timeout")
	fs.DurationVar(&config.HealthCheckInterval, "h", config.HealthCheckInterval, "health check interval")

	return fs.Parse(args)
}
