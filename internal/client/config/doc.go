// Package config loads settings for the gophauth interactive client:
// defaults, then an optional JSON file (-c/-config), then GOPHAUTH_*
// environment variables, then command-line flags.
package config
