// Package cli implements the interactive gophauth client: a small REPL
// that registers, logs in and calls the protected endpoint, refreshing
// the access token as needed.
package cli
