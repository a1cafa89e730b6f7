// Package models contains the persistent records of the auth server.
package models

import "time"

// User is a registered account. PasswordHash is never the plaintext.
type User struct {
	ID           int64
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
