package common

const (
	// AuthorizationHeader carries bearer credentials on HTTP requests.
	AuthorizationHeader = "Authorization"

	// BearerPrefix precedes the token in AuthorizationHeader.
	BearerPrefix = "Bearer "
)
