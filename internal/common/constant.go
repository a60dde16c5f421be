package common

// AuthHeaderName is the HTTP header that carries the access token on
// outbound API requests.
const AuthHeaderName = "Authorization"

// BearerPrefix is prepended to the token value in AuthHeaderName.
const BearerPrefix = "Bearer "
