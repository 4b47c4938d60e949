// Package common contains shared constants used across SIAP client
// components.
package common

// AuthTokenHeaderName is the HTTP header that carries the session token
// on every authenticated request. The name is fixed by the SIAP API.
const AuthTokenHeaderName = "x-auth-token"
