// Package cryptopus is the HTTP client for the Cryptopus vault API.
//
// Requests authenticate with the API-user headers Authorization-User and
// Authorization-Password (base64 of the token). Failures are reported as
// wrapped errors matching one of ErrUnauthorized, ErrConnectionFailed or
// ErrNotFound where the cause is one of those; anything else is an
// unexpected vault response.
package cryptopus
