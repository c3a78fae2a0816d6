// Package acl translates identity provider responses into domain values.
//
// The only external service is the provider that publishes the JSON Web Key
// Set used to verify bearer tokens. Its JWK documents never leave this
// package: [KeySetClient] turns them into Go public keys, and transport and
// status failures become domain errors on the way out.
//
// Every provider failure surfaces as [domain.ErrUnavailable]. A caller
// holding a token it cannot verify treats the token as invalid, so the
// finer status distinctions only matter for logs.
package acl
