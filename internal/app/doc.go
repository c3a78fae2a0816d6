// Package app contains application services that orchestrate use cases.
// This is the application layer in Clean Architecture - it coordinates
// domain logic and infrastructure through ports.
//
// Application Layer Responsibilities:
//   - Orchestrate use cases (submission, moderation, registration)
//   - Normalize and validate input before it reaches a store
//   - Record business metrics
//
// What does NOT belong here:
//   - HTTP specifics (that's adapters)
//   - Database queries (that's storage adapters)
//   - Credential resolution (that's app/auth)
package app
