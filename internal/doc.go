// Package internal documents the HelpHive server internals.
//
// The internal tree is organized by responsibility:
// - api: HTTP handlers, middleware, response writing, and routing
// - domain: event and join business logic
// - storage: MongoDB repositories behind the domain interfaces
// - auth, config, metrics, email, sanitize, telemetry: shared infrastructure
//
// Code in internal/ is not meant for external import.
package internal
