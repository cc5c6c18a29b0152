// Package errors provides the structured error type shared by the storage
// packages. Every AppError carries a machine-readable code so callers can tell
// an absent item from an unavailable backend or a transport failure without
// parsing messages.
package errors
