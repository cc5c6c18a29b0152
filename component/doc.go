// Package component defines the lifecycle interface for long-lived
// infrastructure such as a storage root, and a Registry that starts them in
// order and stops them in reverse.
package component
