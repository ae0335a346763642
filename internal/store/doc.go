// Package store defines the persistence interfaces for the application's
// entities along with shared store errors and transaction helpers.
// Implementations live under internal/platform.
package store
