// Package mocks provides hand-written mock implementations of the
// application's interfaces for use in tests. Each mock exposes function
// fields to override behavior per test, plus simple in-memory defaults
// for tests that only need a working fake.
package mocks
