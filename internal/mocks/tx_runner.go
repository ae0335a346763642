package mocks

import (
	"context"

	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MockTxRunner implements store.TxRunner for testing. The default
// implementation invokes the function with a nil transaction, which the
// store mocks accept because their WithTx returns the mock itself.
type MockTxRunner struct {
	// RunFn allows test cases to mock the RunInTransaction behavior
	RunFn func(ctx context.Context, fn store.TxFn) error

	// BeginError is returned without invoking fn when set, simulating a
	// transaction that cannot be started or committed.
	BeginError error

	// Calls counts how many transactions were requested
	Calls int
}

// RunInTransaction implements the store.TxRunner interface
func (m *MockTxRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	m.Calls++

	if m.RunFn != nil {
		return m.RunFn(ctx, fn)
	}

	if m.BeginError != nil {
		return m.BeginError
	}

	return fn(ctx, nil)
}
