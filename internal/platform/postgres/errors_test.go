package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	uniqueErr := &pgconn.PgError{Code: pgUniqueViolationCode, ConstraintName: "users_email_key"}

	assert.True(t, isUniqueViolation(uniqueErr, ""))
	assert.True(t, isUniqueViolation(uniqueErr, "users_email_key"))
	assert.False(t, isUniqueViolation(uniqueErr, "users_username_key"))

	// Wrapped errors are still recognized.
	assert.True(t, isUniqueViolation(fmt.Errorf("insert failed: %w", uniqueErr), "users_email_key"))

	assert.False(t, isUniqueViolation(errors.New("some other error"), ""))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: pgForeignKeyViolationCode}, ""))
	assert.False(t, isUniqueViolation(nil, ""))
}

func TestIsForeignKeyViolation(t *testing.T) {
	t.Parallel()

	fkErr := &pgconn.PgError{Code: pgForeignKeyViolationCode, ConstraintName: "tasks_user_id_fkey"}

	assert.True(t, isForeignKeyViolation(fkErr))
	assert.True(t, isForeignKeyViolation(fmt.Errorf("insert failed: %w", fkErr)))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: pgUniqueViolationCode}))
	assert.False(t, isForeignKeyViolation(errors.New("some other error")))
	assert.False(t, isForeignKeyViolation(nil))
}
