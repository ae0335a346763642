package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// PostgresTokenStore implements the store.TokenStore interface, persisting
// revoked refresh-token IDs so that logout survives process restarts.
type PostgresTokenStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTokenStore creates a new PostgreSQL implementation of the
// TokenStore interface.
func NewPostgresTokenStore(db store.DBTX, log *slog.Logger) *PostgresTokenStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresTokenStore{
		db:     db,
		logger: log.With(slog.String("component", "token_store")),
	}
}

// Ensure PostgresTokenStore implements store.TokenStore interface
var _ store.TokenStore = (*PostgresTokenStore)(nil)

// Revoke implements store.TokenStore.Revoke
func (s *PostgresTokenStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO revoked_tokens (token_id, expires_at, revoked_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (token_id) DO NOTHING
	`
	if _, err := s.db.ExecContext(ctx, query, tokenID, expiresAt, time.Now().UTC()); err != nil {
		log.Error("failed to revoke token",
			slog.String("error", err.Error()),
			slog.String("token_id", tokenID))
		return err
	}

	log.Info("refresh token revoked", slog.String("token_id", tokenID))
	return nil
}

// IsRevoked implements store.TokenStore.IsRevoked
func (s *PostgresTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var revoked bool
	query := `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token_id = $1)`
	if err := s.db.QueryRowContext(ctx, query, tokenID).Scan(&revoked); err != nil {
		log.Error("failed to check token revocation",
			slog.String("error", err.Error()),
			slog.String("token_id", tokenID))
		return false, err
	}

	return revoked, nil
}

// DeleteExpired implements store.TokenStore.DeleteExpired
func (s *PostgresTokenStore) DeleteExpired(ctx context.Context) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM revoked_tokens WHERE expires_at < $1`,
		time.Now().UTC(),
	)
	if err != nil {
		log.Error("failed to delete expired token revocations",
			slog.String("error", err.Error()))
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if rowsAffected > 0 {
		log.Debug("pruned expired token revocations",
			slog.Int64("rows", rowsAffected))
	}
	return rowsAffected, nil
}
