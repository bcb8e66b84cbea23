package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/medstay/hospital-bed-reservation/internal/model"
)

// TokenRepo reads and writes rows of the 'refresh_tokens' table.  Only
// the SHA-256 hash of a refresh token is ever stored; the raw value
// lives solely with the client.  Revocation is a soft delete via the
// revoked_at column so a token's history stays auditable.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// StoreRefresh records a freshly issued refresh token hash for an
// account.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?,?,?)",
		userID, tokenHash, exp)
	return err
}

// ValidateRefresh looks a token up by hash and returns its row when it
// is still live.  A revoked or expired token is reported as
// sql.ErrNoRows, the same answer an unknown hash gets, so callers
// cannot distinguish the cases.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (model.RefreshToken, error) {
	var (
		tok       model.RefreshToken
		revokedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, token_hash, expires_at, revoked_at, created_at FROM refresh_tokens WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&tok.ID, &tok.UserID, &tok.TokenHash, &tok.ExpiresAt, &revokedAt, &tok.CreatedAt)
	if err != nil {
		return model.RefreshToken{}, err
	}
	if revokedAt.Valid {
		return model.RefreshToken{}, sql.ErrNoRows
	}
	if time.Now().UTC().After(tok.ExpiresAt) {
		return model.RefreshToken{}, sql.ErrNoRows
	}
	return tok, nil
}

// RevokeByHash revokes a single session's token.  Already-revoked rows
// are left untouched so the original revocation time survives.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=NOW() WHERE token_hash=? AND revoked_at IS NULL",
		tokenHash)
	return err
}

// RevokeAllForUser ends every live session of one account, the
// bearer-token logout path.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=NOW() WHERE user_id=? AND revoked_at IS NULL",
		userID)
	return err
}
