package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/taskdeck/taskdeck/internal/model"
)

var ErrTokenNotFound = errors.New("token not found")

type TokenRepository interface {
	// WithTx returns a copy of the repository bound to the given transaction.
	WithTx(tx *sqlx.Tx) TokenRepository
	Create(token *model.EmailVerificationToken) error
	ByHash(hash string) (*model.EmailVerificationToken, error)
	ByUser(userID string) ([]*model.EmailVerificationToken, error)
	// MarkUsed sets used_at on an unused token. It reports false when the
	// token was already used, which serializes concurrent verification
	// attempts: at most one caller observes true.
	MarkUsed(id string, usedAt time.Time) (bool, error)
	// DeleteExpiredOrUsed removes every token that is used or past its
	// expiry and returns the number of rows deleted.
	DeleteExpiredOrUsed(now time.Time) (int64, error)
}

type tokenRepository struct {
	ext sqlx.Ext
}

func NewTokenRepository(db *sqlx.DB) TokenRepository {
	return &tokenRepository{ext: db}
}

func (r *tokenRepository) WithTx(tx *sqlx.Tx) TokenRepository {
	return &tokenRepository{ext: tx}
}

func (r *tokenRepository) Create(token *model.EmailVerificationToken) error {
	query := `INSERT INTO email_verification_tokens (id, user_id, token_hash, expires_at, used_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.ext.Exec(query,
		token.ID,
		token.UserID,
		token.TokenHash,
		token.ExpiresAt,
		token.UsedAt,
		token.CreatedAt,
	)
	return err
}

func (r *tokenRepository) ByHash(hash string) (*model.EmailVerificationToken, error) {
	token := &model.EmailVerificationToken{}
	query := `SELECT * FROM email_verification_tokens WHERE token_hash = $1`

	err := sqlx.Get(r.ext, token, query, hash)
	if err == sql.ErrNoRows {
		return nil, ErrTokenNotFound
	}

	return token, err
}

func (r *tokenRepository) ByUser(userID string) ([]*model.EmailVerificationToken, error) {
	var tokens []*model.EmailVerificationToken
	query := `SELECT * FROM email_verification_tokens WHERE user_id = $1 ORDER BY created_at DESC`

	err := sqlx.Select(r.ext, &tokens, query, userID)
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

func (r *tokenRepository) MarkUsed(id string, usedAt time.Time) (bool, error) {
	query := `UPDATE email_verification_tokens SET used_at = $1 WHERE id = $2 AND used_at IS NULL`

	result, err := r.ext.Exec(query, usedAt, id)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows == 1, nil
}

func (r *tokenRepository) DeleteExpiredOrUsed(now time.Time) (int64, error) {
	query := `DELETE FROM email_verification_tokens WHERE used_at IS NOT NULL OR expires_at < $1`

	result, err := r.ext.Exec(query, now)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
