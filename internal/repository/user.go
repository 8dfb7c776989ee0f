package repository

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/taskdeck/taskdeck/internal/model"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already exists")
)

type UserRepository interface {
	// WithTx returns a copy of the repository bound to the given transaction.
	WithTx(tx *sqlx.Tx) UserRepository
	Create(user *model.User) error
	ByID(id string) (*model.User, error)
	ByEmail(email string) (*model.User, error)
	ByLogin(login string) (*model.User, error)
	ByAPIToken(token string) (*model.User, error)
	Users() ([]*model.User, error)
	Update(user *model.User) error
	// RotateAPIToken replaces the user's bearer secret without touching any
	// other column.
	RotateAPIToken(id, apiToken string) error
	// Activate persists the waiting-verification -> active transition.
	Activate(user *model.User) error
}

type userRepository struct {
	ext sqlx.Ext
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{ext: db}
}

func (r *userRepository) WithTx(tx *sqlx.Tx) UserRepository {
	return &userRepository{ext: tx}
}

func (r *userRepository) Create(user *model.User) error {
	query := `INSERT INTO users (id, login, email, password_hash, status, email_verified_at, api_token, locale, timezone, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.ext.Exec(query,
		user.ID,
		user.Login,
		user.Email,
		user.PasswordHash,
		user.Status,
		user.EmailVerifiedAt,
		user.APIToken,
		user.Locale,
		user.Timezone,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUser
		}
		return err
	}

	return nil
}

func (r *userRepository) ByID(id string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := sqlx.Get(r.ext, user, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) ByEmail(email string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE LOWER(email) = LOWER($1)`

	err := sqlx.Get(r.ext, user, query, email)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) ByLogin(login string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE login = $1`

	err := sqlx.Get(r.ext, user, query, login)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) ByAPIToken(token string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE api_token = $1`

	err := sqlx.Get(r.ext, user, query, token)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) Users() ([]*model.User, error) {
	var users []*model.User
	query := `SELECT * FROM users ORDER BY created_at DESC`

	err := sqlx.Select(r.ext, &users, query)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) Update(user *model.User) error {
	query := `UPDATE users
	          SET login = $1, email = $2, password_hash = $3, api_token = $4, locale = $5, timezone = $6, updated_at = $7
	          WHERE id = $8`

	result, err := r.ext.Exec(query,
		user.Login,
		user.Email,
		user.PasswordHash,
		user.APIToken,
		user.Locale,
		user.Timezone,
		time.Now(),
		user.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *userRepository) RotateAPIToken(id, apiToken string) error {
	query := `UPDATE users SET api_token = $1, updated_at = $2 WHERE id = $3`

	result, err := r.ext.Exec(query, apiToken, time.Now(), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *userRepository) Activate(user *model.User) error {
	query := `UPDATE users
	          SET status = $1, email_verified_at = $2, updated_at = $3
	          WHERE id = $4`

	result, err := r.ext.Exec(query, user.Status, user.EmailVerifiedAt, time.Now(), user.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

// isUniqueViolation detects unique constraint errors for both SQLite and
// PostgreSQL without importing driver-specific error types.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
