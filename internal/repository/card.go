package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/taskdeck/taskdeck/internal/model"
)

var ErrCardNotFound = errors.New("card not found")

type CardRepository interface {
	// WithTx returns a copy of the repository bound to the given transaction.
	WithTx(tx *sqlx.Tx) CardRepository
	Create(card *model.Card) error
	ByID(id string) (*model.Card, error)
	// Cards returns a page of cards that are not soft-deleted, newest first.
	Cards(offset, limit int) ([]*model.Card, error)
	Count() (int, error)
	Update(card *model.Card) error
	// SoftDelete marks the card deleted without removing the row.
	SoftDelete(id string, at time.Time) error
}

type cardRepository struct {
	ext sqlx.Ext
}

func NewCardRepository(db *sqlx.DB) CardRepository {
	return &cardRepository{ext: db}
}

func (r *cardRepository) WithTx(tx *sqlx.Tx) CardRepository {
	return &cardRepository{ext: tx}
}

func (r *cardRepository) Create(card *model.Card) error {
	query := `INSERT INTO cards (id, title, description, status, priority, due_date, created_at, updated_at, deleted_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.ext.Exec(query,
		card.ID,
		card.Title,
		card.Description,
		card.Status,
		card.Priority,
		card.DueDate,
		card.CreatedAt,
		card.UpdatedAt,
		card.DeletedAt,
	)
	return err
}

func (r *cardRepository) ByID(id string) (*model.Card, error) {
	card := &model.Card{}
	query := `SELECT * FROM cards WHERE id = $1 AND deleted_at IS NULL`

	err := sqlx.Get(r.ext, card, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrCardNotFound
	}

	return card, err
}

func (r *cardRepository) Cards(offset, limit int) ([]*model.Card, error) {
	var cards []*model.Card
	query := `SELECT * FROM cards WHERE deleted_at IS NULL ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	err := sqlx.Select(r.ext, &cards, query, limit, offset)
	if err != nil {
		return nil, err
	}

	return cards, nil
}

func (r *cardRepository) Count() (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM cards WHERE deleted_at IS NULL`

	err := sqlx.Get(r.ext, &count, query)
	return count, err
}

func (r *cardRepository) Update(card *model.Card) error {
	query := `UPDATE cards
	          SET title = $1, description = $2, status = $3, priority = $4, due_date = $5, updated_at = $6
	          WHERE id = $7 AND deleted_at IS NULL`

	result, err := r.ext.Exec(query,
		card.Title,
		card.Description,
		card.Status,
		card.Priority,
		card.DueDate,
		time.Now(),
		card.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCardNotFound
	}

	return nil
}

func (r *cardRepository) SoftDelete(id string, at time.Time) error {
	query := `UPDATE cards SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`

	result, err := r.ext.Exec(query, at, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCardNotFound
	}

	return nil
}
