package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/taskdeck/taskdeck/internal/model"
)

var ErrChecklistNotFound = errors.New("checklist not found")

type ChecklistRepository interface {
	// WithTx returns a copy of the repository bound to the given transaction.
	WithTx(tx *sqlx.Tx) ChecklistRepository
	Create(checklist *model.Checklist) error
	ByID(id string) (*model.Checklist, error)
	ByCard(cardID string) ([]*model.Checklist, error)
	Update(checklist *model.Checklist) error
	SoftDelete(id string, at time.Time) error
}

type checklistRepository struct {
	ext sqlx.Ext
}

func NewChecklistRepository(db *sqlx.DB) ChecklistRepository {
	return &checklistRepository{ext: db}
}

func (r *checklistRepository) WithTx(tx *sqlx.Tx) ChecklistRepository {
	return &checklistRepository{ext: tx}
}

func (r *checklistRepository) Create(checklist *model.Checklist) error {
	query := `INSERT INTO checklists (id, card_id, title, created_at, updated_at, deleted_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.ext.Exec(query,
		checklist.ID,
		checklist.CardID,
		checklist.Title,
		checklist.CreatedAt,
		checklist.UpdatedAt,
		checklist.DeletedAt,
	)
	return err
}

func (r *checklistRepository) ByID(id string) (*model.Checklist, error) {
	checklist := &model.Checklist{}
	query := `SELECT * FROM checklists WHERE id = $1 AND deleted_at IS NULL`

	err := sqlx.Get(r.ext, checklist, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrChecklistNotFound
	}

	return checklist, err
}

func (r *checklistRepository) ByCard(cardID string) ([]*model.Checklist, error) {
	var checklists []*model.Checklist
	query := `SELECT * FROM checklists WHERE card_id = $1 AND deleted_at IS NULL ORDER BY created_at`

	err := sqlx.Select(r.ext, &checklists, query, cardID)
	if err != nil {
		return nil, err
	}

	return checklists, nil
}

func (r *checklistRepository) Update(checklist *model.Checklist) error {
	query := `UPDATE checklists SET title = $1, updated_at = $2 WHERE id = $3 AND deleted_at IS NULL`

	result, err := r.ext.Exec(query, checklist.Title, time.Now(), checklist.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrChecklistNotFound
	}

	return nil
}

func (r *checklistRepository) SoftDelete(id string, at time.Time) error {
	query := `UPDATE checklists SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`

	result, err := r.ext.Exec(query, at, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrChecklistNotFound
	}

	return nil
}
