package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/taskdeck/taskdeck/internal/model"
)

var ErrChecklistItemNotFound = errors.New("checklist item not found")

type ChecklistItemRepository interface {
	// WithTx returns a copy of the repository bound to the given transaction.
	WithTx(tx *sqlx.Tx) ChecklistItemRepository
	Create(item *model.ChecklistItem) error
	ByID(id string) (*model.ChecklistItem, error)
	ByChecklist(checklistID string) ([]*model.ChecklistItem, error)
	Update(item *model.ChecklistItem) error
	SoftDelete(id string, at time.Time) error
}

type checklistItemRepository struct {
	ext sqlx.Ext
}

func NewChecklistItemRepository(db *sqlx.DB) ChecklistItemRepository {
	return &checklistItemRepository{ext: db}
}

func (r *checklistItemRepository) WithTx(tx *sqlx.Tx) ChecklistItemRepository {
	return &checklistItemRepository{ext: tx}
}

func (r *checklistItemRepository) Create(item *model.ChecklistItem) error {
	query := `INSERT INTO checklist_items (id, checklist_id, description, completed, created_at, updated_at, deleted_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.ext.Exec(query,
		item.ID,
		item.ChecklistID,
		item.Description,
		item.Completed,
		item.CreatedAt,
		item.UpdatedAt,
		item.DeletedAt,
	)
	return err
}

func (r *checklistItemRepository) ByID(id string) (*model.ChecklistItem, error) {
	item := &model.ChecklistItem{}
	query := `SELECT * FROM checklist_items WHERE id = $1 AND deleted_at IS NULL`

	err := sqlx.Get(r.ext, item, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrChecklistItemNotFound
	}

	return item, err
}

func (r *checklistItemRepository) ByChecklist(checklistID string) ([]*model.ChecklistItem, error) {
	var items []*model.ChecklistItem
	query := `SELECT * FROM checklist_items WHERE checklist_id = $1 AND deleted_at IS NULL ORDER BY created_at`

	err := sqlx.Select(r.ext, &items, query, checklistID)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *checklistItemRepository) Update(item *model.ChecklistItem) error {
	query := `UPDATE checklist_items SET description = $1, completed = $2, updated_at = $3 WHERE id = $4 AND deleted_at IS NULL`

	result, err := r.ext.Exec(query, item.Description, item.Completed, time.Now(), item.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrChecklistItemNotFound
	}

	return nil
}

func (r *checklistItemRepository) SoftDelete(id string, at time.Time) error {
	query := `UPDATE checklist_items SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`

	result, err := r.ext.Exec(query, at, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrChecklistItemNotFound
	}

	return nil
}
