package model

import (
	"time"
)

type ChecklistItem struct {
	ID          string     `db:"id"`
	ChecklistID string     `db:"checklist_id"`
	Description string     `db:"description"`
	Completed   bool       `db:"completed"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

func (i *ChecklistItem) IsDeleted() bool {
	return i.DeletedAt != nil
}

func (i *ChecklistItem) ToggleCompleted() {
	i.Completed = !i.Completed
}
