package model

import (
	"time"
)

const (
	CardStatusTodo       = "todo"
	CardStatusInProgress = "in_progress"
	CardStatusDone       = "done"
)

const (
	CardPriorityLow    = "low"
	CardPriorityMedium = "medium"
	CardPriorityHigh   = "high"
)

type Card struct {
	ID          string     `db:"id"`
	Title       string     `db:"title"`
	Description *string    `db:"description"`
	Status      string     `db:"status"`
	Priority    string     `db:"priority"`
	DueDate     *time.Time `db:"due_date"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`

	// Loaded relations (not columns)
	Tags       []*Tag       `db:"-"`
	Checklists []*Checklist `db:"-"`
}

func (c *Card) IsDeleted() bool {
	return c.DeletedAt != nil
}
