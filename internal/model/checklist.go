package model

import (
	"time"
)

type Checklist struct {
	ID        string     `db:"id"`
	CardID    string     `db:"card_id"`
	Title     string     `db:"title"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`

	// Loaded relation (not a column)
	Items []*ChecklistItem `db:"-"`
}

func (c *Checklist) IsDeleted() bool {
	return c.DeletedAt != nil
}

func (c *Checklist) CompletedItemsCount() int {
	count := 0
	for _, item := range c.Items {
		if item.Completed {
			count++
		}
	}
	return count
}

func (c *Checklist) TotalItemsCount() int {
	return len(c.Items)
}

func (c *Checklist) CompletionPercentage() float64 {
	total := c.TotalItemsCount()
	if total == 0 {
		return 0
	}
	return float64(c.CompletedItemsCount()) / float64(total) * 100
}
