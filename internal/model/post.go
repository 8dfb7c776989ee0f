package model

import (
	"time"
)

type PostStatus int

const (
	PostStatusPublic  PostStatus = 0
	PostStatusDraft   PostStatus = 1
	PostStatusDeleted PostStatus = 2
)

// Post body is stored as markdown and rendered to HTML when formatted for
// API responses.
type Post struct {
	ID        string     `db:"id"`
	Title     string     `db:"title"`
	Body      string     `db:"body"`
	Status    PostStatus `db:"status"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}
