package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/taskdeck/taskdeck/internal/model"
)

var ErrPostNotFound = errors.New("post not found")

type PostRepository interface {
	// WithTx returns a copy of the repository bound to the given transaction.
	WithTx(tx *sqlx.Tx) PostRepository
	Create(post *model.Post) error
	ByID(id string) (*model.Post, error)
	// Posts returns a page of posts that are not marked deleted, newest first.
	Posts(offset, limit int) ([]*model.Post, error)
	Count() (int, error)
	Update(post *model.Post) error
}

type postRepository struct {
	ext sqlx.Ext
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{ext: db}
}

func (r *postRepository) WithTx(tx *sqlx.Tx) PostRepository {
	return &postRepository{ext: tx}
}

func (r *postRepository) Create(post *model.Post) error {
	query := `INSERT INTO posts (id, title, body, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.ext.Exec(query,
		post.ID,
		post.Title,
		post.Body,
		post.Status,
		post.CreatedAt,
		post.UpdatedAt,
	)
	return err
}

func (r *postRepository) ByID(id string) (*model.Post, error) {
	post := &model.Post{}
	query := `SELECT * FROM posts WHERE id = $1 AND status != $2`

	err := sqlx.Get(r.ext, post, query, id, model.PostStatusDeleted)
	if err == sql.ErrNoRows {
		return nil, ErrPostNotFound
	}

	return post, err
}

func (r *postRepository) Posts(offset, limit int) ([]*model.Post, error) {
	var posts []*model.Post
	query := `SELECT * FROM posts WHERE status != $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	err := sqlx.Select(r.ext, &posts, query, model.PostStatusDeleted, limit, offset)
	if err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepository) Count() (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM posts WHERE status != $1`

	err := sqlx.Get(r.ext, &count, query, model.PostStatusDeleted)
	return count, err
}

func (r *postRepository) Update(post *model.Post) error {
	query := `UPDATE posts SET title = $1, body = $2, status = $3, updated_at = $4 WHERE id = $5`

	result, err := r.ext.Exec(query,
		post.Title,
		post.Body,
		post.Status,
		time.Now(),
		post.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPostNotFound
	}

	return nil
}
