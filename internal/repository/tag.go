package repository

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/taskdeck/taskdeck/internal/model"
)

var ErrTagNotFound = errors.New("tag not found")

type TagRepository interface {
	// WithTx returns a copy of the repository bound to the given transaction.
	WithTx(tx *sqlx.Tx) TagRepository
	ByName(name string) (*model.Tag, error)
	// FindOrCreate returns the tag with the given name, creating it first
	// when it does not exist yet.
	FindOrCreate(name string) (*model.Tag, error)
	ForCard(cardID string) ([]*model.Tag, error)
	// ReplaceForCard rewrites the card's tag set.
	ReplaceForCard(cardID string, tagIDs []string) error
}

type tagRepository struct {
	ext sqlx.Ext
}

func NewTagRepository(db *sqlx.DB) TagRepository {
	return &tagRepository{ext: db}
}

func (r *tagRepository) WithTx(tx *sqlx.Tx) TagRepository {
	return &tagRepository{ext: tx}
}

func (r *tagRepository) ByName(name string) (*model.Tag, error) {
	tag := &model.Tag{}
	query := `SELECT * FROM tags WHERE name = $1`

	err := sqlx.Get(r.ext, tag, query, name)
	if err == sql.ErrNoRows {
		return nil, ErrTagNotFound
	}

	return tag, err
}

func (r *tagRepository) FindOrCreate(name string) (*model.Tag, error) {
	tag, err := r.ByName(name)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, ErrTagNotFound) {
		return nil, err
	}

	tag = &model.Tag{ID: uuid.New().String(), Name: name}
	_, err = r.ext.Exec(`INSERT INTO tags (id, name) VALUES ($1, $2)`, tag.ID, tag.Name)
	if err != nil {
		// Lost a race with a concurrent insert of the same name.
		if isUniqueViolation(err) {
			return r.ByName(name)
		}
		return nil, err
	}

	return tag, nil
}

func (r *tagRepository) ForCard(cardID string) ([]*model.Tag, error) {
	var tags []*model.Tag
	query := `SELECT t.id, t.name FROM tags t
	          JOIN card_tags ct ON ct.tag_id = t.id
	          WHERE ct.card_id = $1
	          ORDER BY t.name`

	err := sqlx.Select(r.ext, &tags, query, cardID)
	if err != nil {
		return nil, err
	}

	return tags, nil
}

func (r *tagRepository) ReplaceForCard(cardID string, tagIDs []string) error {
	_, err := r.ext.Exec(`DELETE FROM card_tags WHERE card_id = $1`, cardID)
	if err != nil {
		return err
	}

	for _, tagID := range tagIDs {
		_, err = r.ext.Exec(`INSERT INTO card_tags (card_id, tag_id) VALUES ($1, $2)`, cardID, tagID)
		if err != nil {
			return err
		}
	}

	return nil
}
