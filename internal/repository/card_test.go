package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/testdb"
)

func createTestCard(t *testing.T, cards CardRepository, title string) *model.Card {
	t.Helper()

	now := time.Now()
	card := &model.Card{
		ID:        uuid.New().String(),
		Title:     title,
		Status:    model.CardStatusTodo,
		Priority:  model.CardPriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, cards.Create(card))
	return card
}

func TestCardRepository_SoftDelete(t *testing.T) {
	conn := testdb.New(t)
	cards := NewCardRepository(conn)

	card := createTestCard(t, cards, "buy milk")

	require.NoError(t, cards.SoftDelete(card.ID, time.Now()))

	// Soft-deleted cards disappear from reads and counts.
	_, err := cards.ByID(card.ID)
	assert.ErrorIs(t, err, ErrCardNotFound)

	count, err := cards.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// A second delete reports not found.
	err = cards.SoftDelete(card.ID, time.Now())
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestCardRepository_Pagination(t *testing.T) {
	conn := testdb.New(t)
	cards := NewCardRepository(conn)

	for i := 0; i < 7; i++ {
		createTestCard(t, cards, "card")
	}

	count, err := cards.Count()
	require.NoError(t, err)
	assert.Equal(t, 7, count)

	first, err := cards.Cards(0, 5)
	require.NoError(t, err)
	assert.Len(t, first, 5)

	second, err := cards.Cards(5, 5)
	require.NoError(t, err)
	assert.Len(t, second, 2)
}

func TestTagRepository_FindOrCreate(t *testing.T) {
	conn := testdb.New(t)
	tags := NewTagRepository(conn)

	tag, err := tags.FindOrCreate("urgent")
	require.NoError(t, err)
	require.NotEmpty(t, tag.ID)

	// Same name resolves to the same row.
	again, err := tags.FindOrCreate("urgent")
	require.NoError(t, err)
	assert.Equal(t, tag.ID, again.ID)
}

func TestTagRepository_ReplaceForCard(t *testing.T) {
	conn := testdb.New(t)
	cards := NewCardRepository(conn)
	tags := NewTagRepository(conn)

	card := createTestCard(t, cards, "tagged")

	urgent, err := tags.FindOrCreate("urgent")
	require.NoError(t, err)
	home, err := tags.FindOrCreate("home")
	require.NoError(t, err)

	require.NoError(t, tags.ReplaceForCard(card.ID, []string{urgent.ID, home.ID}))

	got, err := tags.ForCard(card.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// Replacing drops the old set.
	require.NoError(t, tags.ReplaceForCard(card.ID, []string{home.ID}))

	got, err = tags.ForCard(card.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "home", got[0].Name)
}
