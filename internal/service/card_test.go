package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/repository"
	"github.com/taskdeck/taskdeck/internal/testdb"
)

type cardFixture struct {
	cards      *CardService
	checklists *ChecklistService
	items      *ChecklistItemService
}

func newCardFixture(t *testing.T) *cardFixture {
	t.Helper()

	conn := testdb.New(t)
	cardRepository := repository.NewCardRepository(conn)
	tagRepository := repository.NewTagRepository(conn)
	checklistRepository := repository.NewChecklistRepository(conn)
	checklistItemRepository := repository.NewChecklistItemRepository(conn)

	return &cardFixture{
		cards: NewCardService(
			conn,
			cardRepository,
			tagRepository,
			checklistRepository,
			checklistItemRepository,
		),
		checklists: NewChecklistService(checklistRepository, checklistItemRepository, cardRepository),
		items:      NewChecklistItemService(checklistItemRepository, checklistRepository),
	}
}

func TestCardService_Create(t *testing.T) {
	f := newCardFixture(t)

	description := "weekly groceries"
	due := time.Now().Add(48 * time.Hour)
	card, err := f.cards.Create(CardInput{
		Title:       "buy milk",
		Description: &description,
		Status:      model.CardStatusInProgress,
		Priority:    model.CardPriorityHigh,
		DueDate:     &due,
		Tags:        []string{"errand", "home"},
	})
	require.NoError(t, err)

	loaded, err := f.cards.Card(card.ID)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", loaded.Title)
	assert.Equal(t, model.CardStatusInProgress, loaded.Status)
	assert.Equal(t, model.CardPriorityHigh, loaded.Priority)
	require.Len(t, loaded.Tags, 2)
}

func TestCardService_Create_Defaults(t *testing.T) {
	f := newCardFixture(t)

	card, err := f.cards.Create(CardInput{Title: "bare"})
	require.NoError(t, err)
	assert.Equal(t, model.CardStatusTodo, card.Status)
	assert.Equal(t, model.CardPriorityMedium, card.Priority)
}

func TestCardService_Update_ReplacesTags(t *testing.T) {
	f := newCardFixture(t)

	card, err := f.cards.Create(CardInput{Title: "tagged", Tags: []string{"a", "b"}})
	require.NoError(t, err)

	updated, err := f.cards.Update(card.ID, CardInput{
		Title: "retagged",
		Tags:  []string{"b", "c"},
	})
	require.NoError(t, err)
	assert.Equal(t, "retagged", updated.Title)

	loaded, err := f.cards.Card(card.ID)
	require.NoError(t, err)
	names := make([]string, 0, len(loaded.Tags))
	for _, tag := range loaded.Tags {
		names = append(names, tag.Name)
	}
	assert.ElementsMatch(t, []string{"b", "c"}, names)
}

func TestCardService_Delete(t *testing.T) {
	f := newCardFixture(t)

	card, err := f.cards.Create(CardInput{Title: "gone soon"})
	require.NoError(t, err)

	require.NoError(t, f.cards.Delete(card.ID))

	_, err = f.cards.Card(card.ID)
	assert.ErrorIs(t, err, ErrCardNotFound)

	err = f.cards.Delete(card.ID)
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestCardService_Pagination(t *testing.T) {
	f := newCardFixture(t)

	for i := 0; i < CardsPerPage+2; i++ {
		_, err := f.cards.Create(CardInput{Title: "card"})
		require.NoError(t, err)
	}

	page, err := f.cards.Cards(1)
	require.NoError(t, err)
	assert.Len(t, page.Cards, CardsPerPage)
	assert.Equal(t, CardsPerPage+2, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages())

	page, err = f.cards.Cards(2)
	require.NoError(t, err)
	assert.Len(t, page.Cards, 2)
}

func TestChecklistService_CompletionStats(t *testing.T) {
	f := newCardFixture(t)

	card, err := f.cards.Create(CardInput{Title: "with checklist"})
	require.NoError(t, err)

	checklist, err := f.checklists.Create(card.ID, "shopping")
	require.NoError(t, err)

	first, err := f.items.Create(checklist.ID, "milk", false)
	require.NoError(t, err)
	_, err = f.items.Create(checklist.ID, "bread", false)
	require.NoError(t, err)

	toggled, err := f.items.Toggle(first.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	loaded, err := f.checklists.Checklist(checklist.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.CompletedItemsCount())
	assert.Equal(t, 2, loaded.TotalItemsCount())
	assert.InDelta(t, 50.0, loaded.CompletionPercentage(), 0.001)

	// Toggling back flips the flag again.
	toggled, err = f.items.Toggle(first.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)
}

func TestChecklistService_Create_UnknownCard(t *testing.T) {
	f := newCardFixture(t)

	_, err := f.checklists.Create("missing", "orphan")
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestChecklistItemService_Create_UnknownChecklist(t *testing.T) {
	f := newCardFixture(t)

	_, err := f.items.Create("missing", "orphan", false)
	assert.ErrorIs(t, err, ErrChecklistNotFound)
}
