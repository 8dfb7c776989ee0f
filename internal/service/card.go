package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/repository"
)

var ErrCardNotFound = errors.New("card not found")

// CardsPerPage is the page size used by the card index.
const CardsPerPage = 5

type CardInput struct {
	Title       string
	Description *string
	Status      string
	Priority    string
	DueDate     *time.Time
	Tags        []string
}

// CardPage is one page of the card index.
type CardPage struct {
	Cards      []*model.Card
	Page       int
	PageSize   int
	TotalCount int
}

func (p *CardPage) TotalPages() int {
	if p.TotalCount == 0 {
		return 0
	}
	return (p.TotalCount + p.PageSize - 1) / p.PageSize
}

type CardService struct {
	db                      *sqlx.DB
	cardRepository          repository.CardRepository
	tagRepository           repository.TagRepository
	checklistRepository     repository.ChecklistRepository
	checklistItemRepository repository.ChecklistItemRepository
}

func NewCardService(
	db *sqlx.DB,
	cardRepository repository.CardRepository,
	tagRepository repository.TagRepository,
	checklistRepository repository.ChecklistRepository,
	checklistItemRepository repository.ChecklistItemRepository,
) *CardService {
	return &CardService{
		db:                      db,
		cardRepository:          cardRepository,
		tagRepository:           tagRepository,
		checklistRepository:     checklistRepository,
		checklistItemRepository: checklistItemRepository,
	}
}

// Create stores a new card and its tag set in one transaction. Unknown tag
// names are created on the fly.
func (s *CardService) Create(input CardInput) (*model.Card, error) {
	now := time.Now()
	card := &model.Card{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if card.Status == "" {
		card.Status = model.CardStatusTodo
	}
	if card.Priority == "" {
		card.Priority = model.CardPriorityMedium
	}

	err := repository.Transact(s.db, func(tx *sqlx.Tx) error {
		txErr := s.cardRepository.WithTx(tx).Create(card)
		if txErr != nil {
			return fmt.Errorf("failed to create card: %w", txErr)
		}
		return s.applyTags(tx, card, input.Tags)
	})
	if err != nil {
		return nil, err
	}

	return card, nil
}

// Card loads a card with its tags, checklists and checklist items.
func (s *CardService) Card(id string) (*model.Card, error) {
	card, err := s.cardRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}

	card.Tags, err = s.tagRepository.ForCard(card.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}

	card.Checklists, err = s.checklistRepository.ByCard(card.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load checklists: %w", err)
	}

	for _, checklist := range card.Checklists {
		checklist.Items, err = s.checklistItemRepository.ByChecklist(checklist.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load checklist items: %w", err)
		}
	}

	return card, nil
}

// Cards returns one page of cards with tags preloaded.
func (s *CardService) Cards(page int) (*CardPage, error) {
	if page < 1 {
		page = 1
	}

	count, err := s.cardRepository.Count()
	if err != nil {
		return nil, err
	}

	cards, err := s.cardRepository.Cards((page-1)*CardsPerPage, CardsPerPage)
	if err != nil {
		return nil, err
	}

	for _, card := range cards {
		card.Tags, err = s.tagRepository.ForCard(card.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load tags: %w", err)
		}
	}

	return &CardPage{
		Cards:      cards,
		Page:       page,
		PageSize:   CardsPerPage,
		TotalCount: count,
	}, nil
}

func (s *CardService) Update(id string, input CardInput) (*model.Card, error) {
	card, err := s.cardRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}

	card.Title = input.Title
	card.Description = input.Description
	if input.Status != "" {
		card.Status = input.Status
	}
	if input.Priority != "" {
		card.Priority = input.Priority
	}
	card.DueDate = input.DueDate

	err = repository.Transact(s.db, func(tx *sqlx.Tx) error {
		txErr := s.cardRepository.WithTx(tx).Update(card)
		if txErr != nil {
			return txErr
		}
		return s.applyTags(tx, card, input.Tags)
	})
	if err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}

	return card, nil
}

// Delete soft-deletes the card. The row stays behind with deleted_at set.
func (s *CardService) Delete(id string) error {
	err := s.cardRepository.SoftDelete(id, time.Now())
	if errors.Is(err, repository.ErrCardNotFound) {
		return ErrCardNotFound
	}
	return err
}

func (s *CardService) applyTags(tx *sqlx.Tx, card *model.Card, names []string) error {
	tags := s.tagRepository.WithTx(tx)

	tagIDs := make([]string, 0, len(names))
	card.Tags = card.Tags[:0]
	for _, name := range names {
		tag, err := tags.FindOrCreate(name)
		if err != nil {
			return fmt.Errorf("failed to resolve tag %q: %w", name, err)
		}
		tagIDs = append(tagIDs, tag.ID)
		card.Tags = append(card.Tags, tag)
	}

	err := tags.ReplaceForCard(card.ID, tagIDs)
	if err != nil {
		return fmt.Errorf("failed to update card tags: %w", err)
	}

	return nil
}
