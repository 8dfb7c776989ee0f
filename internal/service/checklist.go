package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/repository"
)

var ErrChecklistNotFound = errors.New("checklist not found")

type ChecklistService struct {
	checklistRepository     repository.ChecklistRepository
	checklistItemRepository repository.ChecklistItemRepository
	cardRepository          repository.CardRepository
}

func NewChecklistService(
	checklistRepository repository.ChecklistRepository,
	checklistItemRepository repository.ChecklistItemRepository,
	cardRepository repository.CardRepository,
) *ChecklistService {
	return &ChecklistService{
		checklistRepository:     checklistRepository,
		checklistItemRepository: checklistItemRepository,
		cardRepository:          cardRepository,
	}
}

// Create adds a checklist to an existing card.
func (s *ChecklistService) Create(cardID, title string) (*model.Checklist, error) {
	_, err := s.cardRepository.ByID(cardID)
	if err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}

	now := time.Now()
	checklist := &model.Checklist{
		ID:        uuid.New().String(),
		CardID:    cardID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.checklistRepository.Create(checklist)
	if err != nil {
		return nil, fmt.Errorf("failed to create checklist: %w", err)
	}

	return checklist, nil
}

// Checklist loads a checklist with its items.
func (s *ChecklistService) Checklist(id string) (*model.Checklist, error) {
	checklist, err := s.checklistRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrChecklistNotFound) {
			return nil, ErrChecklistNotFound
		}
		return nil, err
	}

	checklist.Items, err = s.checklistItemRepository.ByChecklist(checklist.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load checklist items: %w", err)
	}

	return checklist, nil
}

// ByCard returns all checklists of a card, items included.
func (s *ChecklistService) ByCard(cardID string) ([]*model.Checklist, error) {
	_, err := s.cardRepository.ByID(cardID)
	if err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}

	checklists, err := s.checklistRepository.ByCard(cardID)
	if err != nil {
		return nil, err
	}

	for _, checklist := range checklists {
		checklist.Items, err = s.checklistItemRepository.ByChecklist(checklist.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load checklist items: %w", err)
		}
	}

	return checklists, nil
}

func (s *ChecklistService) Update(id, title string) (*model.Checklist, error) {
	checklist, err := s.Checklist(id)
	if err != nil {
		return nil, err
	}

	checklist.Title = title
	err = s.checklistRepository.Update(checklist)
	if err != nil {
		if errors.Is(err, repository.ErrChecklistNotFound) {
			return nil, ErrChecklistNotFound
		}
		return nil, err
	}

	return checklist, nil
}

func (s *ChecklistService) Delete(id string) error {
	err := s.checklistRepository.SoftDelete(id, time.Now())
	if errors.Is(err, repository.ErrChecklistNotFound) {
		return ErrChecklistNotFound
	}
	return err
}
