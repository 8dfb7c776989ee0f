package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/repository"
)

var ErrChecklistItemNotFound = errors.New("checklist item not found")

type ChecklistItemService struct {
	checklistItemRepository repository.ChecklistItemRepository
	checklistRepository     repository.ChecklistRepository
}

func NewChecklistItemService(
	checklistItemRepository repository.ChecklistItemRepository,
	checklistRepository repository.ChecklistRepository,
) *ChecklistItemService {
	return &ChecklistItemService{
		checklistItemRepository: checklistItemRepository,
		checklistRepository:     checklistRepository,
	}
}

func (s *ChecklistItemService) Create(checklistID, description string, completed bool) (*model.ChecklistItem, error) {
	_, err := s.checklistRepository.ByID(checklistID)
	if err != nil {
		if errors.Is(err, repository.ErrChecklistNotFound) {
			return nil, ErrChecklistNotFound
		}
		return nil, err
	}

	now := time.Now()
	item := &model.ChecklistItem{
		ID:          uuid.New().String(),
		ChecklistID: checklistID,
		Description: description,
		Completed:   completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.checklistItemRepository.Create(item)
	if err != nil {
		return nil, fmt.Errorf("failed to create checklist item: %w", err)
	}

	return item, nil
}

func (s *ChecklistItemService) Update(id, description string, completed bool) (*model.ChecklistItem, error) {
	item, err := s.byID(id)
	if err != nil {
		return nil, err
	}

	item.Description = description
	item.Completed = completed

	err = s.checklistItemRepository.Update(item)
	if err != nil {
		if errors.Is(err, repository.ErrChecklistItemNotFound) {
			return nil, ErrChecklistItemNotFound
		}
		return nil, err
	}

	return item, nil
}

// Toggle flips the item's completion flag.
func (s *ChecklistItemService) Toggle(id string) (*model.ChecklistItem, error) {
	item, err := s.byID(id)
	if err != nil {
		return nil, err
	}

	item.ToggleCompleted()

	err = s.checklistItemRepository.Update(item)
	if err != nil {
		if errors.Is(err, repository.ErrChecklistItemNotFound) {
			return nil, ErrChecklistItemNotFound
		}
		return nil, err
	}

	return item, nil
}

func (s *ChecklistItemService) Delete(id string) error {
	err := s.checklistItemRepository.SoftDelete(id, time.Now())
	if errors.Is(err, repository.ErrChecklistItemNotFound) {
		return ErrChecklistItemNotFound
	}
	return err
}

func (s *ChecklistItemService) byID(id string) (*model.ChecklistItem, error) {
	item, err := s.checklistItemRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrChecklistItemNotFound) {
			return nil, ErrChecklistItemNotFound
		}
		return nil, err
	}
	return item, nil
}
