package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unknowncanwrite/ship/internal/shipment/model"
)

// NoteService manages free-standing notes.
type NoteService struct {
	db *gorm.DB
}

func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{db: db}
}

// List returns every note, newest first.
func (s *NoteService) List(ctx context.Context) ([]model.Note, error) {
	var notes []model.Note
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

func (s *NoteService) Create(ctx context.Context, req model.NoteRequest) (*model.Note, error) {
	req.Name = trimmed(req.Name)
	if err := model.ValidateNoteRequest(req, true); err != nil {
		return nil, err
	}
	note := &model.Note{Name: *req.Name}
	if req.Notes != nil {
		note.Notes = *req.Notes
	}
	if err := s.db.WithContext(ctx).Create(note).Error; err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

// Update applies the non-nil request fields.
func (s *NoteService) Update(ctx context.Context, id string, req model.NoteRequest) (*model.Note, error) {
	req.Name = trimmed(req.Name)
	if err := model.ValidateNoteRequest(req, false); err != nil {
		return nil, err
	}
	noteID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrNoteNotFound, id)
	}

	var note model.Note
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&note, "id = ?", noteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", model.ErrNoteNotFound, id)
			}
			return fmt.Errorf("failed to retrieve note: %w", err)
		}
		if req.Name != nil {
			note.Name = *req.Name
		}
		if req.Notes != nil {
			note.Notes = *req.Notes
		}
		if err := tx.Save(&note).Error; err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *NoteService) Delete(ctx context.Context, id string) error {
	noteID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %s", model.ErrNoteNotFound, id)
	}
	result := s.db.WithContext(ctx).Where("id = ?", noteID).Delete(&model.Note{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete note: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", model.ErrNoteNotFound, id)
	}
	return nil
}
