package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unknowncanwrite/ship/internal/shipment/model"
)

// ContactService manages the shared address book.
type ContactService struct {
	db *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db}
}

// List returns every contact, newest first.
func (s *ContactService) List(ctx context.Context) ([]model.Contact, error) {
	var contacts []model.Contact
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

func (s *ContactService) Create(ctx context.Context, req model.ContactRequest) (*model.Contact, error) {
	req.Name = trimmed(req.Name)
	if err := model.ValidateContactRequest(req, true); err != nil {
		return nil, err
	}
	contact := &model.Contact{Name: *req.Name}
	if req.Details != nil {
		contact.Details = *req.Details
	}
	if err := s.db.WithContext(ctx).Create(contact).Error; err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	return contact, nil
}

// Update applies the non-nil request fields.
func (s *ContactService) Update(ctx context.Context, id string, req model.ContactRequest) (*model.Contact, error) {
	req.Name = trimmed(req.Name)
	if err := model.ValidateContactRequest(req, false); err != nil {
		return nil, err
	}
	contactID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrContactNotFound, id)
	}

	var contact model.Contact
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&contact, "id = ?", contactID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", model.ErrContactNotFound, id)
			}
			return fmt.Errorf("failed to retrieve contact: %w", err)
		}
		if req.Name != nil {
			contact.Name = *req.Name
		}
		if req.Details != nil {
			contact.Details = *req.Details
		}
		if err := tx.Save(&contact).Error; err != nil {
			return fmt.Errorf("failed to update contact: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	contactID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %s", model.ErrContactNotFound, id)
	}
	result := s.db.WithContext(ctx).Where("id = ?", contactID).Delete(&model.Contact{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete contact: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", model.ErrContactNotFound, id)
	}
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
