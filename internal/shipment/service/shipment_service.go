package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/unknowncanwrite/ship/internal/shipment/model"
)

// MutateFunc inspects the locked, current record and returns the patch to apply.
type MutateFunc func(current *model.Shipment) (model.ShipmentPatch, error)

// ShipmentStore is the durable home of shipment records.
type ShipmentStore interface {
	Create(ctx context.Context, shipment *model.Shipment) error
	Get(ctx context.Context, id string) (*model.Shipment, error)
	List(ctx context.Context) ([]model.Shipment, error)
	ListPage(ctx context.Context, offset, limit int) ([]model.Shipment, int64, error)
	Patch(ctx context.Context, id string, patch model.ShipmentPatch) (*model.Shipment, error)
	Mutate(ctx context.Context, id string, fn MutateFunc) (*model.Shipment, error)
	Delete(ctx context.Context, id string) error
	ListAuditLogs(ctx context.Context, shipmentID string) ([]model.AuditLog, error)
}

// ShipmentService stores shipments with gorm and appends an audit entry for
// every create, changed field and delete in the same transaction.
type ShipmentService struct {
	db *gorm.DB
}

func NewShipmentService(db *gorm.DB) *ShipmentService {
	return &ShipmentService{db: db}
}

// Models lists the tables this package owns, for migrations.
func Models() []any {
	return []any{&model.Shipment{}, &model.AuditLog{}, &model.Contact{}, &model.Note{}}
}

// Create inserts a shipment under its caller-supplied id.
func (s *ShipmentService) Create(ctx context.Context, shipment *model.Shipment) error {
	if shipment == nil {
		return fmt.Errorf("shipment cannot be nil")
	}
	if shipment.ID == "" {
		return fmt.Errorf("%w: shipment ID cannot be empty", model.ErrInvalidParameter)
	}
	shipment.ApplyDefaults()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Shipment{}).Where("id = ?", shipment.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check shipment existence: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: %s", model.ErrShipmentAlreadyExists, shipment.ID)
		}

		if err := tx.Create(shipment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: %s", model.ErrShipmentAlreadyExists, shipment.ID)
			}
			return fmt.Errorf("failed to create shipment: %w", err)
		}

		return appendAuditLogs(tx, &model.AuditLog{
			ShipmentID: shipment.ID,
			Action:     model.AuditActionCreate,
			Summary:    "Shipment created",
			Timestamp:  shipment.CreatedAt,
		})
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "shipment created", "shipmentID", shipment.ID)
	return nil
}

// Get retrieves a shipment by id.
func (s *ShipmentService) Get(ctx context.Context, id string) (*model.Shipment, error) {
	var shipment model.Shipment
	if err := s.db.WithContext(ctx).First(&shipment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", model.ErrShipmentNotFound, id)
		}
		return nil, fmt.Errorf("failed to retrieve shipment: %w", err)
	}
	shipment.ApplyDefaults()
	return &shipment, nil
}

// List returns every shipment, newest first.
func (s *ShipmentService) List(ctx context.Context) ([]model.Shipment, error) {
	var shipments []model.Shipment
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&shipments).Error; err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}
	for i := range shipments {
		shipments[i].ApplyDefaults()
	}
	return shipments, nil
}

// ListPage returns one page of shipments, newest first, with the total count.
func (s *ShipmentService) ListPage(ctx context.Context, offset, limit int) ([]model.Shipment, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Shipment{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count shipments: %w", err)
	}

	var shipments []model.Shipment
	if err := s.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit).Find(&shipments).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list shipments: %w", err)
	}
	for i := range shipments {
		shipments[i].ApplyDefaults()
	}
	return shipments, total, nil
}

// Patch merges a partial update into the stored record.
func (s *ShipmentService) Patch(ctx context.Context, id string, patch model.ShipmentPatch) (*model.Shipment, error) {
	return s.Mutate(ctx, id, func(*model.Shipment) (model.ShipmentPatch, error) {
		return patch, nil
	})
}

// Mutate locks the record, lets fn derive a patch from its current state, and
// applies it. The whole read-modify-write runs in one transaction so
// concurrent writers only ever race on the fields they both touch.
func (s *ShipmentService) Mutate(ctx context.Context, id string, fn MutateFunc) (*model.Shipment, error) {
	var shipment model.Shipment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&shipment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", model.ErrShipmentNotFound, id)
			}
			return fmt.Errorf("failed to retrieve shipment: %w", err)
		}
		shipment.ApplyDefaults()

		patch, err := fn(&shipment)
		if err != nil {
			return err
		}
		changes := patch.ApplyTo(&shipment)

		// Save always bumps updated_at, even when nothing changed.
		if err := tx.Save(&shipment).Error; err != nil {
			return fmt.Errorf("failed to update shipment: %w", err)
		}

		logs := make([]*model.AuditLog, 0, len(changes))
		for _, change := range changes {
			logs = append(logs, &model.AuditLog{
				ShipmentID: shipment.ID,
				Action:     model.AuditActionUpdate,
				Field:      change.Field,
				Summary:    change.Summary,
				Timestamp:  shipment.UpdatedAt,
			})
		}
		return appendAuditLogs(tx, logs...)
	})
	if err != nil {
		return nil, err
	}

	return &shipment, nil
}

// Delete removes a shipment. Its audit history is kept.
func (s *ShipmentService) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&model.Shipment{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete shipment: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", model.ErrShipmentNotFound, id)
		}

		return appendAuditLogs(tx, &model.AuditLog{
			ShipmentID: id,
			Action:     model.AuditActionDelete,
			Summary:    "Shipment deleted",
			Timestamp:  tx.NowFunc(),
		})
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "shipment deleted", "shipmentID", id)
	return nil
}

// ListAuditLogs returns the history of a shipment, newest first. It is not an
// error for a shipment to have no history, or to no longer exist.
func (s *ShipmentService) ListAuditLogs(ctx context.Context, shipmentID string) ([]model.AuditLog, error) {
	var logs []model.AuditLog
	result := s.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID).
		Order("timestamp DESC").
		Find(&logs)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to retrieve audit logs: %w", result.Error)
	}
	return logs, nil
}

func appendAuditLogs(tx *gorm.DB, logs ...*model.AuditLog) error {
	if len(logs) == 0 {
		return nil
	}
	for _, entry := range logs {
		if entry.Timestamp.IsZero() {
			entry.Timestamp = time.Now().UTC()
		}
	}
	if err := tx.Create(logs).Error; err != nil {
		return fmt.Errorf("failed to append audit log: %w", err)
	}
	return nil
}
