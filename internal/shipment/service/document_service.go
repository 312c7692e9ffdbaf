package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"github.com/unknowncanwrite/ship/internal/shipment/model"
	"github.com/unknowncanwrite/ship/internal/uploads"
)

// FileStore is the document storage collaborator. Its errors are passed
// through wrapped and never interpreted here.
type FileStore interface {
	Upload(ctx context.Context, name, mime string, content []byte) (*uploads.FileMetadata, error)
	Delete(ctx context.Context, key string) error
}

// DocumentService links stored files to shipments.
type DocumentService struct {
	store ShipmentStore
	files FileStore
}

func NewDocumentService(store ShipmentStore, files FileStore) *DocumentService {
	return &DocumentService{store: store, files: files}
}

// Attach uploads content and records it on the shipment. The upload is
// removed again if the shipment cannot be updated.
func (s *DocumentService) Attach(ctx context.Context, shipmentID, name, mime string, content []byte) (*model.Document, error) {
	if _, err := s.store.Get(ctx, shipmentID); err != nil {
		return nil, err
	}

	meta, err := s.files.Upload(ctx, name, mime, content)
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}
	doc := model.Document{
		ID:        meta.Key,
		Name:      meta.Name,
		File:      meta.URL,
		MimeType:  meta.MimeType,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.store.Mutate(ctx, shipmentID, func(current *model.Shipment) (model.ShipmentPatch, error) {
		docs := append(append([]model.Document{}, current.Documents...), doc)
		return model.ShipmentPatch{Documents: &docs}, nil
	})
	if err != nil {
		if delErr := s.files.Delete(ctx, meta.Key); delErr != nil {
			slog.WarnContext(ctx, "failed to cleanup orphaned document", "key", meta.Key, "error", delErr)
		}
		return nil, err
	}

	slog.InfoContext(ctx, "document attached", "shipmentID", shipmentID, "documentID", doc.ID)
	return &doc, nil
}

// Detach deletes the stored file, then unlinks it from the shipment. A
// storage failure leaves the link in place.
func (s *DocumentService) Detach(ctx context.Context, shipmentID, documentID string) error {
	shipment, err := s.store.Get(ctx, shipmentID)
	if err != nil {
		return err
	}
	if !lo.ContainsBy(shipment.Documents, func(d model.Document) bool { return d.ID == documentID }) {
		return fmt.Errorf("%w: %s", model.ErrDocumentNotFound, documentID)
	}

	if err := s.files.Delete(ctx, documentID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	_, err = s.store.Mutate(ctx, shipmentID, func(current *model.Shipment) (model.ShipmentPatch, error) {
		docs := lo.Reject(current.Documents, func(d model.Document, _ int) bool { return d.ID == documentID })
		return model.ShipmentPatch{Documents: &docs}, nil
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "document detached", "shipmentID", shipmentID, "documentID", documentID)
	return nil
}
