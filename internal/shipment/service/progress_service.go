package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/unknowncanwrite/ship/internal/checklist"
	"github.com/unknowncanwrite/ship/internal/shipment/model"
)

// ProgressView is the derived workflow state of one shipment.
type ProgressView struct {
	ShipmentID   string                 `json:"shipmentId"`
	ShipmentType string                 `json:"shipmentType"`
	Report       checklist.Report       `json:"report"`
	CustomTasks  []checklist.CustomTask `json:"customTasks"`
}

// ProgressService resolves stored shipments through the task catalog and
// persists checklist and custom-task mutations.
type ProgressService struct {
	store   ShipmentStore
	catalog *checklist.Catalog
}

func NewProgressService(store ShipmentStore, catalog *checklist.Catalog) *ProgressService {
	return &ProgressService{store: store, catalog: catalog}
}

// Plan returns the shipment together with its resolved task plan.
func (s *ProgressService) Plan(ctx context.Context, shipmentID string) (*model.Shipment, checklist.Plan, error) {
	shipment, err := s.store.Get(ctx, shipmentID)
	if err != nil {
		return nil, checklist.Plan{}, err
	}
	return shipment, s.catalog.Resolve(shipment.Configuration()), nil
}

// Progress evaluates a stored shipment.
func (s *ProgressService) Progress(ctx context.Context, shipmentID string) (*ProgressView, error) {
	shipment, err := s.store.Get(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	return s.View(shipment), nil
}

// View evaluates an already loaded shipment.
func (s *ProgressService) View(shipment *model.Shipment) *ProgressView {
	plan := s.catalog.Resolve(shipment.Configuration())
	return &ProgressView{
		ShipmentID:   shipment.ID,
		ShipmentType: shipment.ShipmentType,
		Report:       checklist.Evaluate(plan, shipment.Checklist, shipment.CustomTasks),
		CustomTasks:  shipment.CustomTasks,
	}
}

// SetTaskState writes one completion map entry. Ids outside the current plan
// are stored like any other key and simply do not count.
func (s *ProgressService) SetTaskState(ctx context.Context, shipmentID, taskID string, value checklist.Value) (*ProgressView, error) {
	if strings.TrimSpace(taskID) == "" {
		return nil, fmt.Errorf("%w: task ID cannot be empty", model.ErrInvalidParameter)
	}
	shipment, err := s.store.Patch(ctx, shipmentID, model.ShipmentPatch{
		Checklist: checklist.SetTaskState(nil, taskID, value),
	})
	if err != nil {
		return nil, err
	}
	return s.View(shipment), nil
}

// AddCustomTask appends an unchecked custom task.
func (s *ProgressService) AddCustomTask(ctx context.Context, shipmentID, text string) (*checklist.CustomTask, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: custom task text cannot be empty", model.ErrInvalidParameter)
	}
	task := checklist.CustomTask{ID: uuid.NewString(), Text: text}

	_, err := s.store.Mutate(ctx, shipmentID, func(current *model.Shipment) (model.ShipmentPatch, error) {
		tasks := append(append([]checklist.CustomTask{}, current.CustomTasks...), task)
		return model.ShipmentPatch{CustomTasks: &tasks}, nil
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ToggleCustomTask flips a custom task's completed flag.
func (s *ProgressService) ToggleCustomTask(ctx context.Context, shipmentID, taskID string) (*checklist.CustomTask, error) {
	var toggled checklist.CustomTask
	_, err := s.store.Mutate(ctx, shipmentID, func(current *model.Shipment) (model.ShipmentPatch, error) {
		_, idx, ok := lo.FindIndexOf(current.CustomTasks, func(t checklist.CustomTask) bool { return t.ID == taskID })
		if !ok {
			return model.ShipmentPatch{}, fmt.Errorf("%w: %s", model.ErrCustomTaskNotFound, taskID)
		}
		tasks := append([]checklist.CustomTask{}, current.CustomTasks...)
		tasks[idx].Completed = !tasks[idx].Completed
		toggled = tasks[idx]
		return model.ShipmentPatch{CustomTasks: &tasks}, nil
	})
	if err != nil {
		return nil, err
	}
	return &toggled, nil
}

// DeleteCustomTask removes a custom task.
func (s *ProgressService) DeleteCustomTask(ctx context.Context, shipmentID, taskID string) error {
	_, err := s.store.Mutate(ctx, shipmentID, func(current *model.Shipment) (model.ShipmentPatch, error) {
		tasks := lo.Reject(current.CustomTasks, func(t checklist.CustomTask, _ int) bool { return t.ID == taskID })
		if len(tasks) == len(current.CustomTasks) {
			return model.ShipmentPatch{}, fmt.Errorf("%w: %s", model.ErrCustomTaskNotFound, taskID)
		}
		return model.ShipmentPatch{CustomTasks: &tasks}, nil
	})
	return err
}

// AddChecklistItem appends an entry to the shipment's to-do list.
func (s *ProgressService) AddChecklistItem(ctx context.Context, shipmentID, text string) (*model.ChecklistItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: checklist item text cannot be empty", model.ErrInvalidParameter)
	}
	item := model.ChecklistItem{ID: uuid.NewString(), Text: text}

	_, err := s.store.Mutate(ctx, shipmentID, func(current *model.Shipment) (model.ShipmentPatch, error) {
		items := append(append([]model.ChecklistItem{}, current.ShipmentChecklist...), item)
		return model.ShipmentPatch{ShipmentChecklist: &items}, nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ToggleChecklistItem flips a to-do entry.
func (s *ProgressService) ToggleChecklistItem(ctx context.Context, shipmentID, itemID string) (*model.ChecklistItem, error) {
	var toggled model.ChecklistItem
	_, err := s.store.Mutate(ctx, shipmentID, func(current *model.Shipment) (model.ShipmentPatch, error) {
		_, idx, ok := lo.FindIndexOf(current.ShipmentChecklist, func(i model.ChecklistItem) bool { return i.ID == itemID })
		if !ok {
			return model.ShipmentPatch{}, fmt.Errorf("%w: %s", model.ErrTodoItemNotFound, itemID)
		}
		items := append([]model.ChecklistItem{}, current.ShipmentChecklist...)
		items[idx].Completed = !items[idx].Completed
		toggled = items[idx]
		return model.ShipmentPatch{ShipmentChecklist: &items}, nil
	})
	if err != nil {
		return nil, err
	}
	return &toggled, nil
}

// DeleteChecklistItem removes a to-do entry.
func (s *ProgressService) DeleteChecklistItem(ctx context.Context, shipmentID, itemID string) error {
	_, err := s.store.Mutate(ctx, shipmentID, func(current *model.Shipment) (model.ShipmentPatch, error) {
		items := lo.Reject(current.ShipmentChecklist, func(i model.ChecklistItem, _ int) bool { return i.ID == itemID })
		if len(items) == len(current.ShipmentChecklist) {
			return model.ShipmentPatch{}, fmt.Errorf("%w: %s", model.ErrTodoItemNotFound, itemID)
		}
		return model.ShipmentPatch{ShipmentChecklist: &items}, nil
	})
	return err
}
