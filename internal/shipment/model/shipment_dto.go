package model

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/samber/lo"

	"github.com/unknowncanwrite/ship/internal/checklist"
)

var shipmentIDPattern = regexp.MustCompile(`^[^/?#\s][^/?#]*$`)

// ShipmentPatch is a partial update. Nil fields are left alone; Checklist
// entries are merged key by key, every other field replaces the stored value.
type ShipmentPatch struct {
	ShipmentType           *string                 `json:"shipmentType,omitempty"`
	Forwarder              *string                 `json:"forwarder,omitempty"`
	ManualForwarderName    *string                 `json:"manualForwarderName,omitempty"`
	ManualMethod           *string                 `json:"manualMethod,omitempty"`
	Fumigation             *string                 `json:"fumigation,omitempty"`
	ManualFumigationName   *string                 `json:"manualFumigationName,omitempty"`
	ManualFumigationMethod *string                 `json:"manualFumigationMethod,omitempty"`
	Details                *Details                `json:"details,omitempty"`
	Commercial             *Commercial             `json:"commercial,omitempty"`
	Actual                 *Actual                 `json:"actual,omitempty"`
	Checklist              checklist.CompletionMap `json:"checklist,omitempty"`
	CustomTasks            *[]checklist.CustomTask `json:"customTasks,omitempty"`
	Documents              *[]Document             `json:"documents,omitempty"`
	ShipmentChecklist      *[]ChecklistItem        `json:"shipmentChecklist,omitempty"`
}

// CreateShipmentRequest carries the caller-chosen id and any initial fields.
type CreateShipmentRequest struct {
	ID string `json:"id"`
	ShipmentPatch
}

// FieldChange describes one top-level field a patch changed.
type FieldChange struct {
	Field   string
	Summary string
}

// IsEmpty reports whether the patch touches nothing. An empty checklist
// object counts as absent.
func (p *ShipmentPatch) IsEmpty() bool {
	rest := *p
	rest.Checklist = nil
	return len(p.Checklist) == 0 && reflect.ValueOf(rest).IsZero()
}

// NewShipment builds a defaulted record from a create request.
func (r *CreateShipmentRequest) NewShipment() *Shipment {
	s := &Shipment{ID: strings.TrimSpace(r.ID)}
	r.ShipmentPatch.ApplyTo(s)
	s.ApplyDefaults()
	return s
}

// ApplyTo merges the patch into s and reports each top-level field whose value changed.
func (p *ShipmentPatch) ApplyTo(s *Shipment) []FieldChange {
	var changes []FieldChange

	setString := func(field string, dst *string, v *string) {
		if v == nil || *v == *dst {
			return
		}
		changes = append(changes, FieldChange{
			Field:   field,
			Summary: fmt.Sprintf("Changed %s from %q to %q", field, *dst, *v),
		})
		*dst = *v
	}
	setString("shipmentType", &s.ShipmentType, p.ShipmentType)
	setString("forwarder", &s.Forwarder, p.Forwarder)
	setString("manualForwarderName", &s.ManualForwarderName, p.ManualForwarderName)
	setString("manualMethod", &s.ManualMethod, p.ManualMethod)
	setString("fumigation", &s.Fumigation, p.Fumigation)
	setString("manualFumigationName", &s.ManualFumigationName, p.ManualFumigationName)
	setString("manualFumigationMethod", &s.ManualFumigationMethod, p.ManualFumigationMethod)

	if p.Details != nil {
		if fields := changedFields(s.Details, *p.Details); len(fields) > 0 {
			changes = append(changes, FieldChange{Field: "details", Summary: "Updated details: " + strings.Join(fields, ", ")})
			s.Details = *p.Details
		}
	}
	if p.Commercial != nil {
		if fields := changedFields(s.Commercial, *p.Commercial); len(fields) > 0 {
			changes = append(changes, FieldChange{Field: "commercial", Summary: "Updated commercial: " + strings.Join(fields, ", ")})
			s.Commercial = *p.Commercial
		}
	}
	if p.Actual != nil {
		if fields := changedFields(s.Actual, *p.Actual); len(fields) > 0 {
			changes = append(changes, FieldChange{Field: "actual", Summary: "Updated actual: " + strings.Join(fields, ", ")})
			s.Actual = *p.Actual
		}
	}
	if len(p.Checklist) > 0 {
		if summary := mergeChecklist(s, p.Checklist); summary != "" {
			changes = append(changes, FieldChange{Field: "checklist", Summary: summary})
		}
	}
	if p.CustomTasks != nil && !reflect.DeepEqual(s.CustomTasks, *p.CustomTasks) {
		done := lo.CountBy(*p.CustomTasks, func(t checklist.CustomTask) bool { return t.Completed })
		changes = append(changes, FieldChange{
			Field:   "customTasks",
			Summary: fmt.Sprintf("Updated custom tasks (%d of %d completed)", done, len(*p.CustomTasks)),
		})
		s.CustomTasks = *p.CustomTasks
	}
	if p.Documents != nil && !reflect.DeepEqual(s.Documents, *p.Documents) {
		changes = append(changes, FieldChange{
			Field:   "documents",
			Summary: fmt.Sprintf("Documents changed from %d to %d attached", len(s.Documents), len(*p.Documents)),
		})
		s.Documents = *p.Documents
	}
	if p.ShipmentChecklist != nil && !reflect.DeepEqual(s.ShipmentChecklist, *p.ShipmentChecklist) {
		done := lo.CountBy(*p.ShipmentChecklist, func(i ChecklistItem) bool { return i.Completed })
		changes = append(changes, FieldChange{
			Field:   "shipmentChecklist",
			Summary: fmt.Sprintf("Updated shipment checklist (%d of %d done)", done, len(*p.ShipmentChecklist)),
		})
		s.ShipmentChecklist = *p.ShipmentChecklist
	}

	return changes
}

// mergeChecklist applies each entry through checklist.SetTaskState and
// describes the keys whose value changed.
func mergeChecklist(s *Shipment, entries checklist.CompletionMap) string {
	keys := lo.Keys(entries)
	sort.Strings(keys)

	merged := s.Checklist
	var parts []string
	for _, key := range keys {
		value := entries[key]
		if old, ok := merged[key]; ok && old.Equal(value) {
			continue
		}
		merged = checklist.SetTaskState(merged, key, value)
		switch {
		case value.Checked():
			parts = append(parts, "checked "+key)
		case value.IsBool():
			parts = append(parts, "unchecked "+key)
		default:
			parts = append(parts, "updated "+key)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	s.Checklist = merged
	return "Checklist: " + strings.Join(parts, ", ")
}

// changedFields lists the json names of struct fields that differ between a and b.
func changedFields(a, b any) []string {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	t := va.Type()
	var out []string
	for i := 0; i < t.NumField(); i++ {
		if reflect.DeepEqual(va.Field(i).Interface(), vb.Field(i).Interface()) {
			continue
		}
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" {
			name = t.Field(i).Name
		}
		out = append(out, name)
	}
	return out
}

// ValidateCreateShipmentRequest checks the fields a new record cannot do without.
func ValidateCreateShipmentRequest(req CreateShipmentRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.ID, validation.Required, validation.Length(1, 100), validation.Match(shipmentIDPattern)),
	)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidParameter, err.Error())
	}
	return validatePatch(req.ShipmentPatch)
}

func ValidateShipmentPatch(patch ShipmentPatch) error {
	if patch.IsEmpty() {
		return fmt.Errorf("%w: patch has no fields", ErrInvalidParameter)
	}
	return validatePatch(patch)
}

func validatePatch(patch ShipmentPatch) error {
	if patch.CustomTasks != nil {
		for i, task := range *patch.CustomTasks {
			if err := validation.ValidateStruct(&task,
				validation.Field(&task.ID, validation.Required),
				validation.Field(&task.Text, validation.Required),
			); err != nil {
				return fmt.Errorf("%w: customTasks[%d]: %s", ErrInvalidParameter, i, err.Error())
			}
		}
	}
	if patch.Documents != nil {
		for i, doc := range *patch.Documents {
			if err := validation.ValidateStruct(&doc,
				validation.Field(&doc.ID, validation.Required),
				validation.Field(&doc.Name, validation.Required),
			); err != nil {
				return fmt.Errorf("%w: documents[%d]: %s", ErrInvalidParameter, i, err.Error())
			}
		}
	}
	if patch.ShipmentChecklist != nil {
		for i, item := range *patch.ShipmentChecklist {
			if err := validation.ValidateStruct(&item,
				validation.Field(&item.ID, validation.Required),
				validation.Field(&item.Text, validation.Required),
			); err != nil {
				return fmt.Errorf("%w: shipmentChecklist[%d]: %s", ErrInvalidParameter, i, err.Error())
			}
		}
	}
	return nil
}

// ShipmentListResult is one page of shipments.
type ShipmentListResult struct {
	TotalCount int64      `json:"totalCount"`
	Shipments  []Shipment `json:"shipments"`
	Offset     int        `json:"offset"`
	Limit      int        `json:"limit"`
}
