package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unknowncanwrite/ship/internal/checklist"
)

func TestNewShipment_AppliesDefaults(t *testing.T) {
	req := CreateShipmentRequest{ID: " SHP-001 "}
	s := req.NewShipment()

	assert.Equal(t, "SHP-001", s.ID)
	assert.Equal(t, "with-inspection", s.ShipmentType)
	assert.Equal(t, "xpo", s.Forwarder)
	assert.Equal(t, "sky-services", s.Fumigation)
	assert.Equal(t, "email", s.ManualMethod)
	assert.Equal(t, "email", s.ManualFumigationMethod)
	assert.NotNil(t, s.Checklist)
	assert.NotNil(t, s.CustomTasks)
	assert.NotNil(t, s.Documents)
	assert.NotNil(t, s.ShipmentChecklist)

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"checklist":{}`)
	assert.Contains(t, string(out), `"customTasks":[]`)
}

func TestNewShipment_KeepsSuppliedFields(t *testing.T) {
	var req CreateShipmentRequest
	body := `{"id":"SHP-2","shipmentType":"no-inspection","forwarder":"manual","manualForwarderName":"Acme","manualMethod":"whatsapp","details":{"consignee":"ACME GmbH"},"checklist":{"p4_prepare_bl":true}}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	s := req.NewShipment()
	assert.Equal(t, "no-inspection", s.ShipmentType)
	assert.Equal(t, "ACME GmbH", s.Details.Consignee)
	assert.True(t, s.Checklist.Checked("p4_prepare_bl"))

	cfg := s.Configuration()
	assert.False(t, cfg.WithInspection())
	assert.Equal(t, checklist.Provider{Kind: checklist.ProviderManual, Name: "Acme", Method: checklist.ContactMethodWhatsApp}, cfg.Forwarder)
	assert.Equal(t, checklist.FumigationSkyServices, cfg.Fumigation.Kind)
	assert.Equal(t, "ACME GmbH", cfg.Fields.Consignee)
}

func TestShipmentPatch_ApplyTo(t *testing.T) {
	s := (&CreateShipmentRequest{ID: "SHP-1"}).NewShipment()
	s.Checklist = checklist.CompletionMap{"p1_docs": checklist.BoolValue(true), "p1_fumigation": checklist.BoolValue(true)}

	forwarder := "hmi"
	sameType := s.ShipmentType
	details := s.Details
	details.Container = "MSCU1234567"
	details.Booking = "BK-1"

	patch := ShipmentPatch{
		ShipmentType: &sameType,
		Forwarder:    &forwarder,
		Details:      &details,
		Checklist: checklist.CompletionMap{
			"p1_docs":             checklist.BoolValue(true),
			"p1_fumigation":       checklist.BoolValue(false),
			"p2_fum_docs":         checklist.BoolValue(true),
			"p2_fum_docs_remarks": checklist.TextValue("courier booked"),
		},
	}

	changes := patch.ApplyTo(s)
	fields := lo.Map(changes, func(c FieldChange, _ int) string { return c.Field })
	assert.Equal(t, []string{"forwarder", "details", "checklist"}, fields)
	assert.Equal(t, `Changed forwarder from "xpo" to "hmi"`, changes[0].Summary)
	assert.Equal(t, "Updated details: container, booking", changes[1].Summary)
	assert.Equal(t, "Checklist: unchecked p1_fumigation, checked p2_fum_docs, updated p2_fum_docs_remarks", changes[2].Summary)

	assert.Equal(t, "hmi", s.Forwarder)
	assert.Equal(t, "MSCU1234567", s.Details.Container)
	assert.True(t, s.Checklist.Checked("p1_docs"))
	assert.False(t, s.Checklist.Checked("p1_fumigation"))
	assert.True(t, s.Checklist.Checked("p2_fum_docs"))
	assert.Equal(t, "courier booked", s.Checklist.Remarks("p2_fum_docs"))
}

func TestShipmentPatch_NoopProducesNoChanges(t *testing.T) {
	s := (&CreateShipmentRequest{ID: "SHP-1"}).NewShipment()
	same := s.Forwarder
	tasks := []checklist.CustomTask{}

	patch := ShipmentPatch{Forwarder: &same, CustomTasks: &tasks, Details: &Details{}}
	assert.Empty(t, patch.ApplyTo(s))
}

func TestValidateCreateShipmentRequest(t *testing.T) {
	assert.NoError(t, ValidateCreateShipmentRequest(CreateShipmentRequest{ID: "INV-2024-001"}))

	for _, id := range []string{"", "a/b", " leading", "q?x"} {
		err := ValidateCreateShipmentRequest(CreateShipmentRequest{ID: id})
		assert.True(t, errors.Is(err, ErrInvalidParameter), "id %q", id)
	}

	tasks := []checklist.CustomTask{{ID: "c1"}}
	err := ValidateCreateShipmentRequest(CreateShipmentRequest{ID: "ok", ShipmentPatch: ShipmentPatch{CustomTasks: &tasks}})
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.Contains(t, err.Error(), "customTasks[0]")
}

func TestValidateShipmentPatch(t *testing.T) {
	assert.ErrorIs(t, ValidateShipmentPatch(ShipmentPatch{}), ErrInvalidParameter)
	assert.ErrorIs(t, ValidateShipmentPatch(ShipmentPatch{Checklist: checklist.CompletionMap{}}), ErrInvalidParameter)
	assert.NoError(t, ValidateShipmentPatch(ShipmentPatch{Checklist: checklist.CompletionMap{"p1_docs": checklist.BoolValue(true)}}))

	docs := []Document{{ID: "k1"}}
	assert.ErrorIs(t, ValidateShipmentPatch(ShipmentPatch{Documents: &docs}), ErrInvalidParameter)

	// Unknown provider strings are accepted; the resolver degrades them.
	forwarder := "kuehne-nagel"
	assert.NoError(t, ValidateShipmentPatch(ShipmentPatch{Forwarder: &forwarder}))
}

func TestValidateContactAndNoteRequests(t *testing.T) {
	name := "SGS Karachi"
	blank := ""

	assert.NoError(t, ValidateContactRequest(ContactRequest{Name: &name}, true))
	assert.ErrorIs(t, ValidateContactRequest(ContactRequest{}, true), ErrInvalidParameter)
	assert.NoError(t, ValidateContactRequest(ContactRequest{}, false))
	assert.ErrorIs(t, ValidateContactRequest(ContactRequest{Name: &blank}, false), ErrInvalidParameter)

	assert.NoError(t, ValidateNoteRequest(NoteRequest{Name: &name}, true))
	assert.ErrorIs(t, ValidateNoteRequest(NoteRequest{}, true), ErrInvalidParameter)
}
