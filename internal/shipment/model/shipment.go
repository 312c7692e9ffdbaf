package model

import (
	"time"

	"github.com/unknowncanwrite/ship/internal/checklist"
)

// Defaults applied to new shipments that omit their configuration.
const (
	DefaultShipmentType  = string(checklist.ShipmentTypeWithInspection)
	DefaultForwarder     = string(checklist.ForwarderXPO)
	DefaultFumigation    = string(checklist.FumigationSkyServices)
	DefaultContactMethod = string(checklist.ContactMethodEmail)
)

// Details are the free-text shipment particulars.
type Details struct {
	Customer       string `json:"customer"`
	Consignee      string `json:"consignee"`
	Location       string `json:"location"`
	ShippingLine   string `json:"shippingLine"`
	Brand          string `json:"brand"`
	InspectionDate string `json:"inspectionDate"`
	ETA            string `json:"eta"`
	LoadingDate    string `json:"loadingDate"`
	IDF            string `json:"idf"`
	Seal           string `json:"seal"`
	UCR            string `json:"ucr"`
	Proforma       string `json:"proforma"`
	CommercialInv  string `json:"commercialInv"`
	Container      string `json:"container"`
	Booking        string `json:"booking"`
}

// Commercial holds the invoiced figures.
type Commercial struct {
	Invoice     string `json:"invoice"`
	Qty         string `json:"qty"`
	NetWeight   string `json:"netWeight"`
	GrossWeight string `json:"grossWeight"`
}

// Actual holds the figures as loaded.
type Actual struct {
	Invoice     string `json:"invoice"`
	Qty         string `json:"qty"`
	NetWeight   string `json:"netWeight"`
	GrossWeight string `json:"grossWeight"`
	InvoiceSent bool   `json:"invoiceSent"`
}

// Document references a file held by document storage. ID is the storage key.
type Document struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	File      string    `json:"file"`
	MimeType  string    `json:"mimeType,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChecklistItem is an entry in the shipment's free-form to-do list. The to-do
// list is unrelated to the workflow checklist and never affects progress.
type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Shipment is the persisted shipment record.
type Shipment struct {
	ID                     string                  `gorm:"type:varchar(100);primaryKey" json:"id"`
	ShipmentType           string                  `gorm:"type:varchar(50);column:shipment_type;not null" json:"shipmentType"`
	Forwarder              string                  `gorm:"type:varchar(100);column:forwarder;not null" json:"forwarder"`
	ManualForwarderName    string                  `gorm:"type:varchar(255);column:manual_forwarder_name" json:"manualForwarderName"`
	ManualMethod           string                  `gorm:"type:varchar(20);column:manual_method" json:"manualMethod"`
	Fumigation             string                  `gorm:"type:varchar(100);column:fumigation;not null" json:"fumigation"`
	ManualFumigationName   string                  `gorm:"type:varchar(255);column:manual_fumigation_name" json:"manualFumigationName"`
	ManualFumigationMethod string                  `gorm:"type:varchar(20);column:manual_fumigation_method" json:"manualFumigationMethod"`
	Details                Details                 `gorm:"type:jsonb;column:details;serializer:json;not null" json:"details"`
	Commercial             Commercial              `gorm:"type:jsonb;column:commercial;serializer:json;not null" json:"commercial"`
	Actual                 Actual                  `gorm:"type:jsonb;column:actual;serializer:json;not null" json:"actual"`
	Checklist              checklist.CompletionMap `gorm:"type:jsonb;column:checklist;serializer:json;not null" json:"checklist"`
	CustomTasks            []checklist.CustomTask  `gorm:"type:jsonb;column:custom_tasks;serializer:json;not null" json:"customTasks"`
	Documents              []Document              `gorm:"type:jsonb;column:documents;serializer:json;not null" json:"documents"`
	ShipmentChecklist      []ChecklistItem         `gorm:"type:jsonb;column:shipment_checklist;serializer:json;not null" json:"shipmentChecklist"`
	CreatedAt              time.Time               `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
	UpdatedAt              time.Time               `gorm:"column:updated_at;autoUpdateTime" json:"lastUpdated"`
}

func (s *Shipment) TableName() string {
	return "shipments"
}

// ApplyDefaults fills the configuration and nested collections a record must
// always carry, so readers never see nil maps or lists.
func (s *Shipment) ApplyDefaults() {
	if s.ShipmentType == "" {
		s.ShipmentType = DefaultShipmentType
	}
	if s.Forwarder == "" {
		s.Forwarder = DefaultForwarder
	}
	if s.Fumigation == "" {
		s.Fumigation = DefaultFumigation
	}
	if s.ManualMethod == "" {
		s.ManualMethod = DefaultContactMethod
	}
	if s.ManualFumigationMethod == "" {
		s.ManualFumigationMethod = DefaultContactMethod
	}
	if s.Checklist == nil {
		s.Checklist = checklist.CompletionMap{}
	}
	if s.CustomTasks == nil {
		s.CustomTasks = []checklist.CustomTask{}
	}
	if s.Documents == nil {
		s.Documents = []Document{}
	}
	if s.ShipmentChecklist == nil {
		s.ShipmentChecklist = []ChecklistItem{}
	}
}

// Configuration is the view of the record the task resolver works from.
func (s *Shipment) Configuration() checklist.Configuration {
	return checklist.Configuration{
		ShipmentID:   s.ID,
		ShipmentType: checklist.ShipmentType(s.ShipmentType),
		Forwarder:    checklist.ParseForwarder(s.Forwarder, s.ManualForwarderName, s.ManualMethod),
		Fumigation:   checklist.ParseFumigation(s.Fumigation, s.ManualFumigationName, s.ManualFumigationMethod),
		Fields: checklist.Fields{
			Customer:       s.Details.Customer,
			Consignee:      s.Details.Consignee,
			Location:       s.Details.Location,
			ShippingLine:   s.Details.ShippingLine,
			Brand:          s.Details.Brand,
			InspectionDate: s.Details.InspectionDate,
			ETA:            s.Details.ETA,
			LoadingDate:    s.Details.LoadingDate,
			IDF:            s.Details.IDF,
			Seal:           s.Details.Seal,
			UCR:            s.Details.UCR,
			Proforma:       s.Details.Proforma,
			Invoice:        s.Commercial.Invoice,
			Container:      s.Details.Container,
			Booking:        s.Details.Booking,
		},
	}
}
