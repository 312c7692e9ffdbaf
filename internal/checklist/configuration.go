package checklist

import "strings"

// ShipmentType gates the inspection-only phases. Any value other than
// ShipmentTypeWithInspection is treated as a shipment without inspection.
type ShipmentType string

const (
	ShipmentTypeWithInspection ShipmentType = "with-inspection"
	ShipmentTypeNoInspection   ShipmentType = "no-inspection"
)

// ContactMethod decides whether a provider task is framed as an email or a WhatsApp message.
type ContactMethod string

const (
	ContactMethodEmail    ContactMethod = "email"
	ContactMethodWhatsApp ContactMethod = "whatsapp"
)

// ParseContactMethod never fails; anything that is not "whatsapp" is email.
func ParseContactMethod(raw string) ContactMethod {
	if strings.EqualFold(strings.TrimSpace(raw), string(ContactMethodWhatsApp)) {
		return ContactMethodWhatsApp
	}
	return ContactMethodEmail
}

// ProviderKind is the closed set of provider variants the catalog knows how to expand.
type ProviderKind string

const (
	ForwarderXPO          ProviderKind = "xpo"
	ForwarderHMI          ProviderKind = "hmi"
	FumigationSkyServices ProviderKind = "sky-services"
	FumigationSGS         ProviderKind = "sgs"
	ProviderManual        ProviderKind = "manual"
)

// Provider is a forwarder or fumigation choice. Named providers carry curated
// task content; Manual providers are expanded from Name and Method.
type Provider struct {
	Kind   ProviderKind  `json:"kind"`
	Name   string        `json:"name,omitempty"`
	Method ContactMethod `json:"method"`
}

func (p Provider) IsManual() bool {
	return p.Kind == ProviderManual
}

// ParseForwarder maps the stored forwarder choice onto a Provider.
// Unknown choices degrade to a manual provider named after the raw value.
func ParseForwarder(choice, manualName, manualMethod string) Provider {
	return parseProvider(choice, manualName, manualMethod, ForwarderXPO, ForwarderHMI)
}

// ParseFumigation maps the stored fumigation choice onto a Provider.
// Unknown choices degrade to a manual provider named after the raw value.
func ParseFumigation(choice, manualName, manualMethod string) Provider {
	return parseProvider(choice, manualName, manualMethod, FumigationSkyServices, FumigationSGS)
}

func parseProvider(choice, manualName, manualMethod string, named ...ProviderKind) Provider {
	normalized := strings.ToLower(strings.TrimSpace(choice))
	for _, kind := range named {
		if normalized == string(kind) {
			return Provider{Kind: kind, Method: ContactMethodEmail}
		}
	}

	name := strings.TrimSpace(manualName)
	if normalized != "" && normalized != string(ProviderManual) {
		name = strings.TrimSpace(choice)
	}
	return Provider{
		Kind:   ProviderManual,
		Name:   name,
		Method: ParseContactMethod(manualMethod),
	}
}

// Fields are the free-text shipment values substituted into task content.
// They never influence which tasks apply.
type Fields struct {
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
	Invoice        string `json:"invoice"`
	Container      string `json:"container"`
	Booking        string `json:"booking"`
}

// Configuration is everything the resolver needs to expand the catalog for one shipment.
type Configuration struct {
	ShipmentID   string       `json:"shipmentId"`
	ShipmentType ShipmentType `json:"shipmentType"`
	Forwarder    Provider     `json:"forwarder"`
	Fumigation   Provider     `json:"fumigation"`
	Fields       Fields       `json:"fields"`
}

func (c Configuration) WithInspection() bool {
	return c.ShipmentType == ShipmentTypeWithInspection
}
