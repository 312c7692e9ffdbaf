package checklist

import (
	"strings"
	"time"
)

// TemplateContext is the read-only view a Template renders against.
type TemplateContext struct {
	Configuration
	ForwarderName  string
	FumigationName string
}

// InvoiceOrID falls back to the shipment id when no commercial invoice is set yet.
func (c TemplateContext) InvoiceOrID() string {
	if c.Fields.Invoice != "" {
		return c.Fields.Invoice
	}
	return c.ShipmentID
}

// InspectionDate renders the inspection date as dd/mm/yyyy.
func (c TemplateContext) InspectionDate() string {
	return FormatDate(c.Fields.InspectionDate)
}

// Template produces one piece of task content. A nil Template renders as "".
type Template func(TemplateContext) string

// Literal lifts a fixed string into a Template.
func Literal(s string) Template {
	return func(TemplateContext) string { return s }
}

func (t Template) Render(ctx TemplateContext) string {
	if t == nil {
		return ""
	}
	return t(ctx)
}

// FormatDate turns an ISO yyyy-mm-dd date into dd/mm/yyyy. Values that do not
// parse are returned unchanged.
func FormatDate(iso string) string {
	iso = strings.TrimSpace(iso)
	if iso == "" {
		return ""
	}
	t, err := time.Parse(time.DateOnly, iso)
	if err != nil {
		return iso
	}
	return t.Format("02/01/2006")
}
