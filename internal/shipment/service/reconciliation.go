package service

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/unknowncanwrite/ship/internal/shipment/model"
)

var numberPattern = regexp.MustCompile(`-?\d[\d,]*(?:\.\d+)?`)

// FieldReconciliation compares one commercial figure with its loaded counterpart.
// Difference is actual minus commercial and is only set for numeric fields
// where both sides parsed.
type FieldReconciliation struct {
	Field      string           `json:"field"`
	Commercial string           `json:"commercial"`
	Actual     string           `json:"actual"`
	Comparable bool             `json:"comparable"`
	Matches    bool             `json:"matches"`
	Difference *decimal.Decimal `json:"difference,omitempty"`
}

type Reconciliation struct {
	Fields      []FieldReconciliation `json:"fields"`
	Matches     bool                  `json:"matches"`
	InvoiceSent bool                  `json:"invoiceSent"`
}

// Reconcile compares the invoiced figures with the loaded ones. Values that
// carry no number are reported as not comparable rather than rejected.
func Reconcile(commercial model.Commercial, actual model.Actual) Reconciliation {
	fields := []FieldReconciliation{
		reconcileText("invoice", commercial.Invoice, actual.Invoice),
		reconcileNumber("qty", commercial.Qty, actual.Qty),
		reconcileNumber("netWeight", commercial.NetWeight, actual.NetWeight),
		reconcileNumber("grossWeight", commercial.GrossWeight, actual.GrossWeight),
	}

	matches := true
	for _, f := range fields {
		matches = matches && f.Matches
	}
	return Reconciliation{Fields: fields, Matches: matches, InvoiceSent: actual.InvoiceSent}
}

func reconcileText(field, commercial, actual string) FieldReconciliation {
	c, a := strings.TrimSpace(commercial), strings.TrimSpace(actual)
	r := FieldReconciliation{Field: field, Commercial: commercial, Actual: actual}
	r.Comparable = c != "" && a != ""
	r.Matches = r.Comparable && strings.EqualFold(c, a)
	return r
}

func reconcileNumber(field, commercial, actual string) FieldReconciliation {
	r := FieldReconciliation{Field: field, Commercial: commercial, Actual: actual}
	c, okC := parseQuantity(commercial)
	a, okA := parseQuantity(actual)
	if !okC || !okA {
		return r
	}
	diff := a.Sub(c)
	r.Comparable = true
	r.Matches = diff.IsZero()
	r.Difference = &diff
	return r
}

// parseQuantity reads the first number in s, ignoring thousands separators
// and any unit text around it.
func parseQuantity(s string) (decimal.Decimal, bool) {
	match := numberPattern.FindString(s)
	if match == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(match, ",", ""))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
