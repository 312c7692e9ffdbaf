package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unknowncanwrite/ship/internal/shipment/model"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"12,500 kg", "12500", true},
		{"  18.75 MT", "18.75", true},
		{"-3", "-3", true},
		{"approx. 1,000.5", "1000.5", true},
		{"", "0", false},
		{"n/a", "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseQuantity(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestReconcile_AllMatch(t *testing.T) {
	r := Reconcile(
		model.Commercial{Invoice: "INV-42", Qty: "400 bales", NetWeight: "20,000 kg", GrossWeight: "20,400"},
		model.Actual{Invoice: "inv-42 ", Qty: "400", NetWeight: "20000.00", GrossWeight: "20,400 kg", InvoiceSent: true},
	)

	assert.True(t, r.Matches)
	assert.True(t, r.InvoiceSent)
	require.Len(t, r.Fields, 4)
	for _, f := range r.Fields {
		assert.True(t, f.Comparable, f.Field)
		assert.True(t, f.Matches, f.Field)
	}
}

func TestReconcile_Differences(t *testing.T) {
	r := Reconcile(
		model.Commercial{Invoice: "INV-42", Qty: "400", NetWeight: "20,000", GrossWeight: "pending"},
		model.Actual{Invoice: "INV-43", Qty: "398", NetWeight: "20,150.5", GrossWeight: "20,400"},
	)

	assert.False(t, r.Matches)

	byField := map[string]FieldReconciliation{}
	for _, f := range r.Fields {
		byField[f.Field] = f
	}

	assert.True(t, byField["invoice"].Comparable)
	assert.False(t, byField["invoice"].Matches)
	assert.Nil(t, byField["invoice"].Difference)

	require.NotNil(t, byField["qty"].Difference)
	assert.Equal(t, "-2", byField["qty"].Difference.String())

	require.NotNil(t, byField["netWeight"].Difference)
	assert.Equal(t, "150.5", byField["netWeight"].Difference.String())

	assert.False(t, byField["grossWeight"].Comparable)
	assert.False(t, byField["grossWeight"].Matches)
	assert.Nil(t, byField["grossWeight"].Difference)
}

func TestReconcile_EmptyShipment(t *testing.T) {
	r := Reconcile(model.Commercial{}, model.Actual{})
	assert.False(t, r.Matches)
	for _, f := range r.Fields {
		assert.False(t, f.Comparable, f.Field)
	}
}
