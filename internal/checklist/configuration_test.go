package checklist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseForwarder(t *testing.T) {
	tests := []struct {
		choice, name, method string
		want                 Provider
	}{
		{"xpo", "", "", Provider{Kind: ForwarderXPO, Method: ContactMethodEmail}},
		{" HMI ", "ignored", "whatsapp", Provider{Kind: ForwarderHMI, Method: ContactMethodEmail}},
		{"manual", "Acme", "whatsapp", Provider{Kind: ProviderManual, Name: "Acme", Method: ContactMethodWhatsApp}},
		{"manual", "", "fax", Provider{Kind: ProviderManual, Method: ContactMethodEmail}},
		{"", "Acme", "", Provider{Kind: ProviderManual, Name: "Acme", Method: ContactMethodEmail}},
		{"Kuehne Nagel", "Acme", "WhatsApp", Provider{Kind: ProviderManual, Name: "Kuehne Nagel", Method: ContactMethodWhatsApp}},
		{"sgs", "", "", Provider{Kind: ProviderManual, Name: "sgs", Method: ContactMethodEmail}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseForwarder(tt.choice, tt.name, tt.method), "choice %q", tt.choice)
	}
}

func TestParseFumigation(t *testing.T) {
	assert.Equal(t, Provider{Kind: FumigationSkyServices, Method: ContactMethodEmail}, ParseFumigation("sky-services", "", ""))
	assert.Equal(t, Provider{Kind: FumigationSGS, Method: ContactMethodEmail}, ParseFumigation("SGS", "", ""))
	assert.Equal(t, Provider{Kind: ProviderManual, Name: "xpo", Method: ContactMethodEmail}, ParseFumigation("xpo", "", ""))
}

func TestConfiguration_WithInspection(t *testing.T) {
	assert.True(t, Configuration{ShipmentType: ShipmentTypeWithInspection}.WithInspection())
	assert.False(t, Configuration{ShipmentType: ShipmentTypeNoInspection}.WithInspection())
	assert.False(t, Configuration{ShipmentType: "With-Inspection"}.WithInspection())
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "05/03/2024", FormatDate("2024-03-05"))
	assert.Equal(t, "", FormatDate(""))
	assert.Equal(t, "next week", FormatDate("next week"))
}

func TestDefaultDirectory(t *testing.T) {
	dir := DefaultDirectory()
	assert.Equal(t, "IDEAS RECYCLING (PVT) LTD", dir.Exporter)
	assert.Equal(t, "Fazila.Shaikh@sgs.com", dir.Inspection.To)
	assert.Len(t, dir.Inspection.CC, 5)
	assert.Equal(t, "XPO Logistics", dir.Forwarders["xpo"].DisplayName)
	assert.Equal(t, "skyservices2k19@gmail.com", dir.Fumigation["sky-services"].To)
}

func TestLoadDirectory_OverridesOnTopOfDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directory.yaml")
	override := []byte(`
exporter: ACME EXPORTS
forwarders:
  xpo:
    label: XPO
    displayName: XPO Worldwide
    to: bookings@xpo.example
`)
	require.NoError(t, os.WriteFile(path, override, 0o600))

	dir, err := LoadDirectory(path)
	require.NoError(t, err)
	assert.Equal(t, "ACME EXPORTS", dir.Exporter)
	assert.Equal(t, "XPO Worldwide", dir.Forwarders["xpo"].DisplayName)
	assert.Equal(t, "HMI Logistics", dir.Forwarders["hmi"].DisplayName)
	assert.Equal(t, "Fazila.Shaikh@sgs.com", dir.Inspection.To)

	plan := NewCatalog(dir).Resolve(Configuration{
		ShipmentType: ShipmentTypeWithInspection,
		Forwarder:    ParseForwarder("xpo", "", ""),
		Fields:       Fields{Invoice: "INV-1"},
	})
	bl, ok := plan.Task("p4_send_bl_draft")
	require.True(t, ok)
	assert.Equal(t, "bookings@xpo.example", bl.To)
	docs, _ := plan.Task("p1_docs")
	assert.Contains(t, docs.Subject, "ACME EXPORTS, INV-1")

	// The embedded directory is untouched by overrides.
	assert.Equal(t, "XPO Logistics", DefaultDirectory().Forwarders["xpo"].DisplayName)
}

func TestParseDirectory_PartialProviderEntryKeepsBaseFields(t *testing.T) {
	base := DefaultDirectory()
	dir, err := ParseDirectory([]byte("forwarders:\n  xpo:\n    to: ops@xpo.example\nfumigation:\n  sgs:\n    cc: [fumigation@sgs.example]\n"), base)
	require.NoError(t, err)

	xpo := dir.Forwarders["xpo"]
	assert.Equal(t, "ops@xpo.example", xpo.To)
	assert.Equal(t, base.Forwarders["xpo"].Label, xpo.Label)
	assert.Equal(t, "XPO Logistics", xpo.DisplayName)
	assert.Equal(t, base.Forwarders["xpo"].CC, xpo.CC)

	sgs := dir.Fumigation["sgs"]
	assert.Equal(t, []string{"fumigation@sgs.example"}, sgs.CC)
	assert.Equal(t, base.Fumigation["sgs"].DisplayName, sgs.DisplayName)
	assert.Equal(t, base.Fumigation["sgs"].To, sgs.To)

	plan := NewCatalog(dir).Resolve(Configuration{
		ShipmentType: ShipmentTypeWithInspection,
		Forwarder:    ParseForwarder("xpo", "", ""),
	})
	forwarding, ok := plan.Phase(PhaseForwarding)
	require.True(t, ok)
	assert.Equal(t, "Phase 4: Forwarding (XPO Logistics)", forwarding.Title)

	assert.Equal(t, "XPO Logistics", DefaultDirectory().Forwarders["xpo"].DisplayName)
	assert.NotEqual(t, "ops@xpo.example", base.Forwarders["xpo"].To)
}

func TestLoadDirectory_Errors(t *testing.T) {
	_, err := LoadDirectory(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = ParseDirectory([]byte("exporter: [unterminated"), DefaultDirectory())
	assert.Error(t, err)

	_, err = ParseDirectory([]byte("forwarders:\n  xpo:\n    cc: {not: a-list}\n"), DefaultDirectory())
	assert.Error(t, err)

	dir, err := LoadDirectory("")
	require.NoError(t, err)
	assert.Equal(t, DefaultDirectory(), dir)
}
