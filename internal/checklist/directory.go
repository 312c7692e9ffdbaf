package checklist

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed directory.yaml
var defaultDirectoryYAML []byte

// ProviderEntry is the curated contact data for a named provider.
type ProviderEntry struct {
	Label       string   `yaml:"label"`
	DisplayName string   `yaml:"displayName"`
	To          string   `yaml:"to"`
	CC          []string `yaml:"cc"`
}

type InspectionContact struct {
	Greeting string   `yaml:"greeting"`
	To       string   `yaml:"to"`
	CC       []string `yaml:"cc"`
}

type CustomerDocuments struct {
	CC []string `yaml:"cc"`
}

// Directory holds the recipients, contacts and display names the catalog
// substitutes into task content. Task ids never come from here.
type Directory struct {
	Exporter          string                   `yaml:"exporter"`
	Inspection        InspectionContact        `yaml:"inspection"`
	FumigationBooking string                   `yaml:"fumigationBooking"`
	Forwarders        map[string]ProviderEntry `yaml:"forwarders"`
	Fumigation        map[string]ProviderEntry `yaml:"fumigation"`
	CustomerDocuments CustomerDocuments        `yaml:"customerDocuments"`
}

// DefaultDirectory returns the embedded directory.
func DefaultDirectory() Directory {
	dir, err := ParseDirectory(defaultDirectoryYAML, Directory{})
	if err != nil {
		panic(fmt.Sprintf("embedded catalog directory is invalid: %v", err))
	}
	return dir
}

// providerOverrides holds provider entries undecoded so each one can be
// layered onto the matching base entry.
type providerOverrides struct {
	Forwarders map[string]yaml.Node `yaml:"forwarders"`
	Fumigation map[string]yaml.Node `yaml:"fumigation"`
}

// ParseDirectory decodes data on top of base. Keys absent from data keep the
// base value, down to the fields of individual provider entries.
func ParseDirectory(data []byte, base Directory) (Directory, error) {
	dir := base.clone()
	if err := yaml.Unmarshal(data, &dir); err != nil {
		return Directory{}, fmt.Errorf("failed to parse catalog directory: %w", err)
	}

	var overrides providerOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return Directory{}, fmt.Errorf("failed to parse catalog directory: %w", err)
	}
	if err := mergeProviders(dir.Forwarders, base.Forwarders, overrides.Forwarders); err != nil {
		return Directory{}, fmt.Errorf("failed to parse forwarders: %w", err)
	}
	if err := mergeProviders(dir.Fumigation, base.Fumigation, overrides.Fumigation); err != nil {
		return Directory{}, fmt.Errorf("failed to parse fumigation providers: %w", err)
	}
	return dir, nil
}

// mergeProviders re-decodes each overridden entry onto a copy of its base entry.
func mergeProviders(dst, base map[string]ProviderEntry, nodes map[string]yaml.Node) error {
	for kind, node := range nodes {
		entry := base[kind]
		entry.CC = append([]string(nil), entry.CC...)
		if err := node.Decode(&entry); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
		dst[kind] = entry
	}
	return nil
}

// LoadDirectory reads an override file and layers it over the embedded directory.
// An empty path yields the embedded directory.
func LoadDirectory(path string) (Directory, error) {
	if path == "" {
		return DefaultDirectory(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Directory{}, fmt.Errorf("failed to read catalog directory %s: %w", path, err)
	}
	return ParseDirectory(data, DefaultDirectory())
}

func (d Directory) clone() Directory {
	out := d
	out.Inspection.CC = append([]string(nil), d.Inspection.CC...)
	out.CustomerDocuments.CC = append([]string(nil), d.CustomerDocuments.CC...)
	out.Forwarders = make(map[string]ProviderEntry, len(d.Forwarders))
	for k, v := range d.Forwarders {
		out.Forwarders[k] = v
	}
	out.Fumigation = make(map[string]ProviderEntry, len(d.Fumigation))
	for k, v := range d.Fumigation {
		out.Fumigation[k] = v
	}
	return out
}

// forwarder returns the entry for a forwarder, synthesizing one for manual providers.
func (d Directory) forwarder(p Provider) ProviderEntry {
	return d.lookup(d.Forwarders, p, "Forwarder")
}

func (d Directory) fumigation(p Provider) ProviderEntry {
	return d.lookup(d.Fumigation, p, "Fumigation Provider")
}

func (d Directory) lookup(entries map[string]ProviderEntry, p Provider, fallback string) ProviderEntry {
	if !p.IsManual() {
		entry := entries[string(p.Kind)]
		if entry.Label == "" {
			entry.Label = strings.ToUpper(string(p.Kind))
		}
		if entry.DisplayName == "" {
			entry.DisplayName = entry.Label
		}
		return entry
	}

	name := p.Name
	if name == "" {
		name = fallback
	}
	entry := ProviderEntry{Label: name, DisplayName: name}
	if p.Method == ContactMethodWhatsApp {
		entry.To = p.Name
	}
	return entry
}

func joinRecipients(list []string) string {
	return strings.Join(list, ", ")
}
