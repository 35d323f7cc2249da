package record

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Lookup is an immutable name → registry-ID table (services.yaml,
// support-centers.yaml). Loaded once per run and shared by every expansion.
type Lookup map[string]int

// ParseLookup decodes a flat name → id mapping.
func ParseLookup(data []byte) (Lookup, error) {
	var table Lookup
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("lookup table: %w", err)
	}
	return table, nil
}

// ParseID extracts the ID field from a FACILITY.yaml or SITE.yaml marker.
func ParseID(data []byte) (int, error) {
	var marker struct {
		ID int `yaml:"ID"`
	}
	if err := yaml.Unmarshal(data, &marker); err != nil {
		return 0, fmt.Errorf("id marker: %w", err)
	}
	return marker.ID, nil
}
