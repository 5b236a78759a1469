package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/rgehrsitz/drawdown/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed regulatory.yaml
var defaultRegulatoryYAML []byte

// ParseStatutoryAgeTable decodes and validates a statutory age table
func ParseStatutoryAgeTable(data []byte) (*domain.StatutoryAgeTable, error) {
	var table domain.StatutoryAgeTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse statutory age table: %w", err)
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid statutory age table: %w", err)
	}
	return &table, nil
}

// DefaultStatutoryAgeTable returns the table shipped with the binary
func DefaultStatutoryAgeTable() (*domain.StatutoryAgeTable, error) {
	return ParseStatutoryAgeTable(defaultRegulatoryYAML)
}

// LoadStatutoryAgeTable reads a replacement table from disk. An empty path
// selects the embedded default.
func LoadStatutoryAgeTable(path string) (*domain.StatutoryAgeTable, error) {
	if path == "" {
		return DefaultStatutoryAgeTable()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read regulatory file %s: %w", path, err)
	}
	return ParseStatutoryAgeTable(data)
}
