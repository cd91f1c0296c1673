// Package storage persists the scraped record set between runs so a report
// can be recomputed without re-hitting the tracker.
package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/openedx/transitions-kpi/pkg/models"
)

// Save writes the record set to path as JSON, replacing any previous content.
func Save(path string, records []models.Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %v", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write states file: %v", err)
	}

	return nil
}

// Load reads a previously saved record set from path.
func Load(path string) ([]models.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read states file: %v", err)
	}

	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal states file: %v", err)
	}

	return records, nil
}
