// Package ingest loads facility metadata and pre-extracted claims from the
// collaborator-facing input formats: a JSON batch file (facilities with
// their raw claims) or the source CSV of facility metadata alone.
package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/caregap/internal/model"
)

// LoadBatches reads facility batches (facility metadata plus the external
// extractor's raw claims) from a JSON file.
func LoadBatches(path string) ([]model.FacilityBatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}

	var batches []model.FacilityBatch
	if err := json.Unmarshal(data, &batches); err != nil {
		return nil, fmt.Errorf("parse batch file: %w", err)
	}

	seen := make(map[string]bool, len(batches))
	for i := range batches {
		fac := &batches[i].Facility
		if fac.ID == "" {
			return nil, fmt.Errorf("batch %d: facility id is required", i)
		}
		if seen[fac.ID] {
			return nil, fmt.Errorf("duplicate facility id %q", fac.ID)
		}
		seen[fac.ID] = true
		fac.Description = CleanText(fac.Description)
	}

	return batches, nil
}

// WriteBatches writes facility batches as indented JSON, the same format
// LoadBatches reads. Used by the extract command to hand off to analyze.
func WriteBatches(batches []model.FacilityBatch, path string) error {
	data, err := json.MarshalIndent(batches, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal batches: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write batch file: %w", err)
	}
	return nil
}

// Column aliases accepted in facility CSVs. The first present alias wins.
var csvColumns = map[string][]string{
	"id":          {"facility_id", "row_id", "id"},
	"name":        {"name", "facility_name"},
	"type":        {"facility_type", "facility_type_simple", "facilitytypeid"},
	"region":      {"region", "region_norm", "address_stateorregion"},
	"district":    {"district", "address_city"},
	"description": {"description", "facility_context", "_blob"},
}

// LoadFacilitiesCSV reads facility metadata from a CSV export. Descriptions
// are cleaned for extraction; rows without an id or name are rejected.
func LoadFacilitiesCSV(path string) ([]model.Facility, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}

	lookup := func(record []string, field string) string {
		for _, alias := range csvColumns[field] {
			if i, ok := index[alias]; ok && i < len(record) {
				return strings.TrimSpace(record[i])
			}
		}
		return ""
	}

	var facilities []model.Facility
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", row, err)
		}
		row++

		fac := model.Facility{
			ID:          lookup(record, "id"),
			Name:        lookup(record, "name"),
			Type:        lookup(record, "type"),
			Region:      lookup(record, "region"),
			District:    lookup(record, "district"),
			Description: CleanText(lookup(record, "description")),
		}
		if fac.ID == "" {
			fac.ID = fmt.Sprintf("row_%d", row)
		}
		if fac.Name == "" {
			return nil, fmt.Errorf("csv row %d: facility name is required", row)
		}
		facilities = append(facilities, fac)
	}

	return facilities, nil
}
