package mapping

import (
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strconv"
)

//go:embed tables/*.json
var tablesFS embed.FS

// SectionKeys lists every section in fixed form order. Mapping, validation
// and aggregation all iterate in this order so results are deterministic.
var SectionKeys = buildSectionKeys()

func buildSectionKeys() []string {
	keys := make([]string, 0, 30)
	for n := 1; n <= 30; n++ {
		keys = append(keys, "section"+strconv.Itoa(n))
	}
	return keys
}

// Record maps one logical UI path to one PDF form-field identifier.
type Record struct {
	UIPath     string `json:"uiPath"`
	PDFFieldID string `json:"pdfFieldId"`
}

// Propagation fans a single source value out to many PDF fields, such as
// the SSN repeated on every page of the physical form. The fan-out is
// suppressed when the field at NotApplicablePath is affirmative.
type Propagation struct {
	SourcePath        string   `json:"sourcePath"`
	NotApplicablePath string   `json:"notApplicablePath,omitempty"`
	PDFFieldIDs       []string `json:"pdfFieldIds"`
}

// Table is one section's static mapping table, loaded once at startup and
// immutable afterwards.
type Table struct {
	Section      string        `json:"section"`
	TotalFields  int           `json:"totalFields"`
	EntryCap     int           `json:"entryCap"`
	Mappings     []Record      `json:"mappings"`
	Propagations []Propagation `json:"propagations,omitempty"`
}

var entryIndexRe = regexp.MustCompile(`\[(\d+)\]`)

// maxEntryIndex returns the largest array index appearing in a logical
// path, or -1 when the path addresses no array element.
func maxEntryIndex(uiPath string) int {
	maxIdx := -1
	for _, m := range entryIndexRe.FindAllStringSubmatch(uiPath, -1) {
		if idx, err := strconv.Atoi(m[1]); err == nil && idx > maxIdx {
			maxIdx = idx
		}
	}
	return maxIdx
}

// LoadTables loads the embedded mapping table for every section. A table
// that fails to load or that violates its own entry cap is a deployment
// error, not a data problem, so it fails hard.
//
// Duplicate uiPaths within a table keep the first record and log the rest;
// the same pdfFieldId appearing under several uiPaths is legitimate (shared
// pools, legacy fallback) and only logged across section boundaries, where
// it usually indicates a table-authoring mistake.
func LoadTables(logger *log.Logger) (map[string]*Table, error) {
	tables := make(map[string]*Table, len(SectionKeys))
	fieldOwner := make(map[string]string)

	for n := 1; n <= 30; n++ {
		name := fmt.Sprintf("tables/section-%d-mappings.json", n)
		b, err := tablesFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read mapping table %s: %w", name, err)
		}

		var t Table
		if err := json.Unmarshal(b, &t); err != nil {
			return nil, fmt.Errorf("failed to parse mapping table %s: %w", name, err)
		}

		key := "section" + strconv.Itoa(n)
		if t.Section != key {
			return nil, fmt.Errorf("mapping table %s declares section %q, want %q", name, t.Section, key)
		}

		if err := validateTable(&t, logger); err != nil {
			return nil, err
		}

		for _, r := range t.Mappings {
			if owner, seen := fieldOwner[r.PDFFieldID]; seen && owner != key {
				if logger != nil {
					logger.Printf("warning: pdf field %s mapped by both %s and %s; later section wins on merge",
						r.PDFFieldID, owner, key)
				}
				continue
			}
			fieldOwner[r.PDFFieldID] = key
		}

		tables[key] = &t
	}

	return tables, nil
}

// validateTable enforces per-table invariants and defaults TotalFields for
// tables that do not pin an explicit constant.
func validateTable(t *Table, logger *log.Logger) error {
	seen := make(map[string]bool, len(t.Mappings))
	unique := t.Mappings[:0:0]
	for _, r := range t.Mappings {
		if r.UIPath == "" || r.PDFFieldID == "" {
			return fmt.Errorf("%s: mapping record with empty uiPath or pdfFieldId", t.Section)
		}
		if seen[r.UIPath] {
			if logger != nil {
				logger.Printf("warning: %s: duplicate uiPath %s, first record wins", t.Section, r.UIPath)
			}
			continue
		}
		seen[r.UIPath] = true

		if t.EntryCap > 0 {
			if idx := maxEntryIndex(r.UIPath); idx >= t.EntryCap {
				return fmt.Errorf("%s: record %s addresses entry %d beyond cap %d",
					t.Section, r.UIPath, idx, t.EntryCap)
			}
		}
		unique = append(unique, r)
	}
	t.Mappings = unique

	for _, p := range t.Propagations {
		if p.SourcePath == "" || len(p.PDFFieldIDs) == 0 {
			return fmt.Errorf("%s: propagation with empty sourcePath or no targets", t.Section)
		}
	}

	if t.TotalFields == 0 {
		t.TotalFields = len(t.Mappings)
		for _, p := range t.Propagations {
			t.TotalFields += len(p.PDFFieldIDs)
		}
	}

	return nil
}
