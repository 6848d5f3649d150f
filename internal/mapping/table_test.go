package mapping

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTables(t *testing.T) {
	tables, err := LoadTables(nil)
	require.NoError(t, err)
	require.Len(t, tables, 30)

	for _, key := range SectionKeys {
		require.Contains(t, tables, key)
		assert.Equal(t, key, tables[key].Section)
		assert.NotEmpty(t, tables[key].Mappings, "section %s has no mapping records", key)
		assert.Positive(t, tables[key].TotalFields)
	}
}

func TestLoadTables_Section4Propagation(t *testing.T) {
	tables, err := LoadTables(nil)
	require.NoError(t, err)

	s4 := tables["section4"]
	require.Len(t, s4.Propagations, 1)
	assert.Equal(t, "section4.ssn", s4.Propagations[0].SourcePath)
	assert.Equal(t, "section4.notApplicable", s4.Propagations[0].NotApplicablePath)
	assert.Len(t, s4.Propagations[0].PDFFieldIDs, 138)
	assert.Equal(t, 140, s4.TotalFields)
}

func TestLoadTables_EntryCapsRespected(t *testing.T) {
	tables, err := LoadTables(nil)
	require.NoError(t, err)

	for _, key := range SectionKeys {
		tbl := tables[key]
		if tbl.EntryCap == 0 {
			continue
		}
		for _, r := range tbl.Mappings {
			idx := maxEntryIndex(r.UIPath)
			assert.Less(t, idx, tbl.EntryCap,
				"%s: record %s exceeds cap %d", key, r.UIPath, tbl.EntryCap)
		}
	}
}

func TestValidateTable(t *testing.T) {
	tests := []struct {
		name          string
		table         Table
		expectedError bool
		expectedWarn  string
		expectedLen   int
	}{
		{
			name: "duplicate_uipath_first_wins",
			table: Table{
				Section: "sectionX",
				Mappings: []Record{
					{UIPath: "sectionX.a", PDFFieldID: "1"},
					{UIPath: "sectionX.a", PDFFieldID: "2"},
				},
			},
			expectedWarn: "duplicate uiPath",
			expectedLen:  1,
		},
		{
			name: "empty_uipath_rejected",
			table: Table{
				Section:  "sectionX",
				Mappings: []Record{{UIPath: "", PDFFieldID: "1"}},
			},
			expectedError: true,
		},
		{
			name: "record_beyond_cap_rejected",
			table: Table{
				Section:  "sectionX",
				EntryCap: 2,
				Mappings: []Record{{UIPath: "sectionX.entries[2].a", PDFFieldID: "1"}},
			},
			expectedError: true,
		},
		{
			name: "total_fields_defaulted",
			table: Table{
				Section:  "sectionX",
				Mappings: []Record{{UIPath: "sectionX.a", PDFFieldID: "1"}},
				Propagations: []Propagation{
					{SourcePath: "sectionX.a", PDFFieldIDs: []string{"2", "3"}},
				},
			},
			expectedLen: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := log.New(&buf, "", 0)

			tbl := tt.table
			err := validateTable(&tbl, logger)

			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, tbl.Mappings, tt.expectedLen)
			if tt.expectedWarn != "" {
				assert.Contains(t, buf.String(), tt.expectedWarn)
			}
		})
	}
}

func TestValidateTable_TotalFieldsIncludesPropagation(t *testing.T) {
	tbl := Table{
		Section:  "sectionX",
		Mappings: []Record{{UIPath: "sectionX.a", PDFFieldID: "1"}},
		Propagations: []Propagation{
			{SourcePath: "sectionX.a", PDFFieldIDs: []string{"2", "3"}},
		},
	}
	require.NoError(t, validateTable(&tbl, nil))
	assert.Equal(t, 3, tbl.TotalFields)
}

func TestMaxEntryIndex(t *testing.T) {
	tests := []struct {
		name     string
		uiPath   string
		expected int
	}{
		{"no_index", "section1.lastName", -1},
		{"single_index", "section11.residences[3].city", 3},
		{"nested_indices_take_max", "section13.entries[1].phones[5].number", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, maxEntryIndex(tt.uiPath))
		})
	}
}
