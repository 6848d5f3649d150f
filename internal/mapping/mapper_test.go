package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearform/sf86-filler/internal/form"
)

func loadTestTables(t *testing.T) map[string]*Table {
	t.Helper()
	tables, err := LoadTables(nil)
	require.NoError(t, err)
	return tables
}

func TestMapSection_Section1(t *testing.T) {
	tables := loadTestTables(t)

	data := form.Data{
		"section1": map[string]any{
			"lastName":   map[string]any{"value": "Doe"},
			"firstName":  map[string]any{"value": "Jane"},
			"middleName": map[string]any{"value": ""},
			"suffix":     map[string]any{"value": "Jr"},
		},
	}

	out := MapSection(tables["section1"], data)
	assert.Equal(t, TargetMap{
		"9401": "Doe",
		"9402": "Jane",
		"9403": "",
		"9404": "Jr",
	}, out)
}

func TestMapSection_MissingSection(t *testing.T) {
	tables := loadTestTables(t)

	out := MapSection(tables["section1"], form.Data{})
	assert.Empty(t, out)
}

func TestMapSection_AbsentFieldsStayAbsent(t *testing.T) {
	tables := loadTestTables(t)

	data := form.Data{
		"section1": map[string]any{
			"lastName":   map[string]any{"value": "Doe"},
			"middleName": map[string]any{"value": nil},
		},
	}

	out := MapSection(tables["section1"], data)
	assert.Equal(t, TargetMap{"9401": "Doe"}, out)
	assert.NotContains(t, out, "9402")
	assert.NotContains(t, out, "9403")
}

func TestMapSection_EntryCapTruncatesSilently(t *testing.T) {
	tables := loadTestTables(t)
	require.Equal(t, 4, tables["section11"].EntryCap)

	residences := make([]any, 6)
	for i := range residences {
		residences[i] = map[string]any{
			"residenceAddress": map[string]any{
				"street": map[string]any{"value": "addr"},
			},
		}
	}
	data := form.Data{
		"section11": map[string]any{"residences": residences},
	}

	out := MapSection(tables["section11"], data)
	assert.Contains(t, out, "form1[0].Section11[0].TextField11[0]")
	assert.Contains(t, out, "form1[0].Section11-4[0].TextField11[0]")
	// Entries beyond the cap have no table slot and never reach the output.
	assert.Len(t, out, 4)
}

func TestMapSection_Section14_IndependentQuestions(t *testing.T) {
	tables := loadTestTables(t)

	// The two radio questions share one page area but have distinct
	// targets; answering one must not touch the other's field.
	data := form.Data{
		"section14": map[string]any{
			"bornAfter1959": map[string]any{"value": "YES"},
		},
	}

	out := MapSection(tables["section14"], data)
	assert.Equal(t, "YES", out["form1[0].Section14[0].RadioButtonList[0]"])
	assert.NotContains(t, out, "form1[0].Section14[0].RadioButtonList[1]")
}

func TestMapSection_Idempotent(t *testing.T) {
	tables := loadTestTables(t)

	data := form.Data{
		"section1": map[string]any{
			"lastName":  map[string]any{"value": "Doe"},
			"firstName": map[string]any{"value": "Jane"},
		},
	}

	first := MapSection(tables["section1"], data)
	second := MapSection(tables["section1"], data)
	assert.Equal(t, first, second)
}

func TestApplyRecords_TableOrderWins(t *testing.T) {
	records := []Record{
		{UIPath: "s.a", PDFFieldID: "shared"},
		{UIPath: "s.b", PDFFieldID: "shared"},
	}
	flat := map[string]any{"s.a": "first", "s.b": "second"}

	out := applyRecords(records, flat)
	assert.Equal(t, "second", out["shared"])
}

func TestIsAffirmative(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected bool
	}{
		{"bool_true", true, true},
		{"bool_false", false, false},
		{"yes_string", "YES", true},
		{"yes_lowercase", "yes", true},
		{"yes_padded", "  Yes ", true},
		{"true_string", "true", true},
		{"one_string", "1", true},
		{"no_string", "NO", false},
		{"empty_string", "", false},
		{"nil", nil, false},
		{"number", float64(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isAffirmative(tt.value))
		})
	}
}

func TestHasAnyWithPrefix(t *testing.T) {
	flat := map[string]any{
		"section13.federalEmployment.entries[0].positionTitle": "x",
	}

	assert.True(t, hasAnyWithPrefix(flat, "section13.federalEmployment", "section13.selfEmployment"))
	assert.False(t, hasAnyWithPrefix(flat, "section13.employmentEntries"))
}

func TestRecordsWithoutPrefix(t *testing.T) {
	records := []Record{
		{UIPath: "s.legacy.a", PDFFieldID: "1"},
		{UIPath: "s.split.a", PDFFieldID: "2"},
		{UIPath: "s.legacy.b", PDFFieldID: "3"},
	}

	kept := recordsWithoutPrefix(records, "s.legacy")
	require.Len(t, kept, 1)
	assert.Equal(t, "s.split.a", kept[0].UIPath)
}
