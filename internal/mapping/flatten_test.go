package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clearform/sf86-filler/internal/form"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name     string
		node     any
		expected map[string]any
	}{
		{
			name: "simple_fields",
			node: map[string]any{
				"lastName":  map[string]any{"value": "Doe"},
				"firstName": map[string]any{"value": "Jane"},
			},
			expected: map[string]any{
				"section1.lastName":  "Doe",
				"section1.firstName": "Jane",
			},
		},
		{
			name: "value_key_stops_descent",
			node: map[string]any{
				"suffix": map[string]any{
					"value":   "Jr",
					"options": []any{"Jr", "Sr", "II"},
					"id":      "9404",
				},
			},
			expected: map[string]any{"section1.suffix": "Jr"},
		},
		{
			name: "array_entries_get_indexed_paths",
			node: map[string]any{
				"residences": []any{
					map[string]any{"city": map[string]any{"value": "Dayton"}},
					map[string]any{"city": map[string]any{"value": "Akron"}},
				},
			},
			expected: map[string]any{
				"section1.residences[0].city": "Dayton",
				"section1.residences[1].city": "Akron",
			},
		},
		{
			name: "falsy_values_are_recorded",
			node: map[string]any{
				"middleName":    map[string]any{"value": ""},
				"notApplicable": map[string]any{"value": false},
				"count":         map[string]any{"value": float64(0)},
			},
			expected: map[string]any{
				"section1.middleName":    "",
				"section1.notApplicable": false,
				"section1.count":         float64(0),
			},
		},
		{
			name: "null_value_produces_no_entry",
			node: map[string]any{
				"middleName": map[string]any{"value": nil},
				"lastName":   map[string]any{"value": "Doe"},
			},
			expected: map[string]any{"section1.lastName": "Doe"},
		},
		{
			name:     "empty_array_produces_no_entries",
			node:     map[string]any{"residences": []any{}},
			expected: map[string]any{},
		},
		{
			name:     "nil_node_produces_no_entries",
			node:     nil,
			expected: map[string]any{},
		},
		{
			name: "nil_intermediate_is_skipped",
			node: map[string]any{
				"spouse":   nil,
				"lastName": map[string]any{"value": "Doe"},
			},
			expected: map[string]any{"section1.lastName": "Doe"},
		},
		{
			name: "bare_scalar_is_its_own_value",
			node: map[string]any{
				"lastName": "Doe",
			},
			expected: map[string]any{"section1.lastName": "Doe"},
		},
		{
			name: "typed_field_struct",
			node: map[string]any{
				"lastName": form.Field{Value: "Doe", ID: "9401"},
			},
			expected: map[string]any{"section1.lastName": "Doe"},
		},
		{
			name: "deep_nesting",
			node: map[string]any{
				"residences": []any{
					map[string]any{
						"residenceAddress": map[string]any{
							"city":  map[string]any{"value": "Dayton"},
							"state": map[string]any{"value": "OH"},
						},
					},
				},
			},
			expected: map[string]any{
				"section1.residences[0].residenceAddress.city":  "Dayton",
				"section1.residences[0].residenceAddress.state": "OH",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Flatten("section1", tt.node))
		})
	}
}

func TestFlatten_Idempotent(t *testing.T) {
	node := map[string]any{
		"lastName": map[string]any{"value": "Doe"},
		"residences": []any{
			map[string]any{"city": map[string]any{"value": "Dayton"}},
		},
	}

	first := Flatten("section11", node)
	second := Flatten("section11", node)
	assert.Equal(t, first, second)
}
