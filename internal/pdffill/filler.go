package pdffill

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/clearform/sf86-filler/internal/mapping"
)

// Filler writes target-field maps into one SF-86 template. It holds no
// document state between calls; every Fill re-reads the template so passes
// stay independent.
type Filler struct {
	templatePath string
	maxFileSize  int64
	logger       *log.Logger
}

// NewFiller creates a filler for the given template. The logger receives
// unmatched-field diagnostics and may be nil.
func NewFiller(templatePath string, maxFileSize int64, logger *log.Logger) *Filler {
	return &Filler{
		templatePath: templatePath,
		maxFileSize:  maxFileSize,
		logger:       logger,
	}
}

// FillResult reports what one fill pass wrote.
type FillResult struct {
	FieldsWritten int      `json:"fieldsWritten"`
	Unmatched     []string `json:"unmatched,omitempty"`
	LegacyIDs     int      `json:"legacyIds,omitempty"`
}

// FieldNames returns every fully qualified field name in the template's
// form dictionary, sorted for stable output.
func (f *Filler) FieldNames() ([]string, error) {
	file, err := os.Open(f.templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open template: %w", err)
	}
	defer file.Close()

	ctx, err := readContext(file)
	if err != nil {
		return nil, err
	}
	fields, err := collectFields(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Fill writes the target map into the template and returns the filled
// document bytes. Target ids absent from the template are counted and
// logged, never fatal: template revisions drift ahead of the tables, and a
// partially filled document is still useful. Legacy numeric ids from the
// sections 1-5 tables resolve through the template's numeric alias fields
// when present and are otherwise tallied separately.
func (f *Filler) Fill(targets mapping.TargetMap) ([]byte, *FillResult, error) {
	file, err := os.Open(f.templatePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open template: %w", err)
	}
	defer file.Close()

	ctx, err := readContext(file)
	if err != nil {
		return nil, nil, err
	}
	fields, err := collectFields(ctx)
	if err != nil {
		return nil, nil, err
	}

	result := &FillResult{}

	// Deterministic application order regardless of map iteration.
	ids := make([]string, 0, len(targets))
	for id := range targets {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		fieldDict, ok := fields[id]
		if !ok {
			if isLegacyNumericID(id) {
				result.LegacyIDs++
			} else {
				result.Unmatched = append(result.Unmatched, id)
			}
			continue
		}
		if err := setFieldValue(ctx, fieldDict, targets[id]); err != nil {
			if f.logger != nil {
				f.logger.Printf("warning: could not set field %s: %v", id, err)
			}
			continue
		}
		result.FieldsWritten++
	}

	if len(result.Unmatched) > 0 && f.logger != nil {
		f.logger.Printf("warning: %d target ids not present in template", len(result.Unmatched))
	}

	// Viewers must regenerate appearances for the values we injected.
	if acroForm, err := acroFormDict(ctx); err == nil && acroForm != nil {
		acroForm["NeedAppearances"] = types.Boolean(true)
	}

	var buf bytes.Buffer
	if err := api.WriteContext(ctx, &buf); err != nil {
		return nil, nil, fmt.Errorf("failed to write filled PDF: %w", err)
	}
	return buf.Bytes(), result, nil
}

// setFieldValue writes one value into a field dictionary, encoding it per
// the field's type: names for buttons, string literals for everything else.
func setFieldValue(ctx *model.Context, fieldDict types.Dict, value any) error {
	switch fieldType(ctx, fieldDict) {
	case "Btn":
		state := buttonState(value)
		fieldDict["V"] = types.Name(state)
		fieldDict["AS"] = types.Name(state)
	default:
		s := stringValue(value)
		esc, err := types.Escape(s)
		if err != nil {
			return fmt.Errorf("failed to escape value: %w", err)
		}
		fieldDict["V"] = types.StringLiteral(*esc)
	}
	return nil
}

// buttonState converts a mapped value to a button appearance-state name.
// Radio groups carry their export value; checkboxes toggle On/Off.
func buttonState(value any) string {
	switch v := value.(type) {
	case bool:
		if v {
			return "On"
		}
		return "Off"
	case string:
		if v == "" {
			return "Off"
		}
		return strings.ReplaceAll(v, " ", "#20")
	default:
		return stringValue(value)
	}
}

// stringValue renders a mapped value for a text field. Mapped values are
// strings or booleans by contract, but numbers survive JSON decoding as
// float64 and format without a mantissa when integral.
func stringValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "YES"
		}
		return "NO"
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// isLegacyNumericID reports whether an id uses the numeric style of the
// sections 1-5 subsystem rather than a qualified field name.
func isLegacyNumericID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
