package validate

import (
	"fmt"

	"github.com/clearform/sf86-filler/internal/form"
	"github.com/clearform/sf86-filler/internal/mapping"
)

func indexed(prefix string, i int) string {
	return fmt.Sprintf("%s[%d]", prefix, i)
}

func labelEntry(kind string, i int) string {
	return fmt.Sprintf("%s %d", kind, i+1)
}

func labelN(kind string, i int, field string) string {
	return fmt.Sprintf("%s %d %s", kind, i+1, field)
}

// sectionValidators maps each validated section to its check, resolved once
// at package initialization. Sections without entries carry no rules beyond
// their mapping tables.
var sectionValidators = map[string]func(form.Data) Result{
	"section1":  func(d form.Data) Result { return ValidateSection1(d).Result },
	"section2":  ValidateSection2,
	"section3":  ValidateSection3,
	"section4":  func(d form.Data) Result { return ValidateSection4(d).Result },
	"section9":  ValidateSection9,
	"section11": ValidateSection11,
	"section13": ValidateSection13,
	"section14": ValidateSection14,
	"section18": ValidateSection18,
	"section29": func(d form.Data) Result { return ValidateSection29(d).Result },
}

// ValidateSection runs the named section's validator. Sections with no
// registered rules validate clean.
func ValidateSection(key string, data form.Data) Result {
	if fn, ok := sectionValidators[key]; ok {
		return fn(data)
	}
	return Result{IsValid: true, Errors: make([]string, 0), Warnings: make([]string, 0)}
}

// ValidateAll runs every registered section validator in fixed form order
// and concatenates the outcomes into one combined result.
func ValidateAll(data form.Data) Result {
	combined, _ := ValidateSections(data)
	return combined
}

// ValidateSections runs every registered validator and returns the combined
// result alongside the per-section outcomes, keyed by section.
func ValidateSections(data form.Data) (Result, map[string]Result) {
	perSection := make(map[string]Result, len(sectionValidators))
	combined := Result{
		IsValid:  true,
		Errors:   make([]string, 0),
		Warnings: make([]string, 0),
	}
	for _, key := range mapping.SectionKeys {
		fn, ok := sectionValidators[key]
		if !ok {
			continue
		}
		r := fn(data)
		perSection[key] = r
		combined.Errors = append(combined.Errors, r.Errors...)
		combined.Warnings = append(combined.Warnings, r.Warnings...)
	}
	combined.IsValid = len(combined.Errors) == 0
	return combined, perSection
}
