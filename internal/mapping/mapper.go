package mapping

import (
	"strings"

	"github.com/clearform/sf86-filler/internal/form"
)

// TargetMap holds one mapping pass's output: PDF field identifier to the
// value destined for that field. A fresh map is built per invocation and
// handed to the PDF writer; the core never retains it.
type TargetMap map[string]any

// MapperFunc maps one section's data tree against its static table.
type MapperFunc func(t *Table, data form.Data) TargetMap

// MapSection is the generic table-driven engine used by every section that
// needs no special handling: flatten the section tree, then resolve each
// mapping record against the flattened paths. Paths the user left blank are
// lookup misses, which is the normal case, not an error.
func MapSection(t *Table, data form.Data) TargetMap {
	if !data.HasSection(t.Section) {
		return TargetMap{}
	}
	flat := Flatten(t.Section, data.Section(t.Section))
	return applyRecords(t.Mappings, flat)
}

// applyRecords resolves records in table order into a fresh target map.
// Table order is the tie-breaker when two records name the same field:
// the later record wins, deterministically.
func applyRecords(records []Record, flat map[string]any) TargetMap {
	out := make(TargetMap)
	for _, r := range records {
		if v, ok := flat[r.UIPath]; ok {
			out[r.PDFFieldID] = v
		}
	}
	return out
}

// applyPropagations fans each propagation's source value out to all of its
// targets. A propagation whose not-applicable flag is affirmative writes
// nothing, so toggling the flag clears every fanned-out field.
func applyPropagations(out TargetMap, props []Propagation, flat map[string]any) {
	for _, p := range props {
		if p.NotApplicablePath != "" && isAffirmative(flat[p.NotApplicablePath]) {
			continue
		}
		v, ok := flat[p.SourcePath]
		if !ok {
			continue
		}
		for _, id := range p.PDFFieldIDs {
			out[id] = v
		}
	}
}

// isAffirmative interprets the loose yes-flag encodings the form layer
// produces: booleans, "YES"/"NO" radio values, and stringified booleans.
func isAffirmative(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		switch strings.ToUpper(strings.TrimSpace(x)) {
		case "YES", "TRUE", "1":
			return true
		}
	}
	return false
}

// hasAnyWithPrefix reports whether any flattened path starts with one of
// the given prefixes. Used by the legacy-fallback sections to decide which
// data shape a document carries.
func hasAnyWithPrefix(flat map[string]any, prefixes ...string) bool {
	for path := range flat {
		for _, p := range prefixes {
			if strings.HasPrefix(path, p) {
				return true
			}
		}
	}
	return false
}

// recordsWithoutPrefix filters out the records whose uiPath begins with
// the given prefix, preserving table order.
func recordsWithoutPrefix(records []Record, prefix string) []Record {
	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if !strings.HasPrefix(r.UIPath, prefix) {
			kept = append(kept, r)
		}
	}
	return kept
}
