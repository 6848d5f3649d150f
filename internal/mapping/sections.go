package mapping

import (
	"github.com/clearform/sf86-filler/internal/form"
)

// The handful of sections with behavior the generic engine cannot express:
// value propagation (4), split-versus-legacy subsection precedence (13, 29).
// Entry caps and shared target pools are encoded in the tables themselves.

// mapSection4 maps the SSN section and fans the single SSN value out across
// every occurrence of the SSN header in the physical form. Marking the SSN
// not applicable suppresses the entire fan-out.
func mapSection4(t *Table, data form.Data) TargetMap {
	if !data.HasSection(t.Section) {
		return TargetMap{}
	}
	flat := Flatten(t.Section, data.Section(t.Section))
	out := applyRecords(t.Mappings, flat)
	applyPropagations(out, t.Propagations, flat)
	return out
}

// mapSection13 maps the employment section. Newer documents split
// employment into four typed subsections; older documents carry a single
// combined employmentEntries block that maps into the same physical slots.
// The combined block is used only when every split subsection is absent —
// precedence, never union.
func mapSection13(t *Table, data form.Data) TargetMap {
	return mapWithLegacyFallback(t, data, "section13.employmentEntries",
		"section13.federalEmployment",
		"section13.nonFederalEmployment",
		"section13.selfEmployment",
		"section13.unemployment",
	)
}

// mapSection29 maps the association-record section. The membership and
// advocacy questions were split out of an older combined
// terrorismAssociations block; both question sets write into the shared
// Section29 radio pool, so only one shape may ever apply per pass.
func mapSection29(t *Table, data form.Data) TargetMap {
	return mapWithLegacyFallback(t, data, "section29.terrorismAssociations",
		"section29.terrorismMembership",
		"section29.terrorismAdvocacy",
	)
}

// mapWithLegacyFallback applies the split-subsection records when any split
// block is present, and the legacy combined records only when all split
// blocks are absent. Records outside both shapes always apply.
func mapWithLegacyFallback(t *Table, data form.Data, legacyPrefix string, splitPrefixes ...string) TargetMap {
	if !data.HasSection(t.Section) {
		return TargetMap{}
	}
	flat := Flatten(t.Section, data.Section(t.Section))

	records := t.Mappings
	if hasAnyWithPrefix(flat, splitPrefixes...) {
		records = recordsWithoutPrefix(records, legacyPrefix)
	} else {
		for _, p := range splitPrefixes {
			records = recordsWithoutPrefix(records, p)
		}
	}

	out := applyRecords(records, flat)
	applyPropagations(out, t.Propagations, flat)
	return out
}
