package mapping

import (
	"github.com/clearform/sf86-filler/internal/form"
)

// SectionStats holds one section's coverage counters: how many of its
// possible fields a given document actually populated.
type SectionStats struct {
	Total  int `json:"total"`
	Mapped int `json:"mapped"`
}

// Stats aggregates coverage counters across the whole form.
type Stats struct {
	TotalFields      int                     `json:"totalFields"`
	MappedFields     int                     `json:"mappedFields"`
	SectionBreakdown map[string]SectionStats `json:"sectionBreakdown"`
}

// MapForm maps every section of the document and merges the per-section
// target maps into one master map, applying sections in fixed form order so
// any cross-section field collision resolves the same way on every pass —
// the later section wins.
//
// Mapped counts are taken per section before merging; a section's total is
// its table's fixed possible-field constant, not the submission size.
func (e *Engine) MapForm(data form.Data) (TargetMap, *Stats) {
	merged := make(TargetMap)
	stats := &Stats{
		SectionBreakdown: make(map[string]SectionStats, len(SectionKeys)),
	}

	for _, key := range SectionKeys {
		t := e.tables[key]
		if t == nil {
			continue
		}

		sectionMap := e.MapSection(key, data)
		for id, v := range sectionMap {
			merged[id] = v
		}

		stats.SectionBreakdown[key] = SectionStats{
			Total:  t.TotalFields,
			Mapped: len(sectionMap),
		}
		stats.TotalFields += t.TotalFields
		stats.MappedFields += len(sectionMap)
	}

	return merged, stats
}
