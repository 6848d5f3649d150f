package mapping

import (
	"fmt"
	"strings"
)

// SectionCoverage is one section's line in the coverage report.
type SectionCoverage struct {
	Section string  `json:"section"`
	Total   int     `json:"total"`
	Mapped  int     `json:"mapped"`
	Percent float64 `json:"percent"`
}

// CoverageReport derives percentage-mapped metrics from a mapping pass.
// Diagnostic output only; nothing reads it back into the mapping itself.
type CoverageReport struct {
	TotalFields  int               `json:"totalFields"`
	MappedFields int               `json:"mappedFields"`
	Percent      float64           `json:"percent"`
	Sections     []SectionCoverage `json:"sections"`
}

// BuildCoverageReport expands aggregated stats into an ordered per-section
// coverage report.
func BuildCoverageReport(stats *Stats) *CoverageReport {
	report := &CoverageReport{
		TotalFields:  stats.TotalFields,
		MappedFields: stats.MappedFields,
		Percent:      percent(stats.MappedFields, stats.TotalFields),
		Sections:     make([]SectionCoverage, 0, len(SectionKeys)),
	}

	for _, key := range SectionKeys {
		s, ok := stats.SectionBreakdown[key]
		if !ok {
			continue
		}
		report.Sections = append(report.Sections, SectionCoverage{
			Section: key,
			Total:   s.Total,
			Mapped:  s.Mapped,
			Percent: percent(s.Mapped, s.Total),
		})
	}

	return report
}

func percent(mapped, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(mapped) / float64(total) * 100
}

// String renders the report for terminal display.
func (r *CoverageReport) String() string {
	var sb strings.Builder
	sb.WriteString("Form Coverage Report\n")
	sb.WriteString(fmt.Sprintf("Overall: %d/%d fields mapped (%.1f%%)\n\n", r.MappedFields, r.TotalFields, r.Percent))
	for _, s := range r.Sections {
		sb.WriteString(fmt.Sprintf("  %-10s %4d/%-4d (%.1f%%)\n", s.Section, s.Mapped, s.Total, s.Percent))
	}
	return sb.String()
}
