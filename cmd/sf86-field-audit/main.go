// Command sf86-field-audit cross-checks the static mapping tables against
// an SF-86 template's form-field dictionary: which mapped ids the template
// actually defines, which are missing, and which ids several sections
// share. The original section-by-section audit scripts did this by hand;
// this runs the whole form at once.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/clearform/sf86-filler/internal/mapping"
	"github.com/clearform/sf86-filler/internal/pdffill"
)

var (
	templatePath = flag.String("template", "", "Path to the SF-86 template PDF (omit for a tables-only audit)")
	outputFormat = flag.String("format", "text", "Output format: text, json")
	verbose      = flag.Bool("verbose", false, "List every missing field id, not just counts")
	help         = flag.Bool("help", false, "Show help message")
)

// sectionAudit is one section's line in the audit report.
type sectionAudit struct {
	Section   string   `json:"section"`
	Records   int      `json:"records"`
	Present   int      `json:"present,omitempty"`
	Missing   int      `json:"missing,omitempty"`
	MissingID []string `json:"missingIds,omitempty"`
}

// auditReport is the whole audit outcome.
type auditReport struct {
	TemplateFields int                 `json:"templateFields,omitempty"`
	Sections       []sectionAudit      `json:"sections"`
	SharedIDs      map[string][]string `json:"sharedIds,omitempty"`
}

func main() {
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	logger := log.New(os.Stderr, "", 0)

	tables, err := mapping.LoadTables(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mapping tables: %v\n", err)
		os.Exit(1)
	}

	var templateFields map[string]bool
	if *templatePath != "" {
		filler := pdffill.NewFiller(*templatePath, 0, logger)
		names, err := filler.FieldNames()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading template fields: %v\n", err)
			os.Exit(1)
		}
		templateFields = make(map[string]bool, len(names))
		for _, n := range names {
			templateFields[n] = true
		}
	}

	report := buildReport(tables, templateFields)

	if err := outputReport(report); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}
}

// buildReport audits each section's table, in form order, against the
// template field set when one was supplied.
func buildReport(tables map[string]*mapping.Table, templateFields map[string]bool) *auditReport {
	report := &auditReport{
		TemplateFields: len(templateFields),
		SharedIDs:      make(map[string][]string),
	}

	idSections := make(map[string][]string)

	for _, key := range mapping.SectionKeys {
		t := tables[key]
		if t == nil {
			continue
		}

		audit := sectionAudit{Section: key, Records: len(t.Mappings)}

		ids := make([]string, 0, len(t.Mappings))
		for _, r := range t.Mappings {
			ids = append(ids, r.PDFFieldID)
		}
		for _, p := range t.Propagations {
			ids = append(ids, p.PDFFieldIDs...)
		}

		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				idSections[id] = append(idSections[id], key)
			}
			if templateFields != nil {
				if templateFields[id] {
					audit.Present++
				} else {
					audit.Missing++
					if *verbose {
						audit.MissingID = append(audit.MissingID, id)
					}
				}
			}
		}

		report.Sections = append(report.Sections, audit)
	}

	for id, sections := range idSections {
		if len(sections) > 1 {
			report.SharedIDs[id] = sections
		}
	}
	return report
}

func outputReport(report *auditReport) error {
	if *outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Println("SF-86 Field Mapping Audit")
	fmt.Println(strings.Repeat("=", 40))
	if report.TemplateFields > 0 {
		fmt.Printf("Template form fields: %d\n\n", report.TemplateFields)
	} else {
		fmt.Println("No template supplied; tables-only audit.")
		fmt.Println()
	}

	for _, s := range report.Sections {
		if report.TemplateFields > 0 {
			fmt.Printf("%-10s %4d records, %4d present, %4d missing\n",
				s.Section, s.Records, s.Present, s.Missing)
			for _, id := range s.MissingID {
				fmt.Printf("    missing: %s\n", id)
			}
		} else {
			fmt.Printf("%-10s %4d records\n", s.Section, s.Records)
		}
	}

	if len(report.SharedIDs) > 0 {
		fmt.Printf("\nField ids mapped by more than one section: %d\n", len(report.SharedIDs))
		ids := make([]string, 0, len(report.SharedIDs))
		for id := range report.SharedIDs {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Printf("    %s: %s\n", id, strings.Join(report.SharedIDs[id], ", "))
		}
	}
	return nil
}

func printHelp() {
	fmt.Println("SF-86 Field Audit - cross-check mapping tables against the template's form fields")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  sf86-field-audit [options]")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -template      Path to the SF-86 template PDF; without it only table consistency is checked")
	fmt.Println("  -format        Output format: text (default), json")
	fmt.Println("  -verbose       List every missing field id")
	fmt.Println("  -help          Show this help message")
}
