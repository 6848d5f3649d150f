package descriptions

// Tool descriptions with practical examples and use cases

const (
	SF86ValidateDataDescription = `Validate an exported SF-86 form-data document against the questionnaire's business rules.

**When to use:** Before filling the PDF, or any time you need to know which required answers are still missing.

**Why it's useful:** Distinguishes blocking errors (missing names, unanswered Yes/No questions, format violations) from advisory warnings, per section, without touching the PDF.

**Examples:**
• Pre-flight check: "Validate applicant-042.json before generating the PDF"
• Progress tracking: "Which sections of form.json still have errors?"

**Best practices:** Run this first; sf86_fill_pdf refuses to write while blocking errors remain unless forced.`

	SF86MapFormDescription = `Map an exported SF-86 form-data document into PDF field identifier/value pairs.

**When to use:** Inspecting exactly which PDF fields a document populates, or debugging a mapping-table discrepancy.

**Why it's useful:** Shows the flattened, merged target map the PDF writer would receive, including fanned-out values such as the SSN repeated across every page.

**Examples:**
• Mapping debug: "Show the PDF field ids form.json populates for section 13"
• Integration check: "Confirm the SSN propagates to all of its page headers"

**Best practices:** Combine with sf86_coverage_report to see the populated fraction per section.`

	SF86CoverageReportDescription = `Report how much of each SF-86 section a form-data document populates.

**When to use:** Diagnosing sparse output, or showing an applicant how complete their questionnaire is.

**Why it's useful:** Per-section mapped/total counts and percentages reveal sections the document barely touches, including entries silently dropped beyond a section's physical slot cap.

**Examples:**
• Completeness display: "How complete is applicant-042.json?"
• Drop detection: "Section 11 shows 12/48 mapped; the document lists more residences than the form holds"

**Best practices:** Coverage is diagnostic only; it never changes what gets filled.`

	SF86FillPDFDescription = `Fill the SF-86 AcroForm template with a form-data document and write the result.

**When to use:** Producing the final filled PDF after validation passes.

**Why it's useful:** Performs the whole pipeline in one call: validate, map, write field values into the template, and report unmatched field ids.

**Examples:**
• Final output: "Fill sf86-template.pdf with applicant-042.json into applicant-042-filled.pdf"
• Draft output: "Force-fill the PDF despite remaining validation errors for review"

**Best practices:** Paths are confined to the server's workspace directory; keep data and output inside it.`
)
