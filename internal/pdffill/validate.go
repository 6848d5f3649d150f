package pdffill

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// SF-86 revisions run over a hundred pages; anything shorter is the wrong
// document.
const minTemplatePages = 100

// ValidateTemplate checks that the configured template exists, looks like a
// PDF, and opens cleanly, before the expensive form parse. A broken
// template is a deployment failure, so this returns a hard error.
func (f *Filler) ValidateTemplate() error {
	if f.templatePath == "" {
		return fmt.Errorf("template path cannot be empty")
	}

	fileInfo, err := os.Stat(f.templatePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("template does not exist: %s", f.templatePath)
	}
	if err != nil {
		return fmt.Errorf("cannot access template: %w", err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("template path is a directory, not a file: %s", f.templatePath)
	}
	if !strings.HasSuffix(strings.ToLower(f.templatePath), ".pdf") {
		return fmt.Errorf("template is not a PDF: %s", f.templatePath)
	}
	if fileInfo.Size() == 0 {
		return fmt.Errorf("template is empty: %s", f.templatePath)
	}
	if f.maxFileSize > 0 && fileInfo.Size() > f.maxFileSize {
		return fmt.Errorf("template too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), f.maxFileSize)
	}

	file, reader, err := pdf.Open(f.templatePath)
	if err != nil {
		return fmt.Errorf("invalid PDF template: %w", err)
	}
	defer file.Close()

	if pages := reader.NumPage(); pages < minTemplatePages {
		return fmt.Errorf("template has %d pages, expected at least %d", pages, minTemplatePages)
	}
	return nil
}

// IsValidTemplate performs a quick yes/no check on the configured template.
func (f *Filler) IsValidTemplate() bool {
	return f.ValidateTemplate() == nil
}
