// Package pdffill writes a mapped target-field map into the SF-86 AcroForm
// template. It is the only package that touches document bytes; the mapping
// core hands it opaque field id / value pairs and never sees the PDF.
package pdffill

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// readContext parses the template into a pdfcpu context with relaxed
// validation; the government template trips strict validators.
func readContext(rs io.ReadSeeker) (*model.Context, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}
	return ctx, nil
}

// acroFormDict returns the document's AcroForm dictionary, or nil when the
// template carries no interactive form.
func acroFormDict(ctx *model.Context) (types.Dict, error) {
	rootDict, err := ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}

	acroFormObj, found := rootDict.Find("AcroForm")
	if !found {
		return nil, nil
	}

	acroForm, err := ctx.DereferenceDict(acroFormObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference AcroForm: %w", err)
	}
	return acroForm, nil
}

// collectFields walks the AcroForm field tree and returns every terminal
// field dictionary keyed by its fully qualified name (ancestor T entries
// joined with dots, the identifier style the mapping tables use).
func collectFields(ctx *model.Context) (map[string]types.Dict, error) {
	fields := make(map[string]types.Dict)

	acroForm, err := acroFormDict(ctx)
	if err != nil {
		return nil, err
	}
	if acroForm == nil {
		return fields, nil
	}

	fieldsObj, found := acroForm.Find("Fields")
	if !found {
		return fields, nil
	}
	fieldsArray, err := ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference Fields array: %w", err)
	}

	for _, fieldRef := range fieldsArray {
		if err := collectFieldTree(ctx, fieldRef, "", fields); err != nil {
			return nil, err
		}
	}
	return fields, nil
}

// collectFieldTree descends one field node, accumulating the qualified name
// and recursing through Kids until it reaches terminal fields.
func collectFieldTree(ctx *model.Context, fieldObj types.Object, prefix string, out map[string]types.Dict) error {
	fieldDict, err := ctx.DereferenceDict(fieldObj)
	if err != nil || fieldDict == nil {
		// Unresolvable entries are skipped, not fatal; partial templates
		// still fill everything else.
		return nil
	}

	name := prefix
	if nameObj, found := fieldDict.Find("T"); found {
		if partial, err := ctx.DereferenceStringOrHexLiteral(nameObj, model.V10, nil); err == nil && partial != "" {
			if prefix == "" {
				name = partial
			} else {
				name = prefix + "." + partial
			}
		}
	}

	if kidsObj, found := fieldDict.Find("Kids"); found {
		kids, err := ctx.DereferenceArray(kidsObj)
		if err == nil && len(kids) > 0 {
			// Widget-only kids have no T of their own; a node whose kids all
			// lack names is itself the terminal field.
			named := false
			for _, kid := range kids {
				if kidDict, err := ctx.DereferenceDict(kid); err == nil && kidDict != nil {
					if _, hasName := kidDict.Find("T"); hasName {
						named = true
						break
					}
				}
			}
			if named {
				for _, kid := range kids {
					if err := collectFieldTree(ctx, kid, name, out); err != nil {
						return err
					}
				}
				return nil
			}
		}
	}

	if name != "" {
		out[name] = fieldDict
	}
	return nil
}

// fieldType resolves a field's FT entry, consulting the parent chain for
// inherited types the way merged XFA templates require.
func fieldType(ctx *model.Context, fieldDict types.Dict) string {
	ftObj, found := fieldDict.Find("FT")
	if !found {
		if parentObj, ok := fieldDict.Find("Parent"); ok {
			if parentDict, err := ctx.DereferenceDict(parentObj); err == nil && parentDict != nil {
				return fieldType(ctx, parentDict)
			}
		}
		return ""
	}
	ftName, err := ctx.DereferenceName(ftObj, model.V10, nil)
	if err != nil {
		return ""
	}
	return string(ftName)
}
