package mapping

import (
	"fmt"
	"log"

	"github.com/clearform/sf86-filler/internal/form"
)

// Engine owns the loaded mapping tables and the per-section mapper
// registry. The registry is built once at construction, so every section
// lookup is a plain map access with no load-order or import-cycle hazard.
type Engine struct {
	tables  map[string]*Table
	mappers map[string]MapperFunc
	logger  *log.Logger
}

// NewEngine loads every embedded mapping table and wires the section
// specializations. The logger receives table-consistency warnings and may
// be nil.
func NewEngine(logger *log.Logger) (*Engine, error) {
	tables, err := LoadTables(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load mapping tables: %w", err)
	}

	return &Engine{
		tables: tables,
		mappers: map[string]MapperFunc{
			"section4":  mapSection4,
			"section13": mapSection13,
			"section29": mapSection29,
		},
		logger: logger,
	}, nil
}

// Table returns the loaded table for a section key, or nil for unknown keys.
func (e *Engine) Table(key string) *Table {
	return e.tables[key]
}

// MapSection maps one section of the document, dispatching to the section's
// specialized mapper when one is registered.
func (e *Engine) MapSection(key string, data form.Data) TargetMap {
	t := e.tables[key]
	if t == nil {
		return TargetMap{}
	}
	if fn, ok := e.mappers[key]; ok {
		return fn(t, data)
	}
	return MapSection(t, data)
}
