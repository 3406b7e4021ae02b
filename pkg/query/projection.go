// Package query provides SQL query construction utilities with view-to-column
// projection mapping and automatic parameter numbering.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap translates view field names to aliased SQL columns for a table.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	columns map[string]string
	order   []string
}

// NewProjectionMap creates a ProjectionMap for the given schema, table, and alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:  schema,
		table:   table,
		alias:   alias,
		columns: make(map[string]string),
	}
}

// Project registers a column-to-view-name mapping and returns the map for chaining.
func (p *ProjectionMap) Project(column, viewName string) *ProjectionMap {
	p.columns[viewName] = fmt.Sprintf("%s.%s", p.alias, column)
	p.order = append(p.order, viewName)
	return p
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the fully qualified, aliased table reference.
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Column returns the aliased column for a view name. Unknown names pass through.
func (p *ProjectionMap) Column(viewName string) string {
	if col, ok := p.columns[viewName]; ok {
		return col
	}
	return viewName
}

// Columns returns the comma-separated projected column list in registration order.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.ColumnList(), ", ")
}

// ColumnList returns the projected columns in registration order.
func (p *ProjectionMap) ColumnList() []string {
	list := make([]string, len(p.order))
	for i, viewName := range p.order {
		list[i] = p.columns[viewName]
	}
	return list
}
