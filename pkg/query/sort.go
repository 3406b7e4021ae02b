package query

import "strings"

// SortField describes a single sort term by view field name.
type SortField struct {
	Field      string
	Descending bool
}

// ParseSortFields parses a comma-separated sort expression into sort fields.
// A leading "-" on a term marks it descending: "name,-created_at".
func ParseSortFields(expr string) []SortField {
	if expr == "" {
		return nil
	}

	var fields []SortField
	for _, term := range strings.Split(expr, ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}

		field := SortField{Field: term}
		if strings.HasPrefix(term, "-") {
			field.Field = term[1:]
			field.Descending = true
		}
		if field.Field != "" {
			fields = append(fields, field)
		}
	}
	return fields
}
