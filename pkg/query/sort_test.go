package query_test

import (
	"reflect"
	"testing"

	"github.com/JaimeStill/voice-lab/pkg/query"
)

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []query.SortField
	}{
		{"empty", "", nil},
		{"single ascending", "name", []query.SortField{{Field: "name"}}},
		{"single descending", "-created_at", []query.SortField{{Field: "created_at", Descending: true}}},
		{
			"mixed terms",
			"name,-created_at",
			[]query.SortField{{Field: "name"}, {Field: "created_at", Descending: true}},
		},
		{
			"whitespace trimmed",
			" name , -updated_at ",
			[]query.SortField{{Field: "name"}, {Field: "updated_at", Descending: true}},
		},
		{"empty terms dropped", "name,,", []query.SortField{{Field: "name"}}},
		{"bare dash dropped", "-", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.expr)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSortFields(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}
