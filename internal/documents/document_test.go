package documents_test

import (
	"testing"
	"time"

	"github.com/JaimeStill/voice-lab/internal/documents"
	"github.com/JaimeStill/voice-lab/internal/elevenlabs"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func TestNormalize_AliasCoalescing(t *testing.T) {
	tests := []struct {
		name string
		raw  elevenlabs.RawDocument
		want documents.Document
	}{
		{
			"snake case fields",
			elevenlabs.RawDocument{
				ID:        "doc-1",
				Name:      "Manual",
				Type:      "file",
				CreatedAt: "2026-01-01T00:00:00Z",
				UpdatedAt: "2026-01-02T00:00:00Z",
				CreatedBy: "alice@example.com",
			},
			documents.Document{
				ID:        "doc-1",
				Name:      "Manual",
				Type:      "file",
				CreatedAt: "2026-01-01T00:00:00Z",
				UpdatedAt: "2026-01-02T00:00:00Z",
				CreatedBy: "alice@example.com",
			},
		},
		{
			"camel case aliases",
			elevenlabs.RawDocument{
				ID:           "doc-2",
				Name:         "Guide",
				CreatedAtAlt: "2026-01-03T00:00:00Z",
				UpdatedAtAlt: "2026-01-04T00:00:00Z",
				CreatedByAlt: "bob@example.com",
			},
			documents.Document{
				ID:        "doc-2",
				Name:      "Guide",
				CreatedAt: "2026-01-03T00:00:00Z",
				UpdatedAt: "2026-01-04T00:00:00Z",
				CreatedBy: "bob@example.com",
			},
		},
		{
			"uploader fallback chain",
			elevenlabs.RawDocument{
				ID:        "doc-3",
				Name:      "Notes",
				CreatedAt: "2026-01-05T00:00:00Z",
				Uploader:  "carol@example.com",
			},
			documents.Document{
				ID:        "doc-3",
				Name:      "Notes",
				CreatedAt: "2026-01-05T00:00:00Z",
				UpdatedAt: "2026-01-05T00:00:00Z",
				CreatedBy: "carol@example.com",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := documents.Normalize(tt.raw, "Account Holder", testNow)
			if got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalize_Fallbacks(t *testing.T) {
	got := documents.Normalize(elevenlabs.RawDocument{ID: "doc-4"}, "Account Holder", testNow)

	if got.Name != "Untitled" {
		t.Errorf("Name = %q, want Untitled", got.Name)
	}
	if got.CreatedAt != "2026-03-15T12:00:00Z" {
		t.Errorf("CreatedAt = %q, want now", got.CreatedAt)
	}
	if got.UpdatedAt != got.CreatedAt {
		t.Errorf("UpdatedAt = %q, want created_at fallback", got.UpdatedAt)
	}
	if got.CreatedBy != "Account Holder" {
		t.Errorf("CreatedBy = %q, want account holder fallback", got.CreatedBy)
	}
}

func TestSortDescending(t *testing.T) {
	docs := []documents.Document{
		{ID: "a", UpdatedAt: "2026-01-01T00:00:00Z"},
		{ID: "b", UpdatedAt: "2026-02-01T00:00:00Z"},
		{ID: "c", CreatedAt: "2026-03-01T00:00:00Z"},
	}

	documents.SortDescending(docs)

	want := []string{"c", "b", "a"}
	for i, doc := range docs {
		if doc.ID != want[i] {
			t.Errorf("docs[%d].ID = %q, want %q", i, doc.ID, want[i])
		}
	}
}
