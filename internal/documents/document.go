// Package documents provides the knowledge base domain: vendor-backed
// document listing with response normalization, ingestion, content retrieval,
// and reference-guarded deletion.
package documents

import (
	"sort"
	"time"

	"github.com/JaimeStill/voice-lab/internal/elevenlabs"
)

// Document is the canonical knowledge base document shape returned to
// clients regardless of which vendor API revision produced it.
type Document struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	CreatedBy string `json:"created_by"`
}

// Normalize maps a raw vendor document to the canonical shape. Field aliases
// are coalesced, missing timestamps fall back to now / created_at, and a
// missing author falls back to the account holder.
func Normalize(raw elevenlabs.RawDocument, accountHolder string, now time.Time) Document {
	createdAt := firstNonEmpty(raw.CreatedAt, raw.CreatedAtAlt)
	if createdAt == "" {
		createdAt = now.UTC().Format(time.RFC3339)
	}

	updatedAt := firstNonEmpty(raw.UpdatedAt, raw.UpdatedAtAlt)
	if updatedAt == "" {
		updatedAt = createdAt
	}

	createdBy := firstNonEmpty(raw.CreatedBy, raw.CreatedByAlt, raw.UploadedBy, raw.Uploader)
	if createdBy == "" {
		createdBy = accountHolder
	}

	name := raw.Name
	if name == "" {
		name = "Untitled"
	}

	return Document{
		ID:        raw.ID,
		Name:      name,
		Type:      raw.Type,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		CreatedBy: createdBy,
	}
}

// SortDescending orders documents newest-first by their effective timestamp
// (updated_at, else created_at) using lexical ISO-8601 comparison.
func SortDescending(docs []Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		return effectiveTimestamp(docs[i]) > effectiveTimestamp(docs[j])
	})
}

func effectiveTimestamp(d Document) string {
	if d.UpdatedAt != "" {
		return d.UpdatedAt
	}
	return d.CreatedAt
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
