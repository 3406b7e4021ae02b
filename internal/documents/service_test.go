package documents_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/JaimeStill/voice-lab/internal/agents"
	"github.com/JaimeStill/voice-lab/internal/documents"
	"github.com/JaimeStill/voice-lab/internal/elevenlabs"
)

type fakeVendor struct {
	docs      []elevenlabs.RawDocument
	deleted   []string
	deleteErr error
}

func (f *fakeVendor) ListKnowledgeBase(ctx context.Context) ([]elevenlabs.RawDocument, error) {
	return f.docs, nil
}

func (f *fakeVendor) CreateTextDocument(ctx context.Context, text string) (*elevenlabs.CreatedDocument, error) {
	return &elevenlabs.CreatedDocument{ID: "doc-text", Name: "Text"}, nil
}

func (f *fakeVendor) CreateURLDocument(ctx context.Context, url string) (*elevenlabs.CreatedDocument, error) {
	return &elevenlabs.CreatedDocument{ID: "doc-url", Name: url}, nil
}

func (f *fakeVendor) CreateFileDocument(ctx context.Context, filename string, data []byte) (*elevenlabs.CreatedDocument, error) {
	return &elevenlabs.CreatedDocument{ID: "doc-file", Name: filename}, nil
}

func (f *fakeVendor) DocumentContent(ctx context.Context, id string) (string, error) {
	return "document body", nil
}

func (f *fakeVendor) DeleteDocument(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeVendor) AccountHolder(ctx context.Context) string {
	return "owner@example.com"
}

type fakeRefs struct {
	refs map[string][]agents.AgentRef
	err  error
}

func (f *fakeRefs) ListReferencing(ctx context.Context, documentID string) ([]agents.AgentRef, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.refs[documentID], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestList_NormalizesAndSorts(t *testing.T) {
	vendor := &fakeVendor{
		docs: []elevenlabs.RawDocument{
			{ID: "old", UpdatedAt: "2026-01-01T00:00:00Z"},
			{ID: "new", UpdatedAt: "2026-02-01T00:00:00Z"},
		},
	}
	sys := documents.New(vendor, &fakeRefs{}, testLogger())

	docs, err := sys.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("docs = %d, want 2", len(docs))
	}
	if docs[0].ID != "new" || docs[1].ID != "old" {
		t.Errorf("order = %s, %s, want newest first", docs[0].ID, docs[1].ID)
	}
	if docs[0].CreatedBy != "owner@example.com" {
		t.Errorf("CreatedBy = %q, want account holder fallback", docs[0].CreatedBy)
	}
	if docs[0].Name != "Untitled" {
		t.Errorf("Name = %q, want Untitled fallback", docs[0].Name)
	}
}

func TestCreateText_Validation(t *testing.T) {
	sys := documents.New(&fakeVendor{}, &fakeRefs{}, testLogger())

	if _, err := sys.CreateText(context.Background(), "   "); !errors.Is(err, documents.ErrValidation) {
		t.Errorf("CreateText() error = %v, want ErrValidation", err)
	}

	result, err := sys.CreateText(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("CreateText() error = %v", err)
	}
	if !result.Success || result.ID != "doc-text" {
		t.Errorf("result = %+v", result)
	}
	if result.CreatedBy != "owner@example.com" {
		t.Errorf("CreatedBy = %q", result.CreatedBy)
	}
}

func TestCreateURL_Validation(t *testing.T) {
	sys := documents.New(&fakeVendor{}, &fakeRefs{}, testLogger())

	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid url", "https://example.com/docs", false},
		{"missing scheme", "example.com/docs", true},
		{"missing host", "https://", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sys.CreateURL(context.Background(), tt.url)
			if tt.wantErr && !errors.Is(err, documents.ErrInvalidURL) {
				t.Errorf("CreateURL(%q) error = %v, want ErrInvalidURL", tt.url, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("CreateURL(%q) error = %v", tt.url, err)
			}
		})
	}
}

func TestCreateFile_Validation(t *testing.T) {
	sys := documents.New(&fakeVendor{}, &fakeRefs{}, testLogger())

	if _, err := sys.CreateFile(context.Background(), "empty.txt", nil); !errors.Is(err, documents.ErrNoFile) {
		t.Errorf("CreateFile() error = %v, want ErrNoFile", err)
	}

	result, err := sys.CreateFile(context.Background(), "notes.txt", []byte("plain text"))
	if err != nil {
		t.Fatalf("CreateFile() error = %v", err)
	}
	if result.ID != "doc-file" {
		t.Errorf("ID = %q", result.ID)
	}
	if result.PageCount != nil {
		t.Errorf("PageCount = %v, want nil for non-pdf", result.PageCount)
	}
}

func TestCreateFile_InvalidPDFStillUploads(t *testing.T) {
	sys := documents.New(&fakeVendor{}, &fakeRefs{}, testLogger())

	result, err := sys.CreateFile(context.Background(), "broken.pdf", []byte("not a real pdf"))
	if err != nil {
		t.Fatalf("CreateFile() error = %v", err)
	}
	if result.PageCount != nil {
		t.Errorf("PageCount = %v, want nil when extraction fails", result.PageCount)
	}
}

func TestDelete_Unreferenced(t *testing.T) {
	vendor := &fakeVendor{}
	sys := documents.New(vendor, &fakeRefs{}, testLogger())

	if err := sys.Delete(context.Background(), "doc-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(vendor.deleted) != 1 || vendor.deleted[0] != "doc-1" {
		t.Errorf("deleted = %v", vendor.deleted)
	}
}

func TestDelete_Referenced(t *testing.T) {
	vendor := &fakeVendor{}
	refs := &fakeRefs{
		refs: map[string][]agents.AgentRef{
			"doc-1": {
				{AgentID: "agent-1", Name: "Support Agent"},
				{AgentID: "agent-2", Name: "Sales Agent"},
			},
		},
	}
	sys := documents.New(vendor, refs, testLogger())

	err := sys.Delete(context.Background(), "doc-1")

	var referenced *documents.ReferencedError
	if !errors.As(err, &referenced) {
		t.Fatalf("Delete() error = %v, want ReferencedError", err)
	}
	if len(referenced.Agents) != 2 {
		t.Errorf("Agents = %d, want 2", len(referenced.Agents))
	}
	if len(vendor.deleted) != 0 {
		t.Error("vendor delete called for referenced document")
	}
	if got := documents.MapHTTPStatus(err); got != http.StatusConflict {
		t.Errorf("MapHTTPStatus() = %d, want 409", got)
	}
}

func TestDelete_ReferenceCheckFailure(t *testing.T) {
	vendor := &fakeVendor{}
	refs := &fakeRefs{err: errors.New("database down")}
	sys := documents.New(vendor, refs, testLogger())

	if err := sys.Delete(context.Background(), "doc-1"); err == nil {
		t.Error("Delete() error = nil, want reference check failure")
	}
	if len(vendor.deleted) != 0 {
		t.Error("vendor delete called when reference check failed")
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"upstream status passthrough", &elevenlabs.UpstreamError{StatusCode: 422}, 422},
		{"validation", documents.ErrValidation, http.StatusBadRequest},
		{"invalid url", documents.ErrInvalidURL, http.StatusBadRequest},
		{"no file", documents.ErrNoFile, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := documents.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
