package documents

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/JaimeStill/voice-lab/internal/agents"
	"github.com/JaimeStill/voice-lab/internal/elevenlabs"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Vendor is the subset of the vendor client the document service requires.
type Vendor interface {
	ListKnowledgeBase(ctx context.Context) ([]elevenlabs.RawDocument, error)
	CreateTextDocument(ctx context.Context, text string) (*elevenlabs.CreatedDocument, error)
	CreateURLDocument(ctx context.Context, url string) (*elevenlabs.CreatedDocument, error)
	CreateFileDocument(ctx context.Context, filename string, data []byte) (*elevenlabs.CreatedDocument, error)
	DocumentContent(ctx context.Context, id string) (string, error)
	DeleteDocument(ctx context.Context, id string) error
	AccountHolder(ctx context.Context) string
}

// ReferenceChecker reports which agents reference a knowledge base document.
type ReferenceChecker interface {
	ListReferencing(ctx context.Context, documentID string) ([]agents.AgentRef, error)
}

type service struct {
	vendor Vendor
	refs   ReferenceChecker
	logger *slog.Logger
	now    func() time.Time
}

// New creates the knowledge base service.
func New(vendor Vendor, refs ReferenceChecker, logger *slog.Logger) System {
	return &service{
		vendor: vendor,
		refs:   refs,
		logger: logger.With("system", "documents"),
		now:    time.Now,
	}
}

func (s *service) List(ctx context.Context) ([]Document, error) {
	raw, err := s.vendor.ListKnowledgeBase(ctx)
	if err != nil {
		return nil, err
	}

	accountHolder := s.vendor.AccountHolder(ctx)
	now := s.now()

	docs := make([]Document, len(raw))
	for i, r := range raw {
		docs[i] = Normalize(r, accountHolder, now)
	}

	SortDescending(docs)
	return docs, nil
}

func (s *service) CreateText(ctx context.Context, text string) (*CreateResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text required", ErrValidation)
	}

	doc, err := s.vendor.CreateTextDocument(ctx, text)
	if err != nil {
		return nil, err
	}

	return s.createResult(ctx, doc, nil), nil
}

func (s *service) CreateURL(ctx context.Context, rawURL string) (*CreateResult, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}

	doc, err := s.vendor.CreateURLDocument(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	return s.createResult(ctx, doc, nil), nil
}

func (s *service) CreateFile(ctx context.Context, filename string, data []byte) (*CreateResult, error) {
	if len(data) == 0 {
		return nil, ErrNoFile
	}

	var pageCount *int
	if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		count, err := extractPDFPageCount(data)
		if err != nil {
			s.logger.Warn("pdf page count extraction failed", "filename", filename, "error", err)
		} else {
			pageCount = count
		}
	}

	doc, err := s.vendor.CreateFileDocument(ctx, filename, data)
	if err != nil {
		return nil, err
	}

	return s.createResult(ctx, doc, pageCount), nil
}

func (s *service) Content(ctx context.Context, id string) (string, error) {
	return s.vendor.DocumentContent(ctx, id)
}

// Delete removes a document from the vendor only when no agent references
// it. The reference check and vendor delete are not atomic; an agent update
// racing the delete can still attach a deleted document.
func (s *service) Delete(ctx context.Context, id string) error {
	refs, err := s.refs.ListReferencing(ctx, id)
	if err != nil {
		return fmt.Errorf("check document references: %w", err)
	}

	if len(refs) > 0 {
		return &ReferencedError{DocumentID: id, Agents: refs}
	}

	if err := s.vendor.DeleteDocument(ctx, id); err != nil {
		return err
	}

	s.logger.Info("document deleted", "id", id)
	return nil
}

func (s *service) createResult(ctx context.Context, doc *elevenlabs.CreatedDocument, pageCount *int) *CreateResult {
	result := &CreateResult{
		Success:   true,
		CreatedBy: s.vendor.AccountHolder(ctx),
		CreatedAt: s.now().UTC().Format(time.RFC3339),
		PageCount: pageCount,
	}
	if doc != nil {
		result.ID = doc.ID
	}
	return result
}

func extractPDFPageCount(data []byte) (*int, error) {
	count, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, err
	}
	return &count, nil
}
