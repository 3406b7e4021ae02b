package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
)

// RawDocument is a knowledge base document as the vendor returns it. Field
// naming varies between API revisions, so both snake_case and camelCase
// variants are captured.
type RawDocument struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	CreatedAt    string `json:"created_at"`
	CreatedAtAlt string `json:"createdAt"`
	UpdatedAt    string `json:"updated_at"`
	UpdatedAtAlt string `json:"updatedAt"`
	CreatedBy    string `json:"created_by"`
	CreatedByAlt string `json:"createdBy"`
	UploadedBy   string `json:"uploaded_by"`
	Uploader     string `json:"uploader"`
}

// CreatedDocument is the vendor response to a document creation call.
type CreatedDocument struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListKnowledgeBase returns all knowledge base documents. The vendor has
// returned both a bare array and a wrapped object across revisions; both
// shapes are accepted.
func (c *Client) ListKnowledgeBase(ctx context.Context) ([]RawDocument, error) {
	data, err := c.doRaw(ctx, http.MethodGet, "/v1/convai/knowledge-base", "", nil)
	if err != nil {
		return nil, err
	}

	var docs []RawDocument
	if err := json.Unmarshal(data, &docs); err == nil {
		return docs, nil
	}

	var wrapped struct {
		Documents []RawDocument `json:"documents"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decode knowledge base list: %w", err)
	}
	return wrapped.Documents, nil
}

// CreateTextDocument creates a knowledge base document from raw text.
func (c *Client) CreateTextDocument(ctx context.Context, text string) (*CreatedDocument, error) {
	var doc CreatedDocument
	payload := map[string]string{"text": text}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/convai/knowledge-base/text", payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// CreateURLDocument creates a knowledge base document by scraping a URL.
func (c *Client) CreateURLDocument(ctx context.Context, url string) (*CreatedDocument, error) {
	var doc CreatedDocument
	payload := map[string]string{"url": url}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/convai/knowledge-base/url", payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// CreateFileDocument uploads a file as a knowledge base document.
func (c *Client) CreateFileDocument(ctx context.Context, filename string, data []byte) (*CreatedDocument, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	respData, err := c.doRaw(ctx, http.MethodPost, "/v1/convai/knowledge-base/file", writer.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}

	var doc CreatedDocument
	if len(respData) > 0 {
		if err := json.Unmarshal(respData, &doc); err != nil {
			return nil, fmt.Errorf("decode created document: %w", err)
		}
	}
	return &doc, nil
}

// DocumentContent returns the full text content of a knowledge base document.
func (c *Client) DocumentContent(ctx context.Context, id string) (string, error) {
	data, err := c.doRaw(ctx, http.MethodGet, "/v1/convai/knowledge-base/"+id+"/content", "", nil)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DeleteDocument removes a knowledge base document from the vendor.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/convai/knowledge-base/"+id, nil, nil)
}
