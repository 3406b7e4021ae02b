package documents

import "context"

// System defines the knowledge base operations.
type System interface {
	List(ctx context.Context) ([]Document, error)
	CreateText(ctx context.Context, text string) (*CreateResult, error)
	CreateURL(ctx context.Context, url string) (*CreateResult, error)
	CreateFile(ctx context.Context, filename string, data []byte) (*CreateResult, error)
	Content(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) error
}

// CreateResult reports a successful document ingestion.
type CreateResult struct {
	Success   bool   `json:"success"`
	ID        string `json:"id,omitempty"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
	PageCount *int   `json:"page_count,omitempty"`
}
