package agents

import (
	"context"

	"github.com/JaimeStill/voice-lab/pkg/pagination"
)

// System defines agent operations spanning the local store and the vendor.
type System interface {
	Create(ctx context.Context, cmd CreateCommand) (*Agent, error)
	Update(ctx context.Context, agentID string, cmd UpdateCommand) (*UpdateResult, error)
	Delete(ctx context.Context, agentID string) error
	Find(ctx context.Context, agentID string) (*Agent, error)
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Agent], error)
	ListReferencing(ctx context.Context, documentID string) ([]AgentRef, error)
}

// SideResult reports the outcome of one side of a dual-store operation.
type SideResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// UpdateResult reports the independently attempted vendor and local updates.
type UpdateResult struct {
	Agent  *Agent     `json:"agent,omitempty"`
	Vendor SideResult `json:"elevenlabs"`
	Local  SideResult `json:"database"`
}
