package agents

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/voice-lab/internal/elevenlabs"
	"github.com/JaimeStill/voice-lab/pkg/pagination"
)

// Vendor is the subset of the vendor client the coordinator requires.
type Vendor interface {
	CreateAgent(ctx context.Context, req elevenlabs.CreateAgentRequest) (string, error)
	UpdateAgent(ctx context.Context, id string, req elevenlabs.UpdateAgentRequest) error
	DeleteAgent(ctx context.Context, id string) error
}

type coordinator struct {
	store          Store
	vendor         Vendor
	logger         *slog.Logger
	defaultVoiceID string
}

// New creates the agent consistency coordinator. Writes go vendor-first so a
// vendor rejection never leaves a local record without a vendor counterpart.
func New(store Store, vendor Vendor, defaultVoiceID string, logger *slog.Logger) System {
	return &coordinator{
		store:          store,
		vendor:         vendor,
		logger:         logger.With("system", "agents"),
		defaultVoiceID: defaultVoiceID,
	}
}

func (c *coordinator) Create(ctx context.Context, cmd CreateCommand) (*Agent, error) {
	cmd.ApplyDefaults(c.defaultVoiceID)

	if !ValidVoice(cmd.VoiceID) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidVoice, cmd.VoiceID)
	}

	kbIDs := KnowledgeBaseIDs(cmd.DocumentIDs).Normalize()

	agentID, err := c.vendor.CreateAgent(ctx, elevenlabs.CreateAgentRequest{
		Name:          cmd.Name,
		Prompt:        cmd.Prompt,
		FirstMessage:  cmd.FirstMessage,
		Language:      cmd.Language,
		Model:         cmd.Model,
		Temperature:   cmd.Temperature,
		VoiceID:       cmd.VoiceID,
		KnowledgeBase: knowledgeBaseRefs(kbIDs),
	})
	if err != nil {
		return nil, err
	}

	created, err := c.store.Insert(ctx, Agent{
		AgentID:          agentID,
		Name:             cmd.Name,
		CreatedBy:        cmd.CreatedBy,
		FirstMessage:     cmd.FirstMessage,
		Prompt:           cmd.Prompt,
		VoiceID:          cmd.VoiceID,
		KnowledgeBaseIDs: kbIDs,
	})
	if err != nil {
		c.logger.Error("agent created upstream but local insert failed",
			"agent_id", agentID, "error", err)
		return nil, fmt.Errorf("%w: agent_id %s: %v", ErrPartialCreate, agentID, err)
	}

	return created, nil
}

func (c *coordinator) Update(ctx context.Context, agentID string, cmd UpdateCommand) (*UpdateResult, error) {
	if cmd.VoiceID != nil && !ValidVoice(*cmd.VoiceID) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidVoice, *cmd.VoiceID)
	}

	// Merge against the current record so a partial command patches the
	// vendor with the full field set instead of blanks.
	current, err := c.store.Find(ctx, agentID)
	if err != nil {
		return nil, err
	}
	merged := cmd.Merge(*current)

	result := &UpdateResult{
		Vendor: SideResult{Success: true},
		Local:  SideResult{Success: true},
	}

	if err := c.vendor.UpdateAgent(ctx, agentID, elevenlabs.UpdateAgentRequest{
		Name:          merged.Name,
		FirstMessage:  merged.FirstMessage,
		Prompt:        merged.Prompt,
		KnowledgeBase: knowledgeBaseRefs(merged.KnowledgeBaseIDs),
	}); err != nil {
		c.logger.Error("vendor agent update failed", "agent_id", agentID, "error", err)
		result.Vendor = SideResult{Error: err.Error()}
	}

	updated, err := c.store.Update(ctx, agentID, cmd)
	if err != nil {
		c.logger.Error("local agent update failed", "agent_id", agentID, "error", err)
		result.Local = SideResult{Error: err.Error()}
	} else {
		result.Agent = updated
	}

	return result, nil
}

func (c *coordinator) Delete(ctx context.Context, agentID string) error {
	if err := c.vendor.DeleteAgent(ctx, agentID); err != nil {
		c.logger.Error("vendor agent delete failed, local record retained",
			"agent_id", agentID, "error", err)
		return err
	}
	return c.store.Delete(ctx, agentID)
}

func (c *coordinator) Find(ctx context.Context, agentID string) (*Agent, error) {
	return c.store.Find(ctx, agentID)
}

func (c *coordinator) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Agent], error) {
	return c.store.List(ctx, page, filters)
}

func (c *coordinator) ListReferencing(ctx context.Context, documentID string) ([]AgentRef, error) {
	return c.store.ListReferencing(ctx, documentID)
}

// knowledgeBaseRefs converts document IDs into vendor prompt attachments.
func knowledgeBaseRefs(documentIDs []string) []elevenlabs.KnowledgeBaseRef {
	ids := KnowledgeBaseIDs(documentIDs).Normalize()
	if len(ids) == 0 {
		return nil
	}

	refs := make([]elevenlabs.KnowledgeBaseRef, len(ids))
	for i, id := range ids {
		name := id
		if len(id) > 8 {
			name = id[:8]
		}
		refs[i] = elevenlabs.KnowledgeBaseRef{
			Type:      "file",
			ID:        id,
			Name:      "Document " + name,
			UsageMode: "prompt",
		}
	}
	return refs
}
