// Package agents provides the domain system for conversational voice agents,
// keeping the local agent store and the vendor's agent mirror consistent.
package agents

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// KnowledgeBaseIDs is the ordered set of knowledge base document IDs attached
// to an agent. It is persisted as a JSONB array.
type KnowledgeBaseIDs []string

// Value implements driver.Valuer, encoding the IDs as a JSON array.
func (k KnowledgeBaseIDs) Value() (driver.Value, error) {
	if k == nil {
		k = KnowledgeBaseIDs{}
	}
	return json.Marshal(k)
}

// Scan implements sql.Scanner, decoding a JSON array.
func (k *KnowledgeBaseIDs) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*k = KnowledgeBaseIDs{}
		return nil
	case []byte:
		return json.Unmarshal(v, k)
	case string:
		return json.Unmarshal([]byte(v), k)
	default:
		return fmt.Errorf("cannot scan %T into KnowledgeBaseIDs", src)
	}
}

// Normalize returns the IDs with duplicates removed, preserving first-seen order.
func (k KnowledgeBaseIDs) Normalize() KnowledgeBaseIDs {
	seen := make(map[string]struct{}, len(k))
	result := make(KnowledgeBaseIDs, 0, len(k))
	for _, id := range k {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

// Agent represents a conversational agent recorded in the local store. The
// agent_id primary key is assigned by the vendor at creation.
type Agent struct {
	AgentID          string           `json:"agent_id"`
	Name             string           `json:"name"`
	CreatedBy        string           `json:"created_by"`
	FirstMessage     string           `json:"first_message"`
	Prompt           string           `json:"prompt"`
	VoiceID          string           `json:"voice_id"`
	KnowledgeBaseIDs KnowledgeBaseIDs `json:"knowledge_base_ids"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// AgentRef identifies an agent referencing a knowledge base document.
type AgentRef struct {
	AgentID string `json:"agent_id"`
	Name    string `json:"name"`
}

// CreateCommand contains the data required to provision a new agent. Document
// IDs, when supplied, are attached to the vendor agent as knowledge base
// references and recorded locally.
type CreateCommand struct {
	Name         string   `json:"name"`
	CreatedBy    string   `json:"created_by"`
	Prompt       string   `json:"prompt"`
	FirstMessage string   `json:"first_message"`
	Language     string   `json:"language"`
	Model        string   `json:"model"`
	Temperature  float64  `json:"temperature"`
	VoiceID      string   `json:"voice_id"`
	DocumentIDs  []string `json:"documentIds"`
}

// ApplyDefaults fills unset fields with the agent provisioning defaults.
func (c *CreateCommand) ApplyDefaults(defaultVoiceID string) {
	if c.Name == "" {
		c.Name = "My AI Agent"
	}
	if c.Prompt == "" {
		c.Prompt = "You are a helpful assistant."
	}
	if c.FirstMessage == "" {
		c.FirstMessage = "Hello! How can I assist you?"
	}
	if c.Language == "" {
		c.Language = "en"
	}
	if c.Model == "" {
		c.Model = "eleven-multilingual-v1"
	}
	if c.Temperature == 0 {
		c.Temperature = 0.7
	}
	if c.VoiceID == "" {
		c.VoiceID = defaultVoiceID
	}
}

// UpdateCommand contains the data for updating an existing agent. Nil fields
// are left unchanged; supplied document IDs replace the agent's current
// knowledge base attachments.
type UpdateCommand struct {
	Name         *string   `json:"name"`
	FirstMessage *string   `json:"first_message"`
	Prompt       *string   `json:"prompt"`
	VoiceID      *string   `json:"voice_id"`
	DocumentIDs  *[]string `json:"documentIds"`
}

// Merge applies the command's supplied fields onto the agent, leaving omitted
// fields as they are.
func (c UpdateCommand) Merge(agent Agent) Agent {
	if c.Name != nil {
		agent.Name = *c.Name
	}
	if c.FirstMessage != nil {
		agent.FirstMessage = *c.FirstMessage
	}
	if c.Prompt != nil {
		agent.Prompt = *c.Prompt
	}
	if c.VoiceID != nil {
		agent.VoiceID = *c.VoiceID
	}
	if c.DocumentIDs != nil {
		agent.KnowledgeBaseIDs = KnowledgeBaseIDs(*c.DocumentIDs).Normalize()
	}
	return agent
}
