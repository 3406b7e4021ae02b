package elevenlabs

import (
	"context"
	"net/http"
)

// KnowledgeBaseRef attaches a knowledge base document to an agent prompt.
type KnowledgeBaseRef struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	Name      string `json:"name"`
	UsageMode string `json:"usage_mode,omitempty"`
}

// CreateAgentRequest holds the fields for provisioning a conversational agent.
type CreateAgentRequest struct {
	Name          string
	Prompt        string
	FirstMessage  string
	Language      string
	Model         string
	Temperature   float64
	VoiceID       string
	KnowledgeBase []KnowledgeBaseRef
}

type agentConversationConfig struct {
	Name   string            `json:"name,omitempty"`
	Prompt *agentPromptBlock `json:"prompt,omitempty"`
	Agent  *agentBlock       `json:"agent,omitempty"`
	TTS    *agentTTSBlock    `json:"tts,omitempty"`
}

type agentPromptBlock struct {
	Prompt        string             `json:"prompt"`
	LLM           *agentLLMConfig    `json:"llm,omitempty"`
	KnowledgeBase []KnowledgeBaseRef `json:"knowledge_base,omitempty"`
}

type agentLLMConfig struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
}

type agentBlock struct {
	FirstMessage string `json:"first_message,omitempty"`
	Language     string `json:"language,omitempty"`
}

type agentTTSBlock struct {
	VoiceID     string            `json:"voice_id"`
	AudioFormat *agentAudioFormat `json:"audio_format,omitempty"`
}

type agentAudioFormat struct {
	Format     string `json:"format"`
	SampleRate int    `json:"sample_rate"`
}

// CreateAgent provisions a new conversational agent and returns its vendor ID.
func (c *Client) CreateAgent(ctx context.Context, req CreateAgentRequest) (string, error) {
	payload := map[string]any{
		"conversation_config": agentConversationConfig{
			Name: req.Name,
			Prompt: &agentPromptBlock{
				Prompt: req.Prompt,
				LLM: &agentLLMConfig{
					Model:       req.Model,
					Temperature: req.Temperature,
				},
				KnowledgeBase: req.KnowledgeBase,
			},
			Agent: &agentBlock{
				FirstMessage: req.FirstMessage,
				Language:     req.Language,
			},
			TTS: &agentTTSBlock{
				VoiceID: req.VoiceID,
				AudioFormat: &agentAudioFormat{
					Format:     "pcm",
					SampleRate: 16000,
				},
			},
		},
	}

	var result struct {
		AgentID string `json:"agent_id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/convai/agents/create", payload, &result); err != nil {
		return "", err
	}
	return result.AgentID, nil
}

// UpdateAgentRequest holds the fields for patching an existing agent. The
// knowledge base references replace the agent's prior attachments.
type UpdateAgentRequest struct {
	Name          string
	FirstMessage  string
	Prompt        string
	KnowledgeBase []KnowledgeBaseRef
}

type updateAgentPayload struct {
	Name               string             `json:"name,omitempty"`
	ConversationConfig updateConvaiConfig `json:"conversation_config"`
}

type updateConvaiConfig struct {
	Agent updateAgentBlock `json:"agent"`
}

type updateAgentBlock struct {
	FirstMessage string            `json:"first_message,omitempty"`
	Prompt       updatePromptBlock `json:"prompt"`
}

type updatePromptBlock struct {
	Prompt        string             `json:"prompt"`
	KnowledgeBase []KnowledgeBaseRef `json:"knowledge_base,omitempty"`
}

// UpdateAgent patches an agent's name, first message, prompt, and knowledge
// base attachments.
func (c *Client) UpdateAgent(ctx context.Context, id string, req UpdateAgentRequest) error {
	payload := updateAgentPayload{
		Name: req.Name,
		ConversationConfig: updateConvaiConfig{
			Agent: updateAgentBlock{
				FirstMessage: req.FirstMessage,
				Prompt: updatePromptBlock{
					Prompt:        req.Prompt,
					KnowledgeBase: req.KnowledgeBase,
				},
			},
		},
	}

	return c.doJSON(ctx, http.MethodPatch, "/v1/convai/agents/"+id, payload, nil)
}

// DeleteAgent removes an agent from the vendor.
func (c *Client) DeleteAgent(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/convai/agents/"+id, nil, nil)
}
