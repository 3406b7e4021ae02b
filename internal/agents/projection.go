package agents

import "github.com/JaimeStill/voice-lab/pkg/query"

var projection = query.
	NewProjectionMap("public", "agents", "a").
	Project("agent_id", "Id").
	Project("name", "Name").
	Project("created_by", "CreatedBy").
	Project("first_message", "FirstMessage").
	Project("prompt", "Prompt").
	Project("voice_id", "VoiceId").
	Project("knowledge_base_ids", "KnowledgeBase").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}
