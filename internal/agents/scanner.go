package agents

import "github.com/JaimeStill/voice-lab/pkg/repository"

func scanAgent(s repository.Scanner) (Agent, error) {
	var a Agent
	err := s.Scan(
		&a.AgentID,
		&a.Name,
		&a.CreatedBy,
		&a.FirstMessage,
		&a.Prompt,
		&a.VoiceID,
		&a.KnowledgeBaseIDs,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}
