package main

import (
	"github.com/JaimeStill/voice-lab/internal/agents"
	"github.com/JaimeStill/voice-lab/internal/chat"
	"github.com/JaimeStill/voice-lab/internal/config"
	"github.com/JaimeStill/voice-lab/internal/documents"
	"github.com/JaimeStill/voice-lab/internal/elevenlabs"
	"github.com/JaimeStill/voice-lab/internal/infrastructure"
	"github.com/JaimeStill/voice-lab/internal/speech"
	"github.com/JaimeStill/voice-lab/internal/telephony"
	"github.com/JaimeStill/voice-lab/internal/translate"
)

// Domain holds all domain systems assembled over the infrastructure.
type Domain struct {
	Agents    agents.System
	Documents documents.System
	Speech    speech.System
	Telephony telephony.System
	Chat      chat.System
}

// NewDomain wires the domain systems from infrastructure and configuration.
func NewDomain(infra *infrastructure.Infrastructure, cfg *config.Config) *Domain {
	vendor := elevenlabs.New(&cfg.ElevenLabs, infra.Logger)
	translator := translate.New()

	agentStore := agents.NewStore(infra.Database.DB(), infra.Logger, cfg.Pagination)
	history := speech.NewHistoryStore(infra.Database.DB(), infra.Logger)

	return &Domain{
		Agents:    agents.New(agentStore, vendor, cfg.ElevenLabs.DefaultVoiceID, infra.Logger),
		Documents: documents.New(vendor, agentStore, infra.Logger),
		Speech:    speech.New(vendor, translator, history, infra.Storage, cfg.ElevenLabs.DefaultVoiceID, infra.Logger),
		Telephony: telephony.New(vendor, cfg.Telephony.PhoneNumberID, infra.Logger),
		Chat:      chat.New(&cfg.Chat, infra.Logger),
	}
}
