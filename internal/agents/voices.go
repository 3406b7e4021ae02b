package agents

// Voice is a synthesis voice available for agent configuration.
type Voice struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// voiceSet is the fixed set of public voices exposed by the service.
var voiceSet = []Voice{
	{ID: "EXAVITQu4vr4xnSDxMaL", Name: "Sarah"},
	{ID: "JBFqnCBsd6RMkjVDRZzb", Name: "George"},
	{ID: "21m00Tcm4TlvDq8ikWAM", Name: "Rachel"},
	{ID: "pNInz6obpgDQGcFmaJgB", Name: "Adam"},
	{ID: "AZnzlk1XvdvUeBnXmlld", Name: "Domi"},
	{ID: "ErXwobaYiN019PkySvjV", Name: "Antoni"},
	{ID: "MF3mGyEYCl7XYWbV9V6O", Name: "Elli"},
	{ID: "TxGEqnHWrfWFTfGW9XjX", Name: "Josh"},
}

// Voices returns the fixed voice set.
func Voices() []Voice {
	voices := make([]Voice, len(voiceSet))
	copy(voices, voiceSet)
	return voices
}

// ValidVoice reports whether the ID belongs to the fixed voice set.
func ValidVoice(id string) bool {
	for _, voice := range voiceSet {
		if voice.ID == id {
			return true
		}
	}
	return false
}
