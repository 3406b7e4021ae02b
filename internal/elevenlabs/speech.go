package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
)

// VoiceSettings tune voice synthesis output.
type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type ttsPayload struct {
	Text          string         `json:"text"`
	ModelID       string         `json:"model_id,omitempty"`
	VoiceSettings *VoiceSettings `json:"voice_settings,omitempty"`
}

// TextToSpeech synthesizes text with the given voice and returns MP3 audio.
func (c *Client) TextToSpeech(ctx context.Context, voiceID, text, modelID string, settings VoiceSettings) ([]byte, error) {
	payload := ttsPayload{
		Text:          text,
		ModelID:       modelID,
		VoiceSettings: &settings,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	return c.doRaw(ctx, http.MethodPost, "/v1/text-to-speech/"+voiceID, "application/json", bytes.NewReader(data))
}

// SpeechToText transcribes raw audio sent directly as the request body.
func (c *Client) SpeechToText(ctx context.Context, audio []byte, contentType string) (string, error) {
	data, err := c.doRaw(ctx, http.MethodPost, "/v1/speech-to-text", contentType, bytes.NewReader(audio))
	if err != nil {
		return "", err
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode transcription: %w", err)
	}
	return result.Text, nil
}

// Transcription is the result of a scribe model transcription, including
// per-word detail when the vendor provides it.
type Transcription struct {
	Text         string          `json:"text"`
	LanguageCode string          `json:"language_code,omitempty"`
	Words        json.RawMessage `json:"words,omitempty"`
}

// Transcribe submits audio to the scribe transcription model with audio event
// tagging and speaker diarization enabled.
func (c *Client) Transcribe(ctx context.Context, filename string, audio []byte) (*Transcription, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}

	fields := map[string]string{
		"model_id":         "scribe_v1",
		"language_code":    "eng",
		"tag_audio_events": "true",
		"diarize":          "true",
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("write form field %s: %w", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	data, err := c.doRaw(ctx, http.MethodPost, "/v1/speech-to-text", writer.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}

	var result Transcription
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode transcription: %w", err)
	}
	return &result, nil
}
