package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
)

// VoiceSample is an audio sample used for instant voice cloning.
type VoiceSample struct {
	Filename string
	Data     []byte
}

// AddVoice creates a cloned voice from audio samples and returns the new
// voice ID.
func (c *Client) AddVoice(ctx context.Context, name, description string, samples []VoiceSample) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, sample := range samples {
		part, err := writer.CreateFormFile("files", sample.Filename)
		if err != nil {
			return "", fmt.Errorf("create form file: %w", err)
		}
		if _, err := part.Write(sample.Data); err != nil {
			return "", fmt.Errorf("write form file: %w", err)
		}
	}

	if err := writer.WriteField("name", name); err != nil {
		return "", fmt.Errorf("write name field: %w", err)
	}
	if description != "" {
		if err := writer.WriteField("description", description); err != nil {
			return "", fmt.Errorf("write description field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	data, err := c.doRaw(ctx, http.MethodPost, "/v1/voices/add", writer.FormDataContentType(), &buf)
	if err != nil {
		return "", err
	}

	var result struct {
		VoiceID string `json:"voice_id"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode voice response: %w", err)
	}
	return result.VoiceID, nil
}
