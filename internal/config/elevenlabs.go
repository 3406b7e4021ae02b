package config

import (
	"fmt"
	"os"
	"time"
)

const (
	// EnvElevenLabsAPIKey sets the ElevenLabs API key.
	EnvElevenLabsAPIKey = "ELEVENLABS_API_KEY"

	// EnvElevenLabsBaseURL overrides the ElevenLabs API base URL.
	EnvElevenLabsBaseURL = "ELEVENLABS_BASE_URL"

	// EnvElevenLabsVoiceID overrides the default voice for synthesis.
	EnvElevenLabsVoiceID = "ELEVENLABS_VOICE_ID"

	// EnvElevenLabsTimeout overrides the vendor request timeout.
	EnvElevenLabsTimeout = "ELEVENLABS_TIMEOUT"
)

// ElevenLabsConfig contains ElevenLabs vendor API configuration.
type ElevenLabsConfig struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	DefaultVoiceID string `toml:"default_voice_id"`
	Timeout        string `toml:"timeout"`
}

// TimeoutDuration parses and returns the request timeout as a time.Duration.
func (c *ElevenLabsConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *ElevenLabsConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *ElevenLabsConfig) Merge(overlay *ElevenLabsConfig) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.DefaultVoiceID != "" {
		c.DefaultVoiceID = overlay.DefaultVoiceID
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *ElevenLabsConfig) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.elevenlabs.io"
	}
	if c.DefaultVoiceID == "" {
		c.DefaultVoiceID = "JBFqnCBsd6RMkjVDRZzb"
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
}

func (c *ElevenLabsConfig) loadEnv() {
	if v := os.Getenv(EnvElevenLabsAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvElevenLabsBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvElevenLabsVoiceID); v != "" {
		c.DefaultVoiceID = v
	}
	if v := os.Getenv(EnvElevenLabsTimeout); v != "" {
		c.Timeout = v
	}
}

func (c *ElevenLabsConfig) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api_key required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base_url required")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
