package config

import (
	"fmt"
	"os"
)

const (
	// EnvChatOpenAIKey sets the OpenAI API key.
	EnvChatOpenAIKey = "OPENAI_API_KEY"

	// EnvChatOpenRouterKey sets the OpenRouter API key.
	EnvChatOpenRouterKey = "OPENROUTER_API_KEY"

	// EnvChatReferer overrides the HTTP-Referer header sent to OpenRouter.
	EnvChatReferer = "CHAT_REFERER"
)

// ChatConfig contains chat completion vendor configuration for both the
// OpenAI and OpenRouter backends.
type ChatConfig struct {
	OpenAIKey         string `toml:"openai_key"`
	OpenAIModel       string `toml:"openai_model"`
	OpenRouterKey     string `toml:"openrouter_key"`
	OpenRouterBaseURL string `toml:"openrouter_base_url"`
	OpenRouterModel   string `toml:"openrouter_model"`
	Referer           string `toml:"referer"`
}

// Finalize applies defaults and loads environment overrides.
func (c *ChatConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *ChatConfig) Merge(overlay *ChatConfig) {
	if overlay.OpenAIKey != "" {
		c.OpenAIKey = overlay.OpenAIKey
	}
	if overlay.OpenAIModel != "" {
		c.OpenAIModel = overlay.OpenAIModel
	}
	if overlay.OpenRouterKey != "" {
		c.OpenRouterKey = overlay.OpenRouterKey
	}
	if overlay.OpenRouterBaseURL != "" {
		c.OpenRouterBaseURL = overlay.OpenRouterBaseURL
	}
	if overlay.OpenRouterModel != "" {
		c.OpenRouterModel = overlay.OpenRouterModel
	}
	if overlay.Referer != "" {
		c.Referer = overlay.Referer
	}
}

func (c *ChatConfig) loadDefaults() {
	if c.OpenAIModel == "" {
		c.OpenAIModel = "gpt-3.5-turbo"
	}
	if c.OpenRouterBaseURL == "" {
		c.OpenRouterBaseURL = "https://openrouter.ai/api/v1"
	}
	if c.OpenRouterModel == "" {
		c.OpenRouterModel = "meta-llama/llama-3-8b-instruct"
	}
	if c.Referer == "" {
		c.Referer = "http://localhost:3000"
	}
}

func (c *ChatConfig) loadEnv() {
	if v := os.Getenv(EnvChatOpenAIKey); v != "" {
		c.OpenAIKey = v
	}
	if v := os.Getenv(EnvChatOpenRouterKey); v != "" {
		c.OpenRouterKey = v
	}
	if v := os.Getenv(EnvChatReferer); v != "" {
		c.Referer = v
	}
}

func (c *ChatConfig) validate() error {
	if c.OpenRouterBaseURL == "" {
		return fmt.Errorf("openrouter_base_url required")
	}
	return nil
}
