package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JaimeStill/voice-lab/internal/config"
)

const baseConfig = `
shutdown_timeout = "20s"

[server]
host = "127.0.0.1"
port = 9090

[database]
name = "voicelab_test"

[elevenlabs]
api_key = "base-key"
default_voice_id = "EXAVITQu4vr4xnSDxMaL"

[pagination]
default_page_size = 10
max_page_size = 50
`

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadAndFinalize(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	t.Chdir(dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Server.Addr() != "127.0.0.1:9090" {
		t.Errorf("Addr() = %q", cfg.Server.Addr())
	}
	if cfg.Database.Name != "voicelab_test" {
		t.Errorf("Database.Name = %q", cfg.Database.Name)
	}
	if cfg.ShutdownTimeout != "20s" {
		t.Errorf("ShutdownTimeout = %q", cfg.ShutdownTimeout)
	}
	if cfg.Pagination.DefaultPageSize != 10 {
		t.Errorf("DefaultPageSize = %d", cfg.Pagination.DefaultPageSize)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", "[elevenlabs]\napi_key = \"k\"\n")
	t.Chdir(dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default", cfg.Server.Port)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("Database.Host = %q, want default", cfg.Database.Host)
	}
	if cfg.ShutdownTimeout != "30s" {
		t.Errorf("ShutdownTimeout = %q, want default", cfg.ShutdownTimeout)
	}
	if cfg.ElevenLabs.BaseURL != "https://api.elevenlabs.io" {
		t.Errorf("ElevenLabs.BaseURL = %q, want default", cfg.ElevenLabs.BaseURL)
	}
	if cfg.Storage.MaxUploadSizeBytes() <= 0 {
		t.Error("MaxUploadSizeBytes not resolved")
	}
	if cfg.Chat.OpenAIModel != "gpt-3.5-turbo" {
		t.Errorf("Chat.OpenAIModel = %q, want default", cfg.Chat.OpenAIModel)
	}
}

func TestOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.staging.toml", `
[server]
port = 9999

[elevenlabs]
api_key = "staging-key"
`)
	t.Chdir(dir)
	t.Setenv("SERVICE_ENV", "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want overlay value", cfg.Server.Port)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want base value preserved", cfg.Server.Host)
	}
	if cfg.ElevenLabs.APIKey != "staging-key" {
		t.Errorf("APIKey = %q, want overlay value", cfg.ElevenLabs.APIKey)
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	t.Chdir(dir)

	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("ELEVENLABS_API_KEY", "env-key")
	t.Setenv("SERVICE_SHUTDOWN_TIMEOUT", "45s")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want env override", cfg.Server.Port)
	}
	if cfg.ElevenLabs.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env override", cfg.ElevenLabs.APIKey)
	}
	if cfg.ShutdownTimeout != "45s" {
		t.Errorf("ShutdownTimeout = %q, want env override", cfg.ShutdownTimeout)
	}
}

func TestFinalizeValidation(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	t.Run("missing api key", func(t *testing.T) {
		writeConfig(t, dir, "config.toml", "")
		cfg, err := config.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if err := cfg.Finalize(); err == nil {
			t.Error("Finalize() error = nil, want missing elevenlabs api_key")
		}
	})

	t.Run("invalid port", func(t *testing.T) {
		writeConfig(t, dir, "config.toml", `
[server]
port = 99999

[elevenlabs]
api_key = "k"
`)
		cfg, err := config.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if err := cfg.Finalize(); err == nil {
			t.Error("Finalize() error = nil, want invalid port")
		}
	})

	t.Run("invalid shutdown timeout", func(t *testing.T) {
		writeConfig(t, dir, "config.toml", `
shutdown_timeout = "soon"

[elevenlabs]
api_key = "k"
`)
		cfg, err := config.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if err := cfg.Finalize(); err == nil {
			t.Error("Finalize() error = nil, want invalid duration")
		}
	})
}

func TestDatabaseDsn(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	t.Chdir(dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	dsn := cfg.Database.Dsn()
	for _, fragment := range []string{"host=localhost", "dbname=voicelab_test", "sslmode=disable"} {
		if !strings.Contains(dsn, fragment) {
			t.Errorf("Dsn() = %q, missing %q", dsn, fragment)
		}
	}
}
