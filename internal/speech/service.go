package speech

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JaimeStill/voice-lab/internal/elevenlabs"
	"github.com/JaimeStill/voice-lab/internal/storage"
	"github.com/google/uuid"
)

const (
	// quickVoiceID is the fixed voice for the lightweight /tts endpoint.
	quickVoiceID = "EXAVITQu4vr4xnSDxMaL"

	monolingualModel = "eleven_monolingual_v1"

	// maxTranscribeBytes bounds uploads to the scribe transcription endpoint.
	maxTranscribeBytes = 60000

	// maxCloneBytes bounds voice cloning sample uploads.
	maxCloneBytes = 10 << 20
)

var (
	relaxedSettings = elevenlabs.VoiceSettings{Stability: 0.75, SimilarityBoost: 0.75}
	neutralSettings = elevenlabs.VoiceSettings{Stability: 0.5, SimilarityBoost: 0.5}
)

// Vendor is the subset of the vendor client the speech service requires.
type Vendor interface {
	TextToSpeech(ctx context.Context, voiceID, text, modelID string, settings elevenlabs.VoiceSettings) ([]byte, error)
	SpeechToText(ctx context.Context, audio []byte, contentType string) (string, error)
	Transcribe(ctx context.Context, filename string, audio []byte) (*elevenlabs.Transcription, error)
	AddVoice(ctx context.Context, name, description string, samples []elevenlabs.VoiceSample) (string, error)
}

// Translator translates text into a target language.
type Translator interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// System defines the speech operations.
type System interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
	SynthesizeWithVoice(ctx context.Context, voiceID, text string) ([]byte, error)
	Speak(ctx context.Context, text, target string) ([]byte, error)
	SpeechToText(ctx context.Context, audio []byte, contentType string) (string, error)
	Transcribe(ctx context.Context, filename string, audio []byte) (*elevenlabs.Transcription, error)
	CloneVoice(ctx context.Context, cmd CloneCommand) ([]byte, error)
	RecordTranscription(ctx context.Context, audioBase64, text string) (*TranscriptionRecord, error)
	History(ctx context.Context) ([]TranscriptionRecord, error)
}

// CloneCommand carries a voice cloning request. An existing VoiceID skips
// voice creation and synthesizes directly.
type CloneCommand struct {
	Audio       []byte
	Filename    string
	ContentType string
	VoiceID     string
	Text        string
}

type service struct {
	vendor         Vendor
	translator     Translator
	history        HistoryStore
	blobs          storage.System
	logger         *slog.Logger
	defaultVoiceID string
}

// New creates the speech service.
func New(vendor Vendor, translator Translator, history HistoryStore, blobs storage.System, defaultVoiceID string, logger *slog.Logger) System {
	return &service{
		vendor:         vendor,
		translator:     translator,
		history:        history,
		blobs:          blobs,
		logger:         logger.With("system", "speech"),
		defaultVoiceID: defaultVoiceID,
	}
}

// Synthesize converts text to speech with the fixed quick voice.
func (s *service) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrMissingText
	}

	audio, err := s.vendor.TextToSpeech(ctx, quickVoiceID, text, "", relaxedSettings)
	if err != nil {
		return nil, err
	}

	s.recordClip(ctx, quickVoiceID, text, audio)
	return audio, nil
}

// SynthesizeWithVoice converts text to speech with an explicit voice and the
// monolingual model.
func (s *service) SynthesizeWithVoice(ctx context.Context, voiceID, text string) ([]byte, error) {
	if voiceID == "" {
		return nil, ErrMissingVoice
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrMissingText
	}

	audio, err := s.vendor.TextToSpeech(ctx, voiceID, text, monolingualModel, neutralSettings)
	if err != nil {
		return nil, err
	}

	s.recordClip(ctx, voiceID, text, audio)
	return audio, nil
}

// Speak translates text into the target language, then synthesizes the
// translation with the configured default voice.
func (s *service) Speak(ctx context.Context, text, target string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrMissingText
	}
	if target == "" {
		return nil, ErrMissingTarget
	}

	translated, err := s.translator.Translate(ctx, text, target)
	if err != nil {
		return nil, fmt.Errorf("translate text: %w", err)
	}

	audio, err := s.vendor.TextToSpeech(ctx, s.defaultVoiceID, translated, "", relaxedSettings)
	if err != nil {
		return nil, err
	}

	s.recordClip(ctx, s.defaultVoiceID, translated, audio)
	return audio, nil
}

func (s *service) SpeechToText(ctx context.Context, audio []byte, contentType string) (string, error) {
	if len(audio) == 0 {
		return "", ErrInvalidAudio
	}
	if contentType == "" {
		contentType = "audio/ogg"
	}
	return s.vendor.SpeechToText(ctx, audio, contentType)
}

func (s *service) Transcribe(ctx context.Context, filename string, audio []byte) (*elevenlabs.Transcription, error) {
	if len(audio) == 0 {
		return nil, ErrInvalidAudio
	}
	if len(audio) > maxTranscribeBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d limit", ErrAudioTooLarge, len(audio), maxTranscribeBytes)
	}
	return s.vendor.Transcribe(ctx, filename, audio)
}

func (s *service) CloneVoice(ctx context.Context, cmd CloneCommand) ([]byte, error) {
	voiceID := cmd.VoiceID

	if voiceID == "" {
		if len(cmd.Audio) == 0 {
			return nil, ErrInvalidAudio
		}
		if len(cmd.Audio) > maxCloneBytes {
			return nil, fmt.Errorf("%w: %d bytes exceeds %d limit", ErrAudioTooLarge, len(cmd.Audio), maxCloneBytes)
		}
		if !strings.HasPrefix(cmd.ContentType, "audio/") {
			return nil, fmt.Errorf("%w: content type %q", ErrInvalidAudio, cmd.ContentType)
		}

		created, err := s.vendor.AddVoice(ctx,
			fmt.Sprintf("Voice_%d", time.Now().UnixMilli()),
			"Voice cloned from uploaded audio",
			[]elevenlabs.VoiceSample{{Filename: cmd.Filename, Data: cmd.Audio}},
		)
		if err != nil {
			return nil, err
		}
		voiceID = created
	}

	text := cmd.Text
	if text == "" {
		text = "Hello, this is a test of voice cloning technology."
	}

	audio, err := s.vendor.TextToSpeech(ctx, voiceID, text, monolingualModel, neutralSettings)
	if err != nil {
		return nil, err
	}

	s.recordClip(ctx, voiceID, text, audio)
	return audio, nil
}

func (s *service) RecordTranscription(ctx context.Context, audioBase64, text string) (*TranscriptionRecord, error) {
	return s.history.InsertTranscription(ctx, audioBase64, text)
}

func (s *service) History(ctx context.Context) ([]TranscriptionRecord, error) {
	return s.history.ListTranscriptions(ctx)
}

// recordClip stores the generated audio and tracks it in history. Failures
// are logged; the caller still receives the audio.
func (s *service) recordClip(ctx context.Context, voiceID, text string, audio []byte) {
	key := fmt.Sprintf("speech/%s.mp3", uuid.New())

	if err := s.blobs.Store(ctx, key, audio); err != nil {
		s.logger.Error("speech clip storage failed", "key", key, "error", err)
		return
	}

	if _, err := s.history.InsertSpeech(ctx, voiceID, text, key); err != nil {
		s.logger.Error("speech history insert failed", "key", key, "error", err)
	}
}
