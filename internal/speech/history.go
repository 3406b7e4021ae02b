package speech

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/voice-lab/pkg/repository"
	"github.com/google/uuid"
)

// TranscriptionRecord is a stored transcription history entry.
type TranscriptionRecord struct {
	ID          uuid.UUID `json:"id"`
	AudioBase64 string    `json:"audio_base64"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
}

// SpeechRecord tracks a generated speech clip and its storage location.
type SpeechRecord struct {
	ID         uuid.UUID `json:"id"`
	VoiceID    string    `json:"voice_id"`
	Text       string    `json:"text"`
	StorageKey string    `json:"storage_key"`
	CreatedAt  time.Time `json:"created_at"`
}

// HistoryStore persists transcription and synthesis history.
type HistoryStore interface {
	InsertTranscription(ctx context.Context, audioBase64, text string) (*TranscriptionRecord, error)
	ListTranscriptions(ctx context.Context) ([]TranscriptionRecord, error)
	InsertSpeech(ctx context.Context, voiceID, text, storageKey string) (*SpeechRecord, error)
}

type historyStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewHistoryStore creates a history store backed by the database.
func NewHistoryStore(db *sql.DB, logger *slog.Logger) HistoryStore {
	return &historyStore{
		db:     db,
		logger: logger.With("system", "speech"),
	}
}

func (s *historyStore) InsertTranscription(ctx context.Context, audioBase64, text string) (*TranscriptionRecord, error) {
	q := `INSERT INTO transcription_history(id, audio_base64, text)
		VALUES($1, $2, $3)
		RETURNING id, audio_base64, text, created_at`

	record, err := repository.QueryOne(ctx, s.db, q, []any{uuid.New(), audioBase64, text}, scanTranscription)
	if err != nil {
		return nil, fmt.Errorf("insert transcription: %w", err)
	}
	return &record, nil
}

func (s *historyStore) ListTranscriptions(ctx context.Context) ([]TranscriptionRecord, error) {
	q := `SELECT id, audio_base64, text, created_at
		FROM transcription_history
		ORDER BY created_at DESC`

	records, err := repository.QueryMany(ctx, s.db, q, nil, scanTranscription)
	if err != nil {
		return nil, fmt.Errorf("query transcriptions: %w", err)
	}
	return records, nil
}

func (s *historyStore) InsertSpeech(ctx context.Context, voiceID, text, storageKey string) (*SpeechRecord, error) {
	q := `INSERT INTO speech_history(id, voice_id, text, storage_key)
		VALUES($1, $2, $3, $4)
		RETURNING id, voice_id, text, storage_key, created_at`

	record, err := repository.QueryOne(ctx, s.db, q, []any{uuid.New(), voiceID, text, storageKey}, scanSpeech)
	if err != nil {
		return nil, fmt.Errorf("insert speech record: %w", err)
	}
	return &record, nil
}

func scanTranscription(s repository.Scanner) (TranscriptionRecord, error) {
	var r TranscriptionRecord
	err := s.Scan(&r.ID, &r.AudioBase64, &r.Text, &r.CreatedAt)
	return r, err
}

func scanSpeech(s repository.Scanner) (SpeechRecord, error) {
	var r SpeechRecord
	err := s.Scan(&r.ID, &r.VoiceID, &r.Text, &r.StorageKey, &r.CreatedAt)
	return r, err
}
