package speech

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/voice-lab/pkg/handlers"
	"github.com/JaimeStill/voice-lab/pkg/routes"
)

// Handler provides HTTP endpoints for synthesis, transcription, cloning, and
// history.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a new speech HTTP handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger,
	}
}

// Routes returns the route group configuration for speech endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/api",
		Tags:        []string{"Speech"},
		Description: "Voice synthesis, transcription, and cloning",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/tts", Handler: h.TTS},
			{Method: "POST", Pattern: "/text-to-speech", Handler: h.TextToSpeech},
			{Method: "POST", Pattern: "/speak", Handler: h.Speak},
			{Method: "POST", Pattern: "/stt", Handler: h.STT},
			{Method: "POST", Pattern: "/transcribe", Handler: h.Transcribe},
			{Method: "POST", Pattern: "/clone-voice", Handler: h.CloneVoice},
			{Method: "GET", Pattern: "/history", Handler: h.History},
			{Method: "POST", Pattern: "/history", Handler: h.RecordHistory},
		},
	}
}

// TTS handles POST /api/tts, synthesizing text with the fixed quick voice.
func (h *Handler) TTS(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	audio, err := h.sys.Synthesize(r.Context(), body.Text)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondAudio(w, audio, "")
}

// TextToSpeech handles POST /api/text-to-speech with an explicit voice.
func (h *Handler) TextToSpeech(w http.ResponseWriter, r *http.Request) {
	var body struct {
		VoiceID string `json:"voiceId"`
		Text    string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	audio, err := h.sys.SynthesizeWithVoice(r.Context(), body.VoiceID, body.Text)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondAudio(w, audio, "cloned-voice.mp3")
}

// Speak handles POST /api/speak, translating then synthesizing.
func (h *Handler) Speak(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
		To   string `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	audio, err := h.sys.Speak(r.Context(), body.Text, body.To)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondAudio(w, audio, "")
}

// STT handles POST /api/stt, transcribing audio sent as the raw request body.
func (h *Handler) STT(w http.ResponseWriter, r *http.Request) {
	audio, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCloneBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrAudioTooLarge)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	text, err := h.sys.SpeechToText(r.Context(), audio, r.Header.Get("Content-Type"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]string{"text": text})
}

// Transcribe handles POST /api/transcribe, a multipart upload to the scribe
// transcription model.
func (h *Handler) Transcribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxTranscribeBytes * 2); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidAudio)
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	result, err := h.sys.Transcribe(r.Context(), header.Filename, audio)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// CloneVoice handles POST /api/clone-voice. Multipart fields: audio (file),
// optional voiceId, optional text.
func (h *Handler) CloneVoice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxCloneBytes + 1024); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	cmd := CloneCommand{
		VoiceID: r.FormValue("voiceId"),
		Text:    r.FormValue("text"),
	}

	if file, header, err := r.FormFile("audio"); err == nil {
		defer file.Close()

		audio, err := io.ReadAll(file)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
			return
		}
		cmd.Audio = audio
		cmd.Filename = header.Filename
		cmd.ContentType = header.Header.Get("Content-Type")
	}

	audio, err := h.sys.CloneVoice(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondAudio(w, audio, "")
}

// History handles GET /api/history, listing stored transcriptions.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	records, err := h.sys.History(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	if records == nil {
		records = []TranscriptionRecord{}
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{"history": records})
}

// RecordHistory handles POST /api/history, storing a transcription entry.
func (h *Handler) RecordHistory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AudioBase64 string `json:"audioBase64"`
		Text        string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if body.AudioBase64 == "" || body.Text == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrMissingText)
		return
	}

	record, err := h.sys.RecordTranscription(r.Context(), body.AudioBase64, body.Text)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{"success": true, "data": record})
}
