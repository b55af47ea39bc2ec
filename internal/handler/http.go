// Package handler exposes the reflection core over HTTP. It owns the
// collaborator duties the core refuses: translating validation errors
// to 400, persisting results, and counting usage. Generation failures
// never surface here; the core guarantees a reply.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-labs/inkwell/internal/responder"
	"github.com/inkwell-labs/inkwell/internal/storage"
	"github.com/inkwell-labs/inkwell/internal/types"
)

// Replier produces the assistant turn for a conversation.
type Replier interface {
	Reply(ctx context.Context, msgs []types.ChatMessage, supportType, personalityType, customInstructions string) (types.GenerationResult, error)
}

// Classifier produces the mood classification for a text.
type Classifier interface {
	Classify(ctx context.Context, text string) (types.SentimentResult, error)
}

// Handler routes the AI endpoints. Store may be nil; the service then
// runs without persistence.
type Handler struct {
	replier    Replier
	classifier Classifier
	store      *storage.Store
}

// New wires the routes and returns the root http.Handler.
func New(replier Replier, classifier Classifier, store *storage.Store) http.Handler {
	h := &Handler{replier: replier, classifier: classifier, store: store}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/ai/reply", h.handleReply)
	mux.HandleFunc("POST /api/ai/sentiment", h.handleSentiment)
	mux.HandleFunc("GET /api/ai/reflections", h.handleReflections)
	mux.HandleFunc("GET /api/ai/usage", h.handleUsage)
	return withRequestLog(mux)
}

type replyRequest struct {
	Messages           []types.ChatMessage `json:"messages"`
	SupportType        string              `json:"supportType"`
	PersonalityType    string              `json:"personalityType"`
	CustomInstructions string              `json:"customInstructions"`
}

type sentimentRequest struct {
	Text string `json:"text"`
}

func (h *Handler) handleReply(w http.ResponseWriter, r *http.Request) {
	var req replyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.replier.Reply(r.Context(), req.Messages, req.SupportType, req.PersonalityType, req.CustomInstructions)
	if errors.Is(err, responder.ErrInvalidConversation) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		// Only caller cancellation reaches this branch; nobody is
		// listening for the response anymore.
		slog.Debug("reply request abandoned", "error", err.Error())
		return
	}

	h.record(r, result, req.SupportType, req.PersonalityType)
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleSentiment(w http.ResponseWriter, r *http.Request) {
	var req sentimentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.classifier.Classify(r.Context(), req.Text)
	if err != nil {
		slog.Debug("sentiment request abandoned", "error", err.Error())
		return
	}

	if h.store != nil {
		month := time.Now().UTC().Format("2006-01")
		if err := h.store.Usage.IncrementSentiment(r.Context(), userID(r), month); err != nil {
			slog.Error("failed to count sentiment usage", "error", err.Error())
		}
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleReflections(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusOK, []types.Reflection{})
		return
	}
	reflections, err := h.store.Reflections.RecentByUser(r.Context(), userID(r), 20)
	if err != nil {
		slog.Error("failed to load reflections", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to load reflections")
		return
	}
	if reflections == nil {
		reflections = []types.Reflection{}
	}
	writeJSON(w, http.StatusOK, reflections)
}

func (h *Handler) handleUsage(w http.ResponseWriter, r *http.Request) {
	month := time.Now().UTC().Format("2006-01")
	if h.store == nil {
		writeJSON(w, http.StatusOK, storage.UsageTotals{})
		return
	}
	totals, err := h.store.Usage.MonthTotals(r.Context(), userID(r), month)
	if err != nil {
		slog.Error("failed to load usage", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to load usage")
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

// record persists the reply and bumps the usage counter, best effort.
func (h *Handler) record(r *http.Request, result types.GenerationResult, supportType, personalityType string) {
	if h.store == nil {
		return
	}
	uid := userID(r)
	if err := h.store.Reflections.Add(r.Context(), types.Reflection{
		UserID:      uid,
		SupportType: string(types.NormalizeSupportType(supportType)),
		Personality: personalityType,
		Content:     result.Content,
		Fallback:    result.Fallback,
	}); err != nil {
		slog.Error("failed to persist reflection", "error", err.Error())
	}
	month := time.Now().UTC().Format("2006-01")
	if err := h.store.Usage.IncrementReply(r.Context(), uid, month); err != nil {
		slog.Error("failed to count reply usage", "error", err.Error())
	}
}

// userID trusts the upstream auth layer to set the header; everything
// else is treated as anonymous.
func userID(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	return "anonymous"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// withRequestLog tags every request with an id and logs its outcome.
func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		slog.Info("http request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
