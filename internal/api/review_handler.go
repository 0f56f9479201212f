package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rzaytsev/vocab-api/internal/api/shared"
	"github.com/rzaytsev/vocab-api/internal/domain/srs"
	"github.com/rzaytsev/vocab-api/internal/platform/logger"
	"github.com/rzaytsev/vocab-api/internal/service/review"
)

// sessionView is the combined session status returned by the session
// endpoints: overall progress plus, while active, the current prompt.
type sessionView struct {
	Progress review.Progress `json:"progress"`
	Current  *review.Prompt  `json:"current,omitempty"`
}

// ReviewHandler serves the review session endpoints.
type ReviewHandler struct {
	engine *review.Engine
	logger *slog.Logger
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(engine *review.Engine, log *slog.Logger) *ReviewHandler {
	if engine == nil {
		panic("engine cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &ReviewHandler{
		engine: engine,
		logger: log.With(slog.String("component", "review_handler")),
	}
}

// StartSession handles POST /api/review/session. An empty queue answers 204.
func (h *ReviewHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req StartSessionRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	_, err := h.engine.Start(review.StudyMode(req.StudyMode), review.PracticeMode(req.PracticeMode))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	h.respondWithSession(w, r, http.StatusCreated)
}

// GetSession handles GET /api/review/session.
func (h *ReviewHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.respondWithSession(w, r, http.StatusOK)
}

// Answer handles POST /api/review/session/answer.
func (h *ReviewHandler) Answer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req AnswerRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}
	if (req.Grade == "") == (req.Option == "") {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Provide exactly one of grade or option")
		return
	}

	var result review.AnswerResult
	var err error
	if req.Grade != "" {
		result, err = h.engine.AnswerGrade(r.Context(), srs.Grade(req.Grade))
	} else {
		result, err = h.engine.AnswerOption(r.Context(), req.Option)
	}
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// Skip handles POST /api/review/session/skip.
func (h *ReviewHandler) Skip(w http.ResponseWriter, r *http.Request) {
	progress, err := h.engine.Skip()
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, progress)
}

// AbandonSession handles DELETE /api/review/session.
func (h *ReviewHandler) AbandonSession(w http.ResponseWriter, r *http.Request) {
	h.engine.Abandon()
	w.WriteHeader(http.StatusNoContent)
}

func (h *ReviewHandler) respondWithSession(w http.ResponseWriter, r *http.Request, status int) {
	view := sessionView{Progress: h.engine.Progress()}

	current, err := h.engine.Current()
	switch {
	case err == nil:
		view.Current = &current
	case errors.Is(err, review.ErrNoSession):
		// Idle or complete sessions report progress without a prompt.
	default:
		handleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, status, view)
}
