package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rzaytsev/vocab-api/internal/api/shared"
	"github.com/rzaytsev/vocab-api/internal/catalog"
	"github.com/rzaytsev/vocab-api/internal/domain"
	"github.com/rzaytsev/vocab-api/internal/platform/logger"
	"github.com/rzaytsev/vocab-api/internal/service"
)

// WordHandler serves the catalog, learning set and custom word endpoints.
type WordHandler struct {
	learning *service.LearningService
	catalog  *catalog.Catalog
	logger   *slog.Logger
}

// NewWordHandler creates a WordHandler.
func NewWordHandler(learning *service.LearningService, cat *catalog.Catalog, log *slog.Logger) *WordHandler {
	if learning == nil {
		panic("learning cannot be nil")
	}
	if cat == nil {
		panic("catalog cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &WordHandler{
		learning: learning,
		catalog:  cat,
		logger:   log.With(slog.String("component", "word_handler")),
	}
}

// ListLevels handles GET /api/levels.
func (h *WordHandler) ListLevels(w http.ResponseWriter, r *http.Request) {
	custom := h.learning.CustomEntries()
	customByLevel := make(map[domain.Level]int)
	for _, entry := range custom {
		customByLevel[entry.Level]++
	}

	learningByLevel := make(map[domain.Level]int)
	learnedByLevel := make(map[domain.Level]int)
	for _, lw := range h.learning.Words() {
		if lw.IsLearned {
			learnedByLevel[lw.Level]++
		} else {
			learningByLevel[lw.Level]++
		}
	}

	levels := make([]LevelResponse, 0, len(domain.Levels()))
	for _, level := range domain.Levels() {
		levels = append(levels, LevelResponse{
			Level:        string(level),
			CatalogWords: h.catalog.CountForLevel(level) + customByLevel[level],
			Learning:     learningByLevel[level],
			Learned:      learnedByLevel[level],
		})
	}
	shared.RespondWithJSON(w, r, http.StatusOK, levels)
}

// ListLevelWords handles GET /api/levels/{level}/words.
func (h *WordHandler) ListLevelWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	level, ok := pathLevel(w, r, log)
	if !ok {
		return
	}

	entries := h.catalog.WordsForLevel(level, h.learning.CustomEntries())
	words := make([]WordResponse, 0, len(entries))
	for _, entry := range entries {
		words = append(words, WordResponse{
			Word:        entry.Word,
			Translation: entry.Translation,
			Level:       string(entry.Level),
			Category:    entry.Category,
			IsLearning:  h.learning.IsLearning(entry.Word),
			Audio:       audioForWord(entry.Word),
		})
	}
	shared.RespondWithJSON(w, r, http.StatusOK, words)
}

// AddLearningWord handles POST /api/learning/words.
func (h *WordHandler) AddLearningWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req AddWordRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	level, err := domain.ParseLevel(req.Level)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	word, err := h.learning.Add(r.Context(), req.Word, req.Translation, level)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, toLearningWordResponse(word))
}

// AddLevel handles POST /api/learning/levels/{level}.
func (h *WordHandler) AddLevel(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	level, ok := pathLevel(w, r, log)
	if !ok {
		return
	}
	added := h.learning.AddAllFromLevel(r.Context(), level)
	shared.RespondWithJSON(w, r, http.StatusOK, CountResponse{Count: added})
}

// RemoveLevel handles DELETE /api/learning/levels/{level}.
func (h *WordHandler) RemoveLevel(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	level, ok := pathLevel(w, r, log)
	if !ok {
		return
	}
	removed := h.learning.RemoveLevel(r.Context(), level)
	shared.RespondWithJSON(w, r, http.StatusOK, CountResponse{Count: removed})
}

// RemoveLearningWord handles DELETE /api/learning/words/{word}. Deleting an
// untracked word still answers 204.
func (h *WordHandler) RemoveLearningWord(w http.ResponseWriter, r *http.Request) {
	h.learning.Remove(r.Context(), chi.URLParam(r, "word"))
	w.WriteHeader(http.StatusNoContent)
}

// MarkLearned handles POST /api/learning/words/{word}/learned.
func (h *WordHandler) MarkLearned(w http.ResponseWriter, r *http.Request) {
	if !h.learning.MarkLearned(r.Context(), chi.URLParam(r, "word")) {
		handleServiceError(w, r, service.ErrWordNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetImage handles PUT /api/learning/words/{word}/image.
func (h *WordHandler) SetImage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req ImageURLRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}
	if !h.learning.SetImageURL(r.Context(), chi.URLParam(r, "word"), req.ImageURL) {
		handleServiceError(w, r, service.ErrWordNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListLearningWords handles GET /api/learning/words. With ?due=true only the
// words the scheduler considers due are returned, hardest first.
func (h *WordHandler) ListLearningWords(w http.ResponseWriter, r *http.Request) {
	var words []*domain.LearningWord
	if r.URL.Query().Get("due") == "true" {
		words = h.learning.DueForReview()
	} else {
		words = h.learning.Words()
	}

	out := make([]LearningWordResponse, 0, len(words))
	for _, lw := range words {
		out = append(out, toLearningWordResponse(lw))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// ListCustomWords handles GET /api/custom/words.
func (h *WordHandler) ListCustomWords(w http.ResponseWriter, r *http.Request) {
	custom := h.learning.CustomWords()
	out := make([]CustomWordResponse, 0, len(custom))
	for _, c := range custom {
		out = append(out, toCustomWordResponse(c))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// AddCustomWord handles POST /api/custom/words.
func (h *WordHandler) AddCustomWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CustomWordRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	level, err := domain.ParseLevel(req.Level)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	custom, err := h.learning.AddCustom(r.Context(), req.Word, req.Translation, level)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, toCustomWordResponse(custom))
}

// RemoveCustomWord handles DELETE /api/custom/words/{id}.
func (h *WordHandler) RemoveCustomWord(w http.ResponseWriter, r *http.Request) {
	h.learning.RemoveCustom(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
