package api

import (
	"log/slog"
	"net/http"

	"github.com/rzaytsev/vocab-api/internal/api/shared"
	"github.com/rzaytsev/vocab-api/internal/catalog"
	"github.com/rzaytsev/vocab-api/internal/domain"
	"github.com/rzaytsev/vocab-api/internal/platform/logger"
	"github.com/rzaytsev/vocab-api/internal/service"
)

// DataHandler serves statistics, progress, export/import, data reset and
// preference endpoints.
type DataHandler struct {
	learning    *service.LearningService
	preferences *service.PreferencesService
	catalog     *catalog.Catalog
	logger      *slog.Logger
}

// NewDataHandler creates a DataHandler.
func NewDataHandler(
	learning *service.LearningService,
	preferences *service.PreferencesService,
	cat *catalog.Catalog,
	log *slog.Logger,
) *DataHandler {
	if learning == nil {
		panic("learning cannot be nil")
	}
	if preferences == nil {
		panic("preferences cannot be nil")
	}
	if cat == nil {
		panic("catalog cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &DataHandler{
		learning:    learning,
		preferences: preferences,
		catalog:     cat,
		logger:      log.With(slog.String("component", "data_handler")),
	}
}

// GetStatistics handles GET /api/statistics.
func (h *DataHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.learning.Statistics())
}

// GetProgress handles GET /api/progress.
func (h *DataHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	words := h.learning.Words()

	byLevel := make(map[domain.Level]*LevelProgress)
	for _, level := range domain.Levels() {
		byLevel[level] = &LevelProgress{
			Level: string(level),
			Total: h.catalog.CountForLevel(level),
		}
	}
	for _, entry := range h.learning.CustomEntries() {
		if p, ok := byLevel[entry.Level]; ok {
			p.Total++
		}
	}

	resp := ProgressResponse{}
	var correct, total int
	for _, lw := range words {
		p, ok := byLevel[lw.Level]
		if !ok {
			continue
		}
		if lw.IsLearned {
			p.Learned++
			resp.TotalLearned++
		} else {
			p.Learning++
			resp.TotalLearning++
		}
		correct += lw.Repetition.CorrectAnswers
		total += lw.Repetition.TotalAnswers
	}
	if total > 0 {
		resp.OverallAccuracy = float64(correct) / float64(total)
	}

	for _, level := range domain.Levels() {
		resp.Levels = append(resp.Levels, *byLevel[level])
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Export handles GET /api/export.
func (h *DataHandler) Export(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.learning.Export())
}

// Import handles POST /api/import.
func (h *DataHandler) Import(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var snapshot service.Snapshot
	if err := shared.DecodeJSON(r, &snapshot); err != nil {
		log.Debug("failed to decode import payload", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	report, err := h.learning.Import(r.Context(), snapshot)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, report)
}

// ClearData handles DELETE /api/data.
func (h *DataHandler) ClearData(w http.ResponseWriter, r *http.Request) {
	h.learning.ClearAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// GetTheme handles GET /api/preferences/theme.
func (h *DataHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, ThemeResponse{Theme: h.preferences.Theme(r.Context())})
}

// SetTheme handles PUT /api/preferences/theme.
func (h *DataHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req ThemeRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}
	if err := h.preferences.SetTheme(r.Context(), req.Theme); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
