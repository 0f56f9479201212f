package api

import (
	"strings"
	"time"

	"github.com/rzaytsev/vocab-api/internal/domain"
)

// AudioURLs carries the pronunciation sound file locations for a word.
// Fetching and playback stay on the client.
type AudioURLs struct {
	UK string `json:"uk"`
	US string `json:"us"`
}

// audioForWord builds the wooordhunt sound URLs. The site keys files by the
// bare lowercase word, so anything outside a-z is stripped first.
func audioForWord(word string) AudioURLs {
	var b strings.Builder
	for _, r := range strings.ToLower(word) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	processed := b.String()
	return AudioURLs{
		UK: "https://wooordhunt.ru/data/sound/sow/uk/" + processed + ".mp3",
		US: "https://wooordhunt.ru/data/sound/sow/us/" + processed + ".mp3",
	}
}

// AddWordRequest starts learning a word.
type AddWordRequest struct {
	Word        string `json:"word"        validate:"required"`
	Translation string `json:"translation" validate:"required"`
	Level       string `json:"level"       validate:"required"`
}

// CustomWordRequest creates a user-defined word.
type CustomWordRequest struct {
	Word        string `json:"word"        validate:"required"`
	Translation string `json:"translation" validate:"required"`
	Level       string `json:"level"       validate:"required"`
}

// ImageURLRequest attaches an illustration to a learning word.
type ImageURLRequest struct {
	ImageURL string `json:"image_url" validate:"required,url"`
}

// StartSessionRequest builds a review queue.
type StartSessionRequest struct {
	StudyMode    string `json:"study_mode"    validate:"required,oneof=flashcard quiz"`
	PracticeMode string `json:"practice_mode" validate:"required,oneof=scheduled endless"`
}

// AnswerRequest commits an answer for the current session item. Flashcard
// sessions send a grade, quiz sessions send the chosen option.
type AnswerRequest struct {
	Grade  string `json:"grade,omitempty"`
	Option string `json:"option,omitempty"`
}

// ThemeRequest updates the UI theme preference.
type ThemeRequest struct {
	Theme string `json:"theme" validate:"required"`
}

// LevelResponse describes one CEFR level for the level picker.
type LevelResponse struct {
	Level        string `json:"level"`
	CatalogWords int    `json:"catalogWords"`
	Learning     int    `json:"learning"`
	Learned      int    `json:"learned"`
}

// WordResponse is a catalog or custom word as shown on the level page.
type WordResponse struct {
	Word        string    `json:"word"`
	Translation string    `json:"translation"`
	Level       string    `json:"level"`
	Category    string    `json:"category,omitempty"`
	IsLearning  bool      `json:"isLearning"`
	Audio       AudioURLs `json:"audio"`
}

// LearningWordResponse is a tracked word with its schedule state.
type LearningWordResponse struct {
	ID          string                 `json:"id"`
	Word        string                 `json:"word"`
	Translation string                 `json:"translation"`
	Level       string                 `json:"level"`
	DateAdded   time.Time              `json:"dateAdded"`
	IsLearned   bool                   `json:"isLearned"`
	DateLearned *time.Time             `json:"dateLearned,omitempty"`
	Repetition  domain.RepetitionState `json:"repetitionData"`
	ImageURL    string                 `json:"imageUrl,omitempty"`
	Audio       AudioURLs              `json:"audio"`
}

func toLearningWordResponse(w *domain.LearningWord) LearningWordResponse {
	return LearningWordResponse{
		ID:          w.ID,
		Word:        w.Word,
		Translation: w.Translation,
		Level:       string(w.Level),
		DateAdded:   w.DateAdded,
		IsLearned:   w.IsLearned,
		DateLearned: w.DateLearned,
		Repetition:  w.Repetition,
		ImageURL:    w.ImageURL,
		Audio:       audioForWord(w.Word),
	}
}

// CustomWordResponse is a user-defined word.
type CustomWordResponse struct {
	ID          string    `json:"id"`
	Word        string    `json:"word"`
	Translation string    `json:"translation"`
	Level       string    `json:"level"`
	DateAdded   time.Time `json:"dateAdded"`
	Audio       AudioURLs `json:"audio"`
}

func toCustomWordResponse(c *domain.CustomWord) CustomWordResponse {
	return CustomWordResponse{
		ID:          c.ID,
		Word:        c.Word,
		Translation: c.Translation,
		Level:       string(c.Level),
		DateAdded:   c.DateAdded,
		Audio:       audioForWord(c.Word),
	}
}

// LevelProgress is the per-level block of the progress read model.
type LevelProgress struct {
	Level    string `json:"level"`
	Total    int    `json:"total"`
	Learning int    `json:"learning"`
	Learned  int    `json:"learned"`
}

// ProgressResponse mirrors the original progress page: per-level counts plus
// overall answer accuracy.
type ProgressResponse struct {
	Levels          []LevelProgress `json:"levels"`
	TotalLearning   int             `json:"totalLearning"`
	TotalLearned    int             `json:"totalLearned"`
	OverallAccuracy float64         `json:"overallAccuracy"`
}

// CountResponse reports how many entries a bulk operation touched.
type CountResponse struct {
	Count int `json:"count"`
}

// ThemeResponse carries the current theme preference.
type ThemeResponse struct {
	Theme string `json:"theme"`
}
