package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Difficulty classifies a learning word by rolling answer accuracy. It is a
// derived value used only for review ordering, not for scheduling.
type Difficulty int

// Difficulty buckets, ordered from easiest to hardest.
const (
	DifficultyEasy   Difficulty = 0
	DifficultyMedium Difficulty = 1
	DifficultyHard   Difficulty = 2
)

// Default repetition parameters for a newly added word.
const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
)

// RepetitionState holds the spaced-repetition bookkeeping for one learning
// word. It is owned exclusively by its parent LearningWord and mutated only
// through the srs package.
type RepetitionState struct {
	EaseFactor     float64    `json:"easeFactor"`           // interval growth multiplier, never below MinEaseFactor
	Interval       int        `json:"interval"`             // days until the next review, at least 1
	Repetitions    int        `json:"repetitions"`          // consecutive successful recalls since the last lapse
	NextReview     time.Time  `json:"nextReview"`           // when the word becomes due
	LastReview     *time.Time `json:"lastReview,omitempty"` // nil until the first answer
	CorrectAnswers int        `json:"correctAnswers"`
	TotalAnswers   int        `json:"totalAnswers"`
	Difficulty     Difficulty `json:"difficulty"`
}

// NewRepetitionState returns the default state for a freshly added word:
// due immediately, default ease, one-day interval.
func NewRepetitionState(now time.Time) RepetitionState {
	return RepetitionState{
		EaseFactor:  DefaultEaseFactor,
		Interval:    1,
		Repetitions: 0,
		NextReview:  now,
		Difficulty:  DifficultyEasy,
	}
}

// Accuracy returns the rolling answer accuracy in [0,1], or 0 before the
// first answer.
func (r RepetitionState) Accuracy() float64 {
	if r.TotalAnswers == 0 {
		return 0
	}
	return float64(r.CorrectAnswers) / float64(r.TotalAnswers)
}

// Due reports whether the word is due for review at the given time.
func (r RepetitionState) Due(now time.Time) bool {
	return !r.NextReview.After(now)
}

// Validate checks the repetition invariants.
func (r RepetitionState) Validate() error {
	if r.EaseFactor < MinEaseFactor {
		return ErrInvalidEaseFactor
	}
	if r.Interval < 1 {
		return ErrInvalidInterval
	}
	if r.CorrectAnswers < 0 || r.TotalAnswers < 0 || r.CorrectAnswers > r.TotalAnswers {
		return ErrInvalidAnswerCounts
	}
	return nil
}

// LearningWord is a word the user is actively studying, together with its
// repetition state and mastery flag.
type LearningWord struct {
	ID          string          `json:"id"`
	Word        string          `json:"word"`
	Translation string          `json:"translation"`
	Level       Level           `json:"level"`
	DateAdded   time.Time       `json:"dateAdded"`
	IsLearned   bool            `json:"isLearned"`
	DateLearned *time.Time      `json:"dateLearned,omitempty"`
	Repetition  RepetitionState `json:"repetitionData"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

// NewLearningWord creates a learning word with a fresh ID, normalized text,
// and default repetition state due immediately.
func NewLearningWord(word, translation string, level Level, now time.Time) (*LearningWord, error) {
	lw := &LearningWord{
		ID:          uuid.NewString(),
		Word:        NormalizeWord(word),
		Translation: strings.TrimSpace(translation),
		Level:       level,
		DateAdded:   now,
		Repetition:  NewRepetitionState(now),
	}

	if err := lw.Validate(); err != nil {
		return nil, err
	}

	return lw, nil
}

// MarkLearned flags the word as mastered at the given time. The word drops
// out of every future review queue.
func (w *LearningWord) MarkLearned(now time.Time) {
	w.IsLearned = true
	learned := now
	w.DateLearned = &learned
}

// Validate checks the learning word's fields and its repetition state.
func (w *LearningWord) Validate() error {
	if w.ID == "" {
		return ErrEmptyID
	}
	if w.Word == "" {
		return ErrEmptyWord
	}
	if w.Translation == "" {
		return ErrEmptyTranslation
	}
	if !w.Level.Valid() {
		return ErrInvalidLevel
	}
	if w.IsLearned && w.DateLearned == nil {
		return ErrLearnedWithoutDate
	}
	return w.Repetition.Validate()
}
