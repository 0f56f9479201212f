package srs

import (
	"errors"
	"sort"
	"time"

	"github.com/rzaytsev/vocab-api/internal/domain"
)

// Common errors
var (
	ErrInvalidGrade = errors.New("invalid answer grade")
)

// Result is the outcome of applying one answer to a repetition state.
type Result struct {
	// State is the new repetition state. The input state is never mutated.
	State domain.RepetitionState

	// Promoted is set when the word crossed the mastery threshold with this
	// answer and should be marked learned by the caller.
	Promoted bool
}

// Service defines the scheduling operations used by the review engine.
type Service interface {
	// Apply computes the post-answer repetition state for a grade at the
	// given time. Deterministic for fixed (state, grade, now).
	Apply(state domain.RepetitionState, grade Grade, now time.Time) (Result, error)

	// DueWords filters words due for review at now (unlearned words whose
	// next review time has passed) and orders them hardest first, ties
	// broken by longest overdue.
	DueWords(words []*domain.LearningWord, now time.Time) []*domain.LearningWord

	// PracticeWords filters unlearned words that are NOT yet due and orders
	// them for endless practice: hardest first, lowest accuracy first.
	PracticeWords(words []*domain.LearningWord, now time.Time) []*domain.LearningWord
}

type defaultService struct {
	params *Params
}

// NewDefaultService creates a scheduler with the default parameter set.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a scheduler with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

func (s *defaultService) Apply(state domain.RepetitionState, grade Grade, now time.Time) (Result, error) {
	if !grade.Valid() {
		return Result{}, ErrInvalidGrade
	}
	return calculateNextState(state, grade, now, s.params), nil
}

func (s *defaultService) DueWords(words []*domain.LearningWord, now time.Time) []*domain.LearningWord {
	due := make([]*domain.LearningWord, 0, len(words))
	for _, w := range words {
		if !w.IsLearned && w.Repetition.Due(now) {
			due = append(due, w)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].Repetition.Difficulty != due[j].Repetition.Difficulty {
			return due[i].Repetition.Difficulty > due[j].Repetition.Difficulty
		}
		return due[i].Repetition.NextReview.Before(due[j].Repetition.NextReview)
	})

	return due
}

func (s *defaultService) PracticeWords(words []*domain.LearningWord, now time.Time) []*domain.LearningWord {
	upcoming := make([]*domain.LearningWord, 0, len(words))
	for _, w := range words {
		if !w.IsLearned && !w.Repetition.Due(now) {
			upcoming = append(upcoming, w)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		if upcoming[i].Repetition.Difficulty != upcoming[j].Repetition.Difficulty {
			return upcoming[i].Repetition.Difficulty > upcoming[j].Repetition.Difficulty
		}
		return upcoming[i].Repetition.Accuracy() < upcoming[j].Repetition.Accuracy()
	})

	return upcoming
}
