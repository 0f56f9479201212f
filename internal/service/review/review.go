// Package review implements the review session engine: it builds a practice
// queue from the scheduler's due and practice sets, presents one item at a
// time in either flashcard or quiz form, and commits every answer to the
// learning service as it happens. Sessions are cheap to abandon because no
// state is deferred to a final commit.
package review

import "errors"

// StudyMode selects how an item is presented.
type StudyMode string

const (
	StudyFlashcard StudyMode = "flashcard"
	StudyQuiz      StudyMode = "quiz"
)

// Valid reports whether the mode is a known study mode.
func (m StudyMode) Valid() bool {
	return m == StudyFlashcard || m == StudyQuiz
}

// PracticeMode selects which words enter the queue.
type PracticeMode string

const (
	// PracticeScheduled reviews only the words the scheduler says are due.
	PracticeScheduled PracticeMode = "scheduled"
	// PracticeEndless reviews due words first, then keeps going through the
	// rest of the unlearned set, requeueing misses.
	PracticeEndless PracticeMode = "endless"
)

// Valid reports whether the mode is a known practice mode.
func (m PracticeMode) Valid() bool {
	return m == PracticeScheduled || m == PracticeEndless
}

// Direction is the orientation of a single prompt.
type Direction string

const (
	WordToTranslation Direction = "word_to_translation"
	TranslationToWord Direction = "translation_to_word"
)

// State is the lifecycle position of the engine.
type State string

const (
	StateIdle     State = "idle"
	StateActive   State = "active"
	StateComplete State = "complete"
)

var (
	// ErrInvalidMode indicates an unknown study or practice mode.
	ErrInvalidMode = errors.New("invalid session mode")

	// ErrEmptyQueue indicates there is nothing to review right now.
	ErrEmptyQueue = errors.New("no words available for review")

	// ErrNoSession indicates an operation that needs an active session.
	ErrNoSession = errors.New("no active review session")

	// ErrGradeNotAccepted indicates a graded answer sent to a quiz session.
	ErrGradeNotAccepted = errors.New("quiz sessions answer by option, not grade")

	// ErrOptionNotAccepted indicates an option answer sent to a flashcard
	// session.
	ErrOptionNotAccepted = errors.New("flashcard sessions answer by grade, not option")
)
