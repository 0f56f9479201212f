package domain

import "errors"

// Validation errors shared across domain entities.
var (
	// ErrInvalidLevel is returned when a string does not name a supported
	// proficiency level.
	ErrInvalidLevel = errors.New("invalid proficiency level")

	// ErrEmptyWord is returned when a word's text is empty after normalization.
	ErrEmptyWord = errors.New("word cannot be empty")

	// ErrEmptyTranslation is returned when a word's translation is empty.
	ErrEmptyTranslation = errors.New("translation cannot be empty")

	// ErrEmptyID is returned when an entity is missing its unique ID.
	ErrEmptyID = errors.New("id cannot be empty")

	// ErrInvalidEaseFactor is returned when a repetition state's ease factor
	// is below the algorithm minimum.
	ErrInvalidEaseFactor = errors.New("ease factor must be at least 1.3")

	// ErrInvalidInterval is returned when a repetition interval is below one day.
	ErrInvalidInterval = errors.New("interval must be at least 1 day")

	// ErrInvalidAnswerCounts is returned when the correct-answer counter
	// exceeds the total-answer counter.
	ErrInvalidAnswerCounts = errors.New("correct answers cannot exceed total answers")

	// ErrLearnedWithoutDate is returned when a word is marked learned but has
	// no learned timestamp.
	ErrLearnedWithoutDate = errors.New("learned word must have a learned date")
)
