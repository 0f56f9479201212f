// Package srs implements the spaced-repetition scheduler: an SM-2 variant
// collapsed to three answer grades, the due-word selection policy, and the
// ordering used to build review queues.
package srs

// Params defines all configurable parameters for the scheduling algorithm.
type Params struct {
	// Core limits
	MinEaseFactor float64

	// Fixed intervals (days) for the first two successful repetitions;
	// later repetitions grow by the ease factor.
	FirstInterval  int
	SecondInterval int

	// LapseInterval is the interval a word falls back to after a failed
	// answer. LapseEasePenalty is subtracted from the ease factor on a
	// lapse, on top of the interval reset.
	LapseInterval    int
	LapseEasePenalty float64

	// Mastery promotion: a word with at least PromotionRepetitions
	// consecutive successes and an interval of at least PromotionInterval
	// days is considered learned.
	PromotionRepetitions int
	PromotionInterval    int

	// Difficulty classification by rolling accuracy, once a word has at
	// least DifficultyMinAnswers answers.
	DifficultyMinAnswers int
	EasyAccuracy         float64
	MediumAccuracy       float64
}

// NewDefaultParams returns the standard parameter set.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor: 1.3,

		FirstInterval:  1,
		SecondInterval: 6,

		LapseInterval:    1,
		LapseEasePenalty: 0.2,

		PromotionRepetitions: 6,
		PromotionInterval:    30,

		DifficultyMinAnswers: 3,
		EasyAccuracy:         0.8,
		MediumAccuracy:       0.6,
	}
}
