package srs

import (
	"math"
	"time"

	"github.com/rzaytsev/vocab-api/internal/domain"
)

// calculateNewEaseFactor applies the SM-2 ease-factor formula for a
// successful answer:
//
//	EF' = EF + (0.1 - (5-q) * (0.08 + (5-q) * 0.02))
//
// The result is clamped to params.MinEaseFactor. With q=5 the delta is +0.1,
// with q=3 it is -0.14; the formula never runs for failed answers, which are
// penalized separately in calculateNextState.
func calculateNewEaseFactor(currentEF float64, quality int, params *Params) float64 {
	missed := float64(5 - quality)
	newEF := currentEF + (0.1 - missed*(0.08+missed*0.02))

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}
	return newEF
}

// calculateNewInterval returns the next interval in days after a successful
// answer. The first two repetitions use fixed intervals; afterwards the
// current interval grows by the pre-answer ease factor.
func calculateNewInterval(currentInterval, repetitions int, easeFactor float64, params *Params) int {
	switch repetitions {
	case 1:
		return params.FirstInterval
	case 2:
		return params.SecondInterval
	default:
		return int(math.Round(float64(currentInterval) * easeFactor))
	}
}

// classifyDifficulty buckets a word by rolling accuracy once it has enough
// answers; before that the difficulty is seeded from the quality of the
// answer just given.
func classifyDifficulty(correct, total, quality int, params *Params) domain.Difficulty {
	if total >= params.DifficultyMinAnswers {
		accuracy := float64(correct) / float64(total)
		switch {
		case accuracy >= params.EasyAccuracy:
			return domain.DifficultyEasy
		case accuracy >= params.MediumAccuracy:
			return domain.DifficultyMedium
		default:
			return domain.DifficultyHard
		}
	}

	switch quality {
	case 5:
		return domain.DifficultyEasy
	case 3:
		return domain.DifficultyMedium
	default:
		return domain.DifficultyHard
	}
}

// calculateNextState computes the full post-answer repetition state. It is a
// pure function of (state, grade, now); the caller owns persistence and the
// mastery promotion that Result.Promoted signals.
func calculateNextState(state domain.RepetitionState, grade Grade, now time.Time, params *Params) Result {
	next := state
	quality := grade.quality()

	next.TotalAnswers++

	if grade.Success() {
		next.CorrectAnswers++
		next.Repetitions++
		// Interval grows by the pre-answer ease factor; the factor itself
		// updates afterwards, matching classic SM-2 ordering.
		next.Interval = calculateNewInterval(state.Interval, next.Repetitions, state.EaseFactor, params)
		next.EaseFactor = calculateNewEaseFactor(state.EaseFactor, quality, params)
	} else {
		// A lapse resets progress and penalizes ease directly.
		next.Repetitions = 0
		next.Interval = params.LapseInterval
		next.EaseFactor = state.EaseFactor - params.LapseEasePenalty
		if next.EaseFactor < params.MinEaseFactor {
			next.EaseFactor = params.MinEaseFactor
		}
	}

	next.NextReview = now.AddDate(0, 0, next.Interval)
	reviewed := now
	next.LastReview = &reviewed

	next.Difficulty = classifyDifficulty(next.CorrectAnswers, next.TotalAnswers, quality, params)

	return Result{
		State:    next,
		Promoted: next.Repetitions >= params.PromotionRepetitions && next.Interval >= params.PromotionInterval,
	}
}
