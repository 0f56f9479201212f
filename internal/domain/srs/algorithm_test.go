package srs

import (
	"testing"
	"time"

	"github.com/rzaytsev/vocab-api/internal/domain"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newState() domain.RepetitionState {
	return domain.NewRepetitionState(testNow)
}

func TestCalculateNextStateFirstPass(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	// New word answered "know": one-day interval, ease factor grows by 0.1.
	result := calculateNextState(newState(), GradePass, testNow, params)

	if result.State.Repetitions != 1 {
		t.Errorf("Expected repetitions 1, got %d", result.State.Repetitions)
	}
	if result.State.Interval != 1 {
		t.Errorf("Expected interval 1, got %d", result.State.Interval)
	}
	if got, want := result.State.EaseFactor, 2.6; !almostEqual(got, want) {
		t.Errorf("Expected ease factor %.2f, got %.4f", want, got)
	}
	if want := testNow.AddDate(0, 0, 1); !result.State.NextReview.Equal(want) {
		t.Errorf("Expected next review %v, got %v", want, result.State.NextReview)
	}
	if result.State.LastReview == nil || !result.State.LastReview.Equal(testNow) {
		t.Errorf("Expected last review %v, got %v", testNow, result.State.LastReview)
	}
	if result.Promoted {
		t.Error("First pass must not promote")
	}
}

func TestCalculateNextStateSecondPass(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	first := calculateNextState(newState(), GradePass, testNow, params)
	second := calculateNextState(first.State, GradePass, testNow.AddDate(0, 0, 1), params)

	if second.State.Repetitions != 2 {
		t.Errorf("Expected repetitions 2, got %d", second.State.Repetitions)
	}
	if second.State.Interval != 6 {
		t.Errorf("Expected interval 6, got %d", second.State.Interval)
	}
	if want := testNow.AddDate(0, 0, 7); !second.State.NextReview.Equal(want) {
		t.Errorf("Expected next review %v, got %v", want, second.State.NextReview)
	}
}

func TestCalculateNextStateLapse(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	state := newState()
	state.Repetitions = 3
	state.Interval = 10
	state.EaseFactor = 2.0

	result := calculateNextState(state, GradeFail, testNow, params)

	if result.State.Repetitions != 0 {
		t.Errorf("Expected repetitions reset to 0, got %d", result.State.Repetitions)
	}
	if result.State.Interval != 1 {
		t.Errorf("Expected interval reset to 1, got %d", result.State.Interval)
	}
	if got, want := result.State.EaseFactor, 1.8; !almostEqual(got, want) {
		t.Errorf("Expected ease factor %.2f after lapse penalty, got %.4f", want, got)
	}
	if want := testNow.AddDate(0, 0, 1); !result.State.NextReview.Equal(want) {
		t.Errorf("Expected next review %v, got %v", want, result.State.NextReview)
	}
}

func TestCalculateNextStateLaterRepetitionsGrowByEase(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	state := newState()
	state.Repetitions = 2
	state.Interval = 6
	state.EaseFactor = 2.5

	result := calculateNextState(state, GradePass, testNow, params)

	// 6 * 2.5 = 15, using the pre-answer ease factor.
	if result.State.Interval != 15 {
		t.Errorf("Expected interval 15, got %d", result.State.Interval)
	}
	if got, want := result.State.EaseFactor, 2.6; !almostEqual(got, want) {
		t.Errorf("Expected ease factor %.2f, got %.4f", want, got)
	}
}

func TestCalculateNextStatePartial(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	result := calculateNextState(newState(), GradePartial, testNow, params)

	if result.State.Repetitions != 1 {
		t.Errorf("Expected partial to count as success, got repetitions %d", result.State.Repetitions)
	}
	if result.State.CorrectAnswers != 1 {
		t.Errorf("Expected correct answers 1, got %d", result.State.CorrectAnswers)
	}
	// Delta for q=3: 0.1 - 2*(0.08 + 2*0.02) = -0.14.
	if got, want := result.State.EaseFactor, 2.36; !almostEqual(got, want) {
		t.Errorf("Expected ease factor %.2f, got %.4f", want, got)
	}
}

func TestEaseFactorNeverBelowMinimum(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	state := newState()
	for i := 0; i < 20; i++ {
		result := calculateNextState(state, GradeFail, testNow, params)
		state = result.State

		if state.EaseFactor < params.MinEaseFactor {
			t.Fatalf("Ease factor %.4f dropped below minimum %.2f after %d lapses",
				state.EaseFactor, params.MinEaseFactor, i+1)
		}
		if state.Interval < 1 {
			t.Fatalf("Interval %d dropped below 1 after %d lapses", state.Interval, i+1)
		}
		if state.CorrectAnswers > state.TotalAnswers {
			t.Fatalf("Correct answers %d exceeds total %d", state.CorrectAnswers, state.TotalAnswers)
		}
	}
}

func TestPassNeverDecreasesEaseFactor(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	state := newState()
	state.Repetitions = 4
	state.Interval = 20
	state.EaseFactor = 2.1
	state.CorrectAnswers = 4
	state.TotalAnswers = 4

	result := calculateNextState(state, GradePass, testNow, params)

	if result.State.EaseFactor < state.EaseFactor {
		t.Errorf("Pass decreased ease factor from %.4f to %.4f",
			state.EaseFactor, result.State.EaseFactor)
	}
}

func TestMasteryPromotion(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	state := newState()
	state.Repetitions = 5
	state.Interval = 13
	state.EaseFactor = 2.5
	state.CorrectAnswers = 5
	state.TotalAnswers = 5

	result := calculateNextState(state, GradePass, testNow, params)

	// Sixth consecutive success with interval 13*2.5 = 33 days crosses both
	// promotion thresholds.
	if result.State.Repetitions != 6 {
		t.Errorf("Expected repetitions 6, got %d", result.State.Repetitions)
	}
	if result.State.Interval < params.PromotionInterval {
		t.Errorf("Expected interval >= %d, got %d", params.PromotionInterval, result.State.Interval)
	}
	if !result.Promoted {
		t.Error("Expected mastery promotion")
	}
}

func TestClassifyDifficulty(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		correct  int
		total    int
		quality  int
		expected domain.Difficulty
	}{
		{"seed from perfect first answer", 1, 1, 5, domain.DifficultyEasy},
		{"seed from partial first answer", 1, 1, 3, domain.DifficultyMedium},
		{"seed from failed first answer", 0, 1, 0, domain.DifficultyHard},
		{"high accuracy is easy", 4, 5, 5, domain.DifficultyEasy},
		{"middling accuracy is medium", 3, 5, 0, domain.DifficultyMedium},
		{"low accuracy is hard", 2, 5, 5, domain.DifficultyHard},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyDifficulty(tc.correct, tc.total, tc.quality, params)
			if got != tc.expected {
				t.Errorf("Expected difficulty %d, got %d", tc.expected, got)
			}
		})
	}
}

func almostEqual(a, b float64) bool {
	const epsilon = 1e-9
	diff := a - b
	return diff < epsilon && diff > -epsilon
}
