package srs

import (
	"testing"
	"time"

	"github.com/rzaytsev/vocab-api/internal/domain"
)

func TestApplyRejectsInvalidGrade(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()

	_, err := svc.Apply(newState(), Grade("excellent"), testNow)
	if err != ErrInvalidGrade {
		t.Errorf("Expected ErrInvalidGrade, got %v", err)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()

	state := newState()
	before := state
	if _, err := svc.Apply(state, GradePass, testNow); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if state != before {
		t.Error("Apply mutated its input state")
	}
}

func TestDueWords(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	now := testNow

	makeWord := func(word string, next time.Time, difficulty domain.Difficulty, learned bool) *domain.LearningWord {
		lw, err := domain.NewLearningWord(word, "перевод", domain.LevelA1, now)
		if err != nil {
			t.Fatalf("NewLearningWord failed: %v", err)
		}
		lw.Repetition.NextReview = next
		lw.Repetition.Difficulty = difficulty
		if learned {
			lw.MarkLearned(now)
		}
		return lw
	}

	overdue := makeWord("overdue", now.AddDate(0, 0, -1), domain.DifficultyEasy, false)
	dueNow := makeWord("due", now, domain.DifficultyHard, false)
	future := makeWord("future", now.AddDate(0, 0, 1), domain.DifficultyHard, false)
	learned := makeWord("learned", now.AddDate(0, 0, -2), domain.DifficultyHard, true)

	due := svc.DueWords([]*domain.LearningWord{overdue, dueNow, future, learned}, now)

	if len(due) != 2 {
		t.Fatalf("Expected exactly 2 due words, got %d", len(due))
	}
	// Harder words surface first even when less overdue.
	if due[0].Word != "due" || due[1].Word != "overdue" {
		t.Errorf("Expected order [due overdue], got [%s %s]", due[0].Word, due[1].Word)
	}
}

func TestDueWordsTieBreaksByOverdue(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	now := testNow

	older, err := domain.NewLearningWord("older", "x", domain.LevelA1, now)
	if err != nil {
		t.Fatalf("NewLearningWord failed: %v", err)
	}
	older.Repetition.NextReview = now.AddDate(0, 0, -3)

	newer, err := domain.NewLearningWord("newer", "y", domain.LevelA1, now)
	if err != nil {
		t.Fatalf("NewLearningWord failed: %v", err)
	}
	newer.Repetition.NextReview = now.AddDate(0, 0, -1)

	due := svc.DueWords([]*domain.LearningWord{newer, older}, now)
	if len(due) != 2 || due[0].Word != "older" {
		t.Errorf("Expected the longest-overdue word first, got %+v", due)
	}
}

func TestPracticeWordsOrdersByDifficultyThenAccuracy(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	now := testNow
	future := now.AddDate(0, 0, 2)

	shaky, err := domain.NewLearningWord("shaky", "x", domain.LevelA1, now)
	if err != nil {
		t.Fatalf("NewLearningWord failed: %v", err)
	}
	shaky.Repetition.NextReview = future
	shaky.Repetition.Difficulty = domain.DifficultyMedium
	shaky.Repetition.CorrectAnswers = 1
	shaky.Repetition.TotalAnswers = 4

	solid, err := domain.NewLearningWord("solid", "y", domain.LevelA1, now)
	if err != nil {
		t.Fatalf("NewLearningWord failed: %v", err)
	}
	solid.Repetition.NextReview = future
	solid.Repetition.Difficulty = domain.DifficultyMedium
	solid.Repetition.CorrectAnswers = 3
	solid.Repetition.TotalAnswers = 4

	hard, err := domain.NewLearningWord("hard", "z", domain.LevelA1, now)
	if err != nil {
		t.Fatalf("NewLearningWord failed: %v", err)
	}
	hard.Repetition.NextReview = future
	hard.Repetition.Difficulty = domain.DifficultyHard

	words := svc.PracticeWords([]*domain.LearningWord{solid, shaky, hard}, now)

	if len(words) != 3 {
		t.Fatalf("Expected 3 practice words, got %d", len(words))
	}
	if words[0].Word != "hard" || words[1].Word != "shaky" || words[2].Word != "solid" {
		t.Errorf("Expected order [hard shaky solid], got [%s %s %s]",
			words[0].Word, words[1].Word, words[2].Word)
	}
}
