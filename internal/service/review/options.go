package review

import (
	"math/rand/v2"

	"github.com/rzaytsev/vocab-api/internal/domain"
)

// maxQuizOptions bounds the option list; one slot is the correct answer.
const maxQuizOptions = 4

// OptionGenerator builds the multiple-choice option list for quiz items.
// Distractors prefer words of the same level as the prompt and fall back to
// the rest of the vocabulary when the level is too small.
type OptionGenerator struct {
	rng *rand.Rand
}

// NewOptionGenerator creates a generator backed by the given random source.
func NewOptionGenerator(rng *rand.Rand) *OptionGenerator {
	if rng == nil {
		panic("rng cannot be nil")
	}
	return &OptionGenerator{rng: rng}
}

// Options returns 2 to 4 shuffled options containing the correct answer
// exactly once. With a vocabulary too small to supply a single distractor it
// returns just the correct answer.
func (g *OptionGenerator) Options(correct string, level domain.Level, dir Direction, pool []domain.WordEntry) []string {
	seen := map[string]struct{}{correct: {}}

	var sameLevel, crossLevel []string
	for _, entry := range pool {
		candidate := entry.Translation
		if dir == TranslationToWord {
			candidate = entry.Word
		}
		if candidate == "" {
			continue
		}
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		if entry.Level == level {
			sameLevel = append(sameLevel, candidate)
		} else {
			crossLevel = append(crossLevel, candidate)
		}
	}

	g.shuffle(sameLevel)
	g.shuffle(crossLevel)

	options := []string{correct}
	for _, candidate := range append(sameLevel, crossLevel...) {
		if len(options) == maxQuizOptions {
			break
		}
		options = append(options, candidate)
	}

	g.shuffle(options)
	return options
}

func (g *OptionGenerator) shuffle(values []string) {
	g.rng.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
}
