package domain

import "strings"

// Level is a CEFR proficiency level. Levels are ordered: A1 < A2 < B1 < B2 < C1 < C2.
type Level string

// Supported proficiency levels.
const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"
)

// Levels lists all supported levels in ascending proficiency order.
func Levels() []Level {
	return []Level{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}
}

// ParseLevel converts a string into a Level, accepting any letter case.
// Returns ErrInvalidLevel if the string is not a known level.
func ParseLevel(s string) (Level, error) {
	level := Level(strings.ToUpper(strings.TrimSpace(s)))
	if !level.Valid() {
		return "", ErrInvalidLevel
	}
	return level, nil
}

// Valid reports whether the level is one of the supported CEFR levels.
func (l Level) Valid() bool {
	switch l {
	case LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2:
		return true
	default:
		return false
	}
}

// Ordinal returns the position of the level in the proficiency order,
// starting at 0 for A1. Unknown levels sort last.
func (l Level) Ordinal() int {
	for i, level := range Levels() {
		if l == level {
			return i
		}
	}
	return len(Levels())
}
