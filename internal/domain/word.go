package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// WordEntry is a single read-only word record from the level catalog.
// Entries are never mutated by the application; the catalog owns them.
type WordEntry struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
	Level       Level  `json:"level"`
	Category    string `json:"category,omitempty"`
}

// NormalizeWord lowercases and trims a word's text. The normalized form is
// the natural key used for uniqueness checks everywhere in the application.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// CustomWord is a word created by the user rather than taken from the
// catalog. Custom words live in their own collection; adding one to the
// learning set creates an independent LearningWord.
type CustomWord struct {
	ID          string    `json:"id"`
	Word        string    `json:"word"`
	Translation string    `json:"translation"`
	Level       Level     `json:"level"`
	DateAdded   time.Time `json:"dateAdded"`
	IsCustom    bool      `json:"isCustom"`
}

// NewCustomWord creates a custom word with a fresh ID and normalized text.
// Returns a validation error if the word or translation is empty or the
// level is unknown.
func NewCustomWord(word, translation string, level Level, now time.Time) (*CustomWord, error) {
	custom := &CustomWord{
		ID:          uuid.NewString(),
		Word:        NormalizeWord(word),
		Translation: strings.TrimSpace(translation),
		Level:       level,
		DateAdded:   now,
		IsCustom:    true,
	}

	if err := custom.Validate(); err != nil {
		return nil, err
	}

	return custom, nil
}

// Entry converts the custom word into a catalog-shaped entry so catalog
// queries can return custom and catalog words uniformly.
func (c *CustomWord) Entry() WordEntry {
	return WordEntry{
		Word:        c.Word,
		Translation: c.Translation,
		Level:       c.Level,
		Category:    "custom",
	}
}

// Validate checks the custom word's fields.
func (c *CustomWord) Validate() error {
	if c.ID == "" {
		return ErrEmptyID
	}
	if c.Word == "" {
		return ErrEmptyWord
	}
	if c.Translation == "" {
		return ErrEmptyTranslation
	}
	if !c.Level.Valid() {
		return ErrInvalidLevel
	}
	return nil
}
