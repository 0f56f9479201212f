// Package catalog provides a read-only view over the external level→words
// database. The database is a JSON file shipped with the application (the
// Go rendition of the original's bundled word list); a missing or empty file
// degrades to an empty catalog so the application keeps working with custom
// words only.
package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/rzaytsev/vocab-api/internal/domain"
)

// Catalog answers "words in level L" queries over the static database plus
// whatever custom words the caller passes in. It never mutates its entries.
type Catalog struct {
	levels map[domain.Level][]domain.WordEntry
	index  map[string]struct{} // normalized word → present
	logger *slog.Logger
}

// New creates a catalog from an in-memory level→entries mapping. Entries
// keep the order given; their Level field is forced to the mapping key and
// words are normalized for lookups.
func New(levels map[domain.Level][]domain.WordEntry, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Catalog{
		levels: make(map[domain.Level][]domain.WordEntry, len(levels)),
		index:  make(map[string]struct{}),
		logger: logger.With(slog.String("component", "catalog")),
	}

	for level, entries := range levels {
		if !level.Valid() {
			c.logger.Warn("skipping unknown catalog level", slog.String("level", string(level)))
			continue
		}
		kept := make([]domain.WordEntry, 0, len(entries))
		for _, entry := range entries {
			word := domain.NormalizeWord(entry.Word)
			if word == "" {
				continue
			}
			entry.Word = word
			entry.Level = level
			kept = append(kept, entry)
			c.index[word] = struct{}{}
		}
		c.levels[level] = kept
	}

	if len(c.index) == 0 {
		c.logger.Warn("word catalog is empty, running in custom-word-only mode")
	}

	return c
}

// Load reads the catalog from a JSON file shaped as {"A1": [entry, ...], ...}.
// An empty path or a missing file yields an empty catalog with a warning,
// never an error; a present-but-malformed file is reported.
func Load(path string, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if path == "" {
		return New(nil, logger), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("word catalog file not found, running in custom-word-only mode",
				slog.String("path", path))
			return New(nil, logger), nil
		}
		return nil, fmt.Errorf("failed to read catalog file %q: %w", path, err)
	}

	var levels map[domain.Level][]domain.WordEntry
	if err := json.Unmarshal(data, &levels); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %q: %w", path, err)
	}

	return New(levels, logger), nil
}

// WordsForLevel returns the catalog entries for a level followed by the
// given custom entries of that level, in stable order.
func (c *Catalog) WordsForLevel(level domain.Level, custom []domain.WordEntry) []domain.WordEntry {
	words := make([]domain.WordEntry, 0, len(c.levels[level])+len(custom))
	words = append(words, c.levels[level]...)
	for _, entry := range custom {
		if entry.Level == level {
			words = append(words, entry)
		}
	}
	return words
}

// AllWords returns every catalog entry flattened in ascending level order,
// followed by all custom entries.
func (c *Catalog) AllWords(custom []domain.WordEntry) []domain.WordEntry {
	var words []domain.WordEntry
	for _, level := range domain.Levels() {
		words = append(words, c.levels[level]...)
	}
	return append(words, custom...)
}

// Exists reports whether the word (case-normalized) is present in the
// static catalog.
func (c *Catalog) Exists(word string) bool {
	_, ok := c.index[domain.NormalizeWord(word)]
	return ok
}

// Empty reports whether the static catalog holds no words at all.
func (c *Catalog) Empty() bool {
	return len(c.index) == 0
}

// CountForLevel returns the number of static catalog entries in a level.
func (c *Catalog) CountForLevel(level domain.Level) int {
	return len(c.levels[level])
}
