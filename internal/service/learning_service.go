package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rzaytsev/vocab-api/internal/catalog"
	"github.com/rzaytsev/vocab-api/internal/domain"
	"github.com/rzaytsev/vocab-api/internal/domain/srs"
	"github.com/rzaytsev/vocab-api/internal/platform/logger"
	"github.com/rzaytsev/vocab-api/internal/store"
)

// snapshotVersion tags exported snapshots; import accepts any version whose
// collections parse.
const snapshotVersion = "1.0"

// Statistics is the aggregate snapshot recomputed on every save.
type Statistics struct {
	TotalLearned        int       `json:"totalLearned"`
	TotalLearning       int       `json:"totalLearning"`
	CustomWordsCount    int       `json:"customWordsCount"`
	LastActivity        time.Time `json:"lastActivity"`
	WordsCompletedToday int       `json:"wordsCompletedToday"`
}

// Snapshot is the export/import payload: a human-inspectable copy of both
// word collections.
type Snapshot struct {
	LearningWords []*domain.LearningWord `json:"learningWords"`
	CustomWords   []*domain.CustomWord   `json:"customWords"`
	ExportDate    time.Time              `json:"exportDate"`
	Version       string                 `json:"version"`
}

// ImportReport counts the entries an import actually merged.
type ImportReport struct {
	LearningAdded int `json:"learningAdded"`
	CustomAdded   int `json:"customAdded"`
}

// LearningService owns the user's learning set and custom word collection.
// All state lives in memory and is written through to the storage
// collaborator on every mutation; a failed write is logged and the
// in-memory effect stands (durability is best-effort, not transactional).
type LearningService struct {
	mu sync.Mutex

	kv       store.KV
	catalog  *catalog.Catalog
	srs      srs.Service
	logger   *slog.Logger
	now      func() time.Time
	learning []*domain.LearningWord
	custom   []*domain.CustomWord
}

// LearningServiceOption customizes a LearningService.
type LearningServiceOption func(*LearningService)

// WithClock injects the time source, primarily for deterministic tests.
func WithClock(now func() time.Time) LearningServiceOption {
	return func(s *LearningService) {
		s.now = now
	}
}

// NewLearningService creates the learning service and loads both collections
// from the store. Absent keys mean a first run and yield empty collections.
func NewLearningService(
	ctx context.Context,
	kv store.KV,
	cat *catalog.Catalog,
	srsService srs.Service,
	log *slog.Logger,
	opts ...LearningServiceOption,
) (*LearningService, error) {
	if kv == nil {
		panic("kv cannot be nil")
	}
	if cat == nil {
		panic("catalog cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	s := &LearningService{
		kv:      kv,
		catalog: cat,
		srs:     srsService,
		logger:  log.With(slog.String("component", "learning_service")),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// load reads both collections from the store.
func (s *LearningService) load(ctx context.Context) error {
	if err := loadCollection(ctx, s.kv, store.KeyLearningWords, &s.learning); err != nil {
		return fmt.Errorf("failed to load learning words: %w", err)
	}
	if err := loadCollection(ctx, s.kv, store.KeyCustomWords, &s.custom); err != nil {
		return fmt.Errorf("failed to load custom words: %w", err)
	}

	s.logger.Info("learning collections loaded",
		slog.Int("learning_words", len(s.learning)),
		slog.Int("custom_words", len(s.custom)))
	return nil
}

func loadCollection[T any](ctx context.Context, kv store.KV, key string, dest *[]T) error {
	data, err := kv.Get(ctx, key)
	if errors.Is(err, store.ErrKeyNotFound) {
		*dest = nil
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// persistLocked writes both collections and the recomputed statistics
// snapshot. Failures are logged as warnings and never propagated: the
// in-memory state stays authoritative and the next mutation retries.
// Callers must hold s.mu.
func (s *LearningService) persistLocked(ctx context.Context) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	writes := []struct {
		key   string
		value interface{}
	}{
		{store.KeyLearningWords, s.learning},
		{store.KeyCustomWords, s.custom},
		{store.KeyStatistics, s.statisticsLocked()},
	}

	for _, w := range writes {
		data, err := json.Marshal(w.value)
		if err != nil {
			log.Warn("failed to encode collection for persistence",
				slog.String("key", w.key),
				slog.String("error", err.Error()))
			continue
		}
		if err := s.kv.Set(ctx, w.key, data); err != nil {
			log.Warn("failed to persist collection, in-memory state stays authoritative",
				slog.String("key", w.key),
				slog.String("error", err.Error()))
		}
	}
}

func (s *LearningService) statisticsLocked() Statistics {
	now := s.now()
	stats := Statistics{
		TotalLearning:    len(s.learning),
		CustomWordsCount: len(s.custom),
		LastActivity:     now,
	}

	todayYear, todayMonth, todayDay := now.Date()
	for _, w := range s.learning {
		if !w.IsLearned {
			continue
		}
		stats.TotalLearned++
		if w.DateLearned != nil {
			y, m, d := w.DateLearned.Date()
			if y == todayYear && m == todayMonth && d == todayDay {
				stats.WordsCompletedToday++
			}
		}
	}
	return stats
}

// Statistics returns the current aggregate snapshot.
func (s *LearningService) Statistics() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statisticsLocked()
}

// Add puts a word into the learning set with a fresh default repetition
// state. Returns ErrWordAlreadyTracked if the word is already being learned.
func (s *LearningService) Add(ctx context.Context, word, translation string, level domain.Level) (*domain.LearningWord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.NormalizeWord(word)
	if s.findLearningLocked(key) != nil {
		return nil, ErrWordAlreadyTracked
	}

	lw, err := domain.NewLearningWord(word, translation, level, s.now())
	if err != nil {
		return nil, err
	}

	s.learning = append(s.learning, lw)
	s.persistLocked(ctx)

	s.logger.Debug("word added to learning set",
		slog.String("word", lw.Word),
		slog.String("level", string(lw.Level)))
	return lw, nil
}

// AddAllFromLevel adds every catalog and custom word of a level that is not
// already tracked. Returns the number of words actually added.
func (s *LearningService) AddAllFromLevel(ctx context.Context, level domain.Level) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, entry := range s.catalog.WordsForLevel(level, s.customEntriesLocked()) {
		if s.findLearningLocked(entry.Word) != nil {
			continue
		}
		lw, err := domain.NewLearningWord(entry.Word, entry.Translation, level, s.now())
		if err != nil {
			s.logger.Warn("skipping invalid catalog entry",
				slog.String("word", entry.Word),
				slog.String("error", err.Error()))
			continue
		}
		s.learning = append(s.learning, lw)
		added++
	}

	if added > 0 {
		s.persistLocked(ctx)
	}
	s.logger.Debug("bulk add from level finished",
		slog.String("level", string(level)),
		slog.Int("added", added))
	return added
}

// Remove deletes a word from the learning set by its natural key.
// Removing an absent word is an informational no-op; the return value
// reports whether anything was deleted.
func (s *LearningService) Remove(ctx context.Context, word string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.NormalizeWord(word)
	for i, w := range s.learning {
		if w.Word == key {
			s.learning = append(s.learning[:i], s.learning[i+1:]...)
			s.persistLocked(ctx)
			return true
		}
	}

	s.logger.Info("remove requested for word not in learning set", slog.String("word", key))
	return false
}

// RemoveLevel drops every learning word of a level. Returns the count removed.
func (s *LearningService) RemoveLevel(ctx context.Context, level domain.Level) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.learning[:0]
	removed := 0
	for _, w := range s.learning {
		if w.Level == level {
			removed++
			continue
		}
		kept = append(kept, w)
	}
	s.learning = kept

	if removed > 0 {
		s.persistLocked(ctx)
	}
	return removed
}

// MarkLearned flags a word as mastered. A no-op (reported false) if the word
// is not tracked.
func (s *LearningService) MarkLearned(ctx context.Context, word string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.findLearningLocked(domain.NormalizeWord(word))
	if w == nil {
		s.logger.Info("mark-learned requested for word not in learning set",
			slog.String("word", domain.NormalizeWord(word)))
		return false
	}

	w.MarkLearned(s.now())
	s.persistLocked(ctx)
	return true
}

// SetImageURL attaches an illustration URL to a learning word.
func (s *LearningService) SetImageURL(ctx context.Context, word, url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.findLearningLocked(domain.NormalizeWord(word))
	if w == nil {
		return false
	}
	w.ImageURL = url
	s.persistLocked(ctx)
	return true
}

// ApplyAnswer runs the scheduler for one answer, persists the updated
// repetition state, and applies the mastery promotion when the scheduler
// signals it. Returns the updated word.
func (s *LearningService) ApplyAnswer(ctx context.Context, wordID string, grade srs.Grade) (*domain.LearningWord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var w *domain.LearningWord
	for _, candidate := range s.learning {
		if candidate.ID == wordID {
			w = candidate
			break
		}
	}
	if w == nil {
		return nil, ErrWordNotFound
	}

	now := s.now()
	result, err := s.srs.Apply(w.Repetition, grade, now)
	if err != nil {
		return nil, fmt.Errorf("failed to compute next repetition state: %w", err)
	}

	w.Repetition = result.State
	if result.Promoted && !w.IsLearned {
		w.MarkLearned(now)
		s.logger.Info("word promoted to learned",
			slog.String("word", w.Word),
			slog.Int("interval_days", w.Repetition.Interval))
	}

	s.persistLocked(ctx)
	return w, nil
}

// Words returns the learning collection in insertion order.
func (s *LearningService) Words() []*domain.LearningWord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.LearningWord(nil), s.learning...)
}

// ByLevel returns the learning words of one level, insertion order.
func (s *LearningService) ByLevel(level domain.Level) []*domain.LearningWord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var words []*domain.LearningWord
	for _, w := range s.learning {
		if w.Level == level {
			words = append(words, w)
		}
	}
	return words
}

// DueForReview returns the unlearned words due now, hardest first.
func (s *LearningService) DueForReview() []*domain.LearningWord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.srs.DueWords(append([]*domain.LearningWord(nil), s.learning...), s.now())
}

// IsLearning reports whether a word is in the learning set.
func (s *LearningService) IsLearning(word string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLearningLocked(domain.NormalizeWord(word)) != nil
}

// AddCustom creates a user-defined word. The word must not already exist in
// the catalog or the custom collection.
func (s *LearningService) AddCustom(ctx context.Context, word, translation string, level domain.Level) (*domain.CustomWord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.NormalizeWord(word)
	if s.catalog.Exists(key) || s.findCustomLocked(key) != nil {
		return nil, ErrWordExists
	}

	custom, err := domain.NewCustomWord(word, translation, level, s.now())
	if err != nil {
		return nil, err
	}

	s.custom = append(s.custom, custom)
	s.persistLocked(ctx)

	s.logger.Debug("custom word added",
		slog.String("word", custom.Word),
		slog.String("level", string(custom.Level)))
	return custom, nil
}

// RemoveCustom deletes a custom word by ID. Idempotent.
func (s *LearningService) RemoveCustom(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.custom {
		if c.ID == id {
			s.custom = append(s.custom[:i], s.custom[i+1:]...)
			s.persistLocked(ctx)
			return true
		}
	}
	return false
}

// CustomWords returns the custom collection in insertion order.
func (s *LearningService) CustomWords() []*domain.CustomWord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.CustomWord(nil), s.custom...)
}

// CustomEntries returns the custom words as catalog-shaped entries, for
// composing catalog queries.
func (s *LearningService) CustomEntries() []domain.WordEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customEntriesLocked()
}

func (s *LearningService) customEntriesLocked() []domain.WordEntry {
	entries := make([]domain.WordEntry, 0, len(s.custom))
	for _, c := range s.custom {
		entries = append(entries, c.Entry())
	}
	return entries
}

// Export produces a snapshot of both collections.
func (s *LearningService) Export() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		LearningWords: append([]*domain.LearningWord(nil), s.learning...),
		CustomWords:   append([]*domain.CustomWord(nil), s.custom...),
		ExportDate:    s.now(),
		Version:       snapshotVersion,
	}
}

// Import merges a snapshot into the current collections by natural key,
// skipping words that already exist in the respective collection. A payload
// missing either collection is rejected wholesale with ErrMalformedImport.
func (s *LearningService) Import(ctx context.Context, snapshot Snapshot) (ImportReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snapshot.LearningWords == nil || snapshot.CustomWords == nil {
		return ImportReport{}, ErrMalformedImport
	}

	var report ImportReport
	for _, w := range snapshot.LearningWords {
		if w == nil {
			continue
		}
		w.Word = domain.NormalizeWord(w.Word)
		if err := w.Validate(); err != nil {
			s.logger.Warn("skipping invalid imported learning word",
				slog.String("word", w.Word),
				slog.String("error", err.Error()))
			continue
		}
		if s.findLearningLocked(w.Word) != nil {
			continue
		}
		s.learning = append(s.learning, w)
		report.LearningAdded++
	}

	for _, c := range snapshot.CustomWords {
		if c == nil {
			continue
		}
		c.Word = domain.NormalizeWord(c.Word)
		if err := c.Validate(); err != nil {
			s.logger.Warn("skipping invalid imported custom word",
				slog.String("word", c.Word),
				slog.String("error", err.Error()))
			continue
		}
		if s.findCustomLocked(c.Word) != nil {
			continue
		}
		s.custom = append(s.custom, c)
		report.CustomAdded++
	}

	if report.LearningAdded > 0 || report.CustomAdded > 0 {
		s.persistLocked(ctx)
	}

	s.logger.Info("import finished",
		slog.Int("learning_added", report.LearningAdded),
		slog.Int("custom_added", report.CustomAdded))
	return report, nil
}

// ClearAll wipes both collections and every persisted key.
func (s *LearningService) ClearAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.learning = nil
	s.custom = nil

	log := logger.FromContextOrDefault(ctx, s.logger)
	for _, key := range store.Keys() {
		if err := s.kv.Remove(ctx, key); err != nil {
			log.Warn("failed to remove persisted key",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
	}
	log.Info("all data cleared")
}

func (s *LearningService) findLearningLocked(key string) *domain.LearningWord {
	for _, w := range s.learning {
		if w.Word == key {
			return w
		}
	}
	return nil
}

func (s *LearningService) findCustomLocked(key string) *domain.CustomWord {
	for _, c := range s.custom {
		if c.Word == key {
			return c
		}
	}
	return nil
}
