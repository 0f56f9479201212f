package review

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rzaytsev/vocab-api/internal/catalog"
	"github.com/rzaytsev/vocab-api/internal/domain"
	"github.com/rzaytsev/vocab-api/internal/domain/srs"
)

// Requeue offsets for endless mode, relative to the answered position.
const (
	requeueAfterFail    = 3
	requeueAfterPartial = 6
)

// DefaultSessionCap bounds the endless queue when no cap is configured.
const DefaultSessionCap = 50

// WordSource is the slice of the learning service the engine needs.
type WordSource interface {
	Words() []*domain.LearningWord
	CustomEntries() []domain.WordEntry
	ApplyAnswer(ctx context.Context, wordID string, grade srs.Grade) (*domain.LearningWord, error)
}

// item is one queue entry. The same item can appear in the queue more than
// once in endless mode after a miss.
type item struct {
	wordID    string
	prompt    string
	answer    string
	level     domain.Level
	direction Direction
	options   []string
}

// Prompt is what the caller shows for the current item. The correct answer
// is withheld in quiz mode; flashcards reveal it client-side after rating.
type Prompt struct {
	WordID    string    `json:"wordId"`
	Prompt    string    `json:"prompt"`
	Answer    string    `json:"answer,omitempty"`
	Direction Direction `json:"direction"`
	Options   []string  `json:"options,omitempty"`
	Position  int       `json:"position"`
	Total     int       `json:"total"`
}

// AnswerResult reports the outcome of one answer.
type AnswerResult struct {
	Grade     srs.Grade `json:"grade"`
	Correct   string    `json:"correctAnswer"`
	Promoted  bool      `json:"promoted"`
	Requeued  bool      `json:"requeued"`
	Remaining int       `json:"remaining"`
}

// Progress summarizes the session for status queries.
type Progress struct {
	State        State        `json:"state"`
	StudyMode    StudyMode    `json:"studyMode,omitempty"`
	PracticeMode PracticeMode `json:"practiceMode,omitempty"`
	Processed    int          `json:"processed"`
	Remaining    int          `json:"remaining"`
	Total        int          `json:"total"`
}

type session struct {
	studyMode    StudyMode
	practiceMode PracticeMode
	queue        []*item
	cursor       int
	processed    int
}

// Engine drives one review session at a time. Building a new queue replaces
// any session in flight; nothing is lost because answers commit immediately.
type Engine struct {
	mu sync.Mutex

	source  WordSource
	catalog *catalog.Catalog
	srs     srs.Service
	options *OptionGenerator
	logger  *slog.Logger
	rng     *rand.Rand
	now     func() time.Time
	cap     int

	session *session
}

// EngineOption customizes an Engine.
type EngineOption func(*Engine)

// WithSessionCap overrides the endless-mode queue cap.
func WithSessionCap(cap int) EngineOption {
	return func(e *Engine) {
		if cap > 0 {
			e.cap = cap
		}
	}
}

// WithRand injects the random source, for deterministic tests.
func WithRand(rng *rand.Rand) EngineOption {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithEngineClock injects the time source.
func WithEngineClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates a review engine.
func NewEngine(source WordSource, cat *catalog.Catalog, srsService srs.Service, log *slog.Logger, opts ...EngineOption) *Engine {
	if source == nil {
		panic("source cannot be nil")
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

	e := &Engine{
		source:  source,
		catalog: cat,
		srs:     srsService,
		logger:  log.With(slog.String("component", "review_engine")),
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:     func() time.Time { return time.Now().UTC() },
		cap:     DefaultSessionCap,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.options = NewOptionGenerator(e.rng)
	return e
}

// Start builds a fresh queue and activates the session, replacing any
// session in progress.
func (e *Engine) Start(studyMode StudyMode, practiceMode PracticeMode) (Progress, error) {
	if !studyMode.Valid() || !practiceMode.Valid() {
		return Progress{}, fmt.Errorf("%w: study=%q practice=%q", ErrInvalidMode, studyMode, practiceMode)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	words := e.source.Words()
	queue := e.srs.DueWords(words, now)
	if practiceMode == PracticeEndless {
		queue = append(queue, e.srs.PracticeWords(words, now)...)
		if len(queue) > e.cap {
			queue = queue[:e.cap]
		}
	}
	if len(queue) == 0 {
		return Progress{}, ErrEmptyQueue
	}

	pool := e.catalog.AllWords(e.source.CustomEntries())
	items := make([]*item, 0, len(queue))
	for _, w := range queue {
		items = append(items, e.buildItem(w, studyMode, pool))
	}

	e.session = &session{
		studyMode:    studyMode,
		practiceMode: practiceMode,
		queue:        items,
	}

	e.logger.Info("review session started",
		slog.String("study_mode", string(studyMode)),
		slog.String("practice_mode", string(practiceMode)),
		slog.Int("queue_size", len(items)))
	return e.progressLocked(), nil
}

func (e *Engine) buildItem(w *domain.LearningWord, studyMode StudyMode, pool []domain.WordEntry) *item {
	direction := WordToTranslation
	if e.rng.IntN(2) == 1 {
		direction = TranslationToWord
	}

	it := &item{
		wordID:    w.ID,
		prompt:    w.Word,
		answer:    w.Translation,
		level:     w.Level,
		direction: direction,
	}
	if direction == TranslationToWord {
		it.prompt, it.answer = it.answer, it.prompt
	}
	if studyMode == StudyQuiz {
		it.options = e.options.Options(it.answer, it.level, direction, pool)
	}
	return it
}

// Current returns the prompt for the item under the cursor.
func (e *Engine) Current() (Prompt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	it, err := e.currentLocked()
	if err != nil {
		return Prompt{}, err
	}

	p := Prompt{
		WordID:    it.wordID,
		Prompt:    it.prompt,
		Direction: it.direction,
		Position:  e.session.cursor + 1,
		Total:     len(e.session.queue),
	}
	if e.session.studyMode == StudyQuiz {
		p.Options = append([]string(nil), it.options...)
	} else {
		p.Answer = it.answer
	}
	return p, nil
}

// AnswerGrade commits a self-rated flashcard answer for the current item.
func (e *Engine) AnswerGrade(ctx context.Context, grade srs.Grade) (AnswerResult, error) {
	if !grade.Valid() {
		return AnswerResult{}, fmt.Errorf("%w: %q", srs.ErrInvalidGrade, grade)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.currentLocked(); err != nil {
		return AnswerResult{}, err
	}
	if e.session.studyMode != StudyFlashcard {
		return AnswerResult{}, ErrGradeNotAccepted
	}
	return e.answerLocked(ctx, grade)
}

// AnswerOption commits a quiz answer for the current item, resolving the
// selected option to a pass or fail grade.
func (e *Engine) AnswerOption(ctx context.Context, option string) (AnswerResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	it, err := e.currentLocked()
	if err != nil {
		return AnswerResult{}, err
	}
	if e.session.studyMode != StudyQuiz {
		return AnswerResult{}, ErrOptionNotAccepted
	}

	grade := srs.GradeFail
	if option == it.answer {
		grade = srs.GradePass
	}
	return e.answerLocked(ctx, grade)
}

func (e *Engine) answerLocked(ctx context.Context, grade srs.Grade) (AnswerResult, error) {
	s := e.session
	it := s.queue[s.cursor]

	updated, err := e.source.ApplyAnswer(ctx, it.wordID, grade)
	if err != nil {
		return AnswerResult{}, fmt.Errorf("failed to commit answer: %w", err)
	}

	result := AnswerResult{
		Grade:    grade,
		Correct:  it.answer,
		Promoted: updated.IsLearned,
	}

	if s.practiceMode == PracticeEndless && grade != srs.GradePass {
		offset := requeueAfterPartial
		if grade == srs.GradeFail {
			offset = requeueAfterFail
		}
		pos := s.cursor + offset
		if pos > len(s.queue) {
			pos = len(s.queue)
		}
		s.queue = append(s.queue, nil)
		copy(s.queue[pos+1:], s.queue[pos:])
		s.queue[pos] = it
		result.Requeued = true
	}

	s.processed++
	s.cursor++
	result.Remaining = len(s.queue) - s.cursor

	e.logger.Debug("answer committed",
		slog.String("word_id", it.wordID),
		slog.String("grade", string(grade)),
		slog.Bool("requeued", result.Requeued),
		slog.Int("remaining", result.Remaining))
	return result, nil
}

// Skip advances past the current item without touching its schedule. Skipped
// items do not count as processed.
func (e *Engine) Skip() (Progress, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.currentLocked(); err != nil {
		return Progress{}, err
	}
	e.session.cursor++
	return e.progressLocked(), nil
}

// Abandon drops the session. Already-committed answers stand.
func (e *Engine) Abandon() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		e.logger.Info("review session abandoned",
			slog.Int("processed", e.session.processed))
	}
	e.session = nil
}

// Progress reports the session state.
func (e *Engine) Progress() Progress {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progressLocked()
}

func (e *Engine) progressLocked() Progress {
	s := e.session
	if s == nil {
		return Progress{State: StateIdle}
	}

	p := Progress{
		State:        StateActive,
		StudyMode:    s.studyMode,
		PracticeMode: s.practiceMode,
		Processed:    s.processed,
		Remaining:    len(s.queue) - s.cursor,
		Total:        len(s.queue),
	}
	if s.cursor >= len(s.queue) {
		p.State = StateComplete
		p.Remaining = 0
	}
	return p
}

func (e *Engine) currentLocked() (*item, error) {
	if e.session == nil {
		return nil, ErrNoSession
	}
	if e.session.cursor >= len(e.session.queue) {
		return nil, fmt.Errorf("%w: session already complete", ErrNoSession)
	}
	return e.session.queue[e.session.cursor], nil
}
