package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rzaytsev/vocab-api/internal/catalog"
	"github.com/rzaytsev/vocab-api/internal/domain"
	"github.com/rzaytsev/vocab-api/internal/domain/srs"
	"github.com/rzaytsev/vocab-api/internal/store"
)

var serviceNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return catalog.New(map[domain.Level][]domain.WordEntry{
		domain.LevelA1: {
			{Word: "house", Translation: "дом"},
			{Word: "cat", Translation: "кот"},
		},
		domain.LevelB1: {
			{Word: "journey", Translation: "путешествие"},
		},
	}, nil)
}

func newTestService(t *testing.T, kv store.KV) *LearningService {
	t.Helper()
	svc, err := NewLearningService(
		context.Background(),
		kv,
		testCatalog(t),
		srs.NewDefaultService(),
		nil,
		WithClock(func() time.Time { return serviceNow }),
	)
	require.NoError(t, err)
	return svc
}

// faultyKV fails every write while reads behave like an empty store.
type faultyKV struct{}

func (faultyKV) Get(context.Context, string) ([]byte, error) { return nil, store.ErrKeyNotFound }
func (faultyKV) Set(context.Context, string, []byte) error   { return errors.New("disk full") }
func (faultyKV) Remove(context.Context, string) error        { return errors.New("disk full") }
func (faultyKV) Close() error                                { return nil }

func TestAddRejectsDuplicate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t, store.NewMemoryKV())

	first, err := svc.Add(ctx, "House", "дом", domain.LevelA1)
	require.NoError(t, err)
	assert.Equal(t, "house", first.Word)

	_, err = svc.Add(ctx, "  house ", "дом", domain.LevelA1)
	assert.ErrorIs(t, err, ErrWordAlreadyTracked)
	assert.Len(t, svc.Words(), 1)
}

func TestAddAllFromLevelSkipsTracked(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t, store.NewMemoryKV())

	_, err := svc.Add(ctx, "house", "дом", domain.LevelA1)
	require.NoError(t, err)

	added := svc.AddAllFromLevel(ctx, domain.LevelA1)
	assert.Equal(t, 1, added, "only the untracked word should be added")
	assert.Len(t, svc.Words(), 2)

	assert.Equal(t, 0, svc.AddAllFromLevel(ctx, domain.LevelA1))
}

func TestAddAllFromLevelIncludesCustomWords(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t, store.NewMemoryKV())

	_, err := svc.AddCustom(ctx, "serendipity", "удача", domain.LevelB1)
	require.NoError(t, err)

	added := svc.AddAllFromLevel(ctx, domain.LevelB1)
	assert.Equal(t, 2, added)
	assert.True(t, svc.IsLearning("serendipity"))
}

func TestRemoveIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t, store.NewMemoryKV())

	_, err := svc.Add(ctx, "house", "дом", domain.LevelA1)
	require.NoError(t, err)

	assert.True(t, svc.Remove(ctx, "house"))
	assert.False(t, svc.Remove(ctx, "house"))
	assert.Empty(t, svc.Words())
}

func TestRemoveLevel(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t, store.NewMemoryKV())

	svc.AddAllFromLevel(ctx, domain.LevelA1)
	svc.AddAllFromLevel(ctx, domain.LevelB1)

	removed := svc.RemoveLevel(ctx, domain.LevelA1)
	assert.Equal(t, 2, removed)

	remaining := svc.Words()
	require.Len(t, remaining, 1)
	assert.Equal(t, domain.LevelB1, remaining[0].Level)
}

func TestApplyAnswerUpdatesSchedule(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t, store.NewMemoryKV())

	w, err := svc.Add(ctx, "house", "дом", domain.LevelA1)
	require.NoError(t, err)

	updated, err := svc.ApplyAnswer(ctx, w.ID, srs.GradePass)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Repetition.Repetitions)
	assert.Equal(t, 1, updated.Repetition.CorrectAnswers)
	assert.InDelta(t, 2.6, updated.Repetition.EaseFactor, 1e-9)
	assert.Equal(t, serviceNow.AddDate(0, 0, 1), updated.Repetition.NextReview)
}

func TestApplyAnswerUnknownID(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, store.NewMemoryKV())

	_, err := svc.ApplyAnswer(context.Background(), "no-such-id", srs.GradePass)
	assert.ErrorIs(t, err, ErrWordNotFound)
}

func TestApplyAnswerPromotesToLearned(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t, store.NewMemoryKV())

	w, err := svc.Add(ctx, "house", "дом", domain.LevelA1)
	require.NoError(t, err)
	w.Repetition.Repetitions = 5
	w.Repetition.Interval = 13
	w.Repetition.EaseFactor = 2.5
	w.Repetition.CorrectAnswers = 5
	w.Repetition.TotalAnswers = 5

	updated, err := svc.ApplyAnswer(ctx, w.ID, srs.GradePass)
	require.NoError(t, err)
	assert.True(t, updated.IsLearned)
	require.NotNil(t, updated.DateLearned)
	assert.Equal(t, serviceNow, *updated.DateLearned)
}

func TestDueForReviewExcludesLearned(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t, store.NewMemoryKV())

	svc.AddAllFromLevel(ctx, domain.LevelA1)
	require.True(t, svc.MarkLearned(ctx, "cat"))

	due := svc.DueForReview()
	require.Len(t, due, 1)
	assert.Equal(t, "house", due[0].Word)
}

func TestAddCustomRejectsCatalogCollision(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t, store.NewMemoryKV())

	_, err := svc.AddCustom(ctx, "House", "дом", domain.LevelA1)
	assert.ErrorIs(t, err, ErrWordExists)

	custom, err := svc.AddCustom(ctx, "Serendipity", "удача", domain.LevelC1)
	require.NoError(t, err)
	assert.Equal(t, "serendipity", custom.Word)
	assert.True(t, custom.IsCustom)

	_, err = svc.AddCustom(ctx, "serendipity", "удача", domain.LevelC1)
	assert.ErrorIs(t, err, ErrWordExists)
}

func TestPersistenceRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := store.NewMemoryKV()

	svc := newTestService(t, kv)
	_, err := svc.Add(ctx, "house", "дом", domain.LevelA1)
	require.NoError(t, err)
	_, err = svc.AddCustom(ctx, "serendipity", "удача", domain.LevelC1)
	require.NoError(t, err)

	reloaded := newTestService(t, kv)
	assert.Len(t, reloaded.Words(), 1)
	assert.Len(t, reloaded.CustomWords(), 1)
	assert.True(t, reloaded.IsLearning("house"))
}

func TestMutationsSurviveStorageFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t, faultyKV{})

	w, err := svc.Add(ctx, "house", "дом", domain.LevelA1)
	require.NoError(t, err)
	assert.True(t, svc.IsLearning("house"))

	_, err = svc.ApplyAnswer(ctx, w.ID, srs.GradePass)
	require.NoError(t, err)
}

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	source := newTestService(t, store.NewMemoryKV())
	_, err := source.Add(ctx, "house", "дом", domain.LevelA1)
	require.NoError(t, err)
	_, err = source.AddCustom(ctx, "serendipity", "удача", domain.LevelC1)
	require.NoError(t, err)

	snapshot := source.Export()
	assert.Equal(t, snapshotVersion, snapshot.Version)
	assert.Equal(t, serviceNow, snapshot.ExportDate)

	target := newTestService(t, store.NewMemoryKV())
	_, err = target.Add(ctx, "house", "другой дом", domain.LevelA1)
	require.NoError(t, err)

	report, err := target.Import(ctx, snapshot)
	require.NoError(t, err)
	assert.Equal(t, 0, report.LearningAdded, "existing word keeps local state")
	assert.Equal(t, 1, report.CustomAdded)

	words := target.Words()
	require.Len(t, words, 1)
	assert.Equal(t, "другой дом", words[0].Translation)
}

func TestImportRejectsMalformedSnapshot(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, store.NewMemoryKV())

	_, err := svc.Import(context.Background(), Snapshot{CustomWords: []*domain.CustomWord{}})
	assert.ErrorIs(t, err, ErrMalformedImport)

	_, err = svc.Import(context.Background(), Snapshot{LearningWords: []*domain.LearningWord{}})
	assert.ErrorIs(t, err, ErrMalformedImport)
}

func TestStatistics(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t, store.NewMemoryKV())

	svc.AddAllFromLevel(ctx, domain.LevelA1)
	_, err := svc.AddCustom(ctx, "serendipity", "удача", domain.LevelC1)
	require.NoError(t, err)
	require.True(t, svc.MarkLearned(ctx, "cat"))

	stats := svc.Statistics()
	assert.Equal(t, 2, stats.TotalLearning)
	assert.Equal(t, 1, stats.TotalLearned)
	assert.Equal(t, 1, stats.CustomWordsCount)
	assert.Equal(t, 1, stats.WordsCompletedToday)
	assert.Equal(t, serviceNow, stats.LastActivity)
}

func TestClearAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := store.NewMemoryKV()
	svc := newTestService(t, kv)

	svc.AddAllFromLevel(ctx, domain.LevelA1)
	svc.ClearAll(ctx)

	assert.Empty(t, svc.Words())
	assert.Empty(t, svc.CustomWords())
	_, err := kv.Get(ctx, store.KeyLearningWords)
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestThemePreference(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	prefs := NewPreferencesService(store.NewMemoryKV(), nil)

	assert.Equal(t, DefaultTheme, prefs.Theme(ctx))

	require.NoError(t, prefs.SetTheme(ctx, "dark"))
	assert.Equal(t, "dark", prefs.Theme(ctx))

	err := prefs.SetTheme(ctx, "solarized")
	assert.ErrorIs(t, err, ErrInvalidTheme)
	assert.Equal(t, "dark", prefs.Theme(ctx))
}
