package progress

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pylearn/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	db, err := store.Open(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(filepath.Join(dir, "progress.json"), db.PrefsRepo(), nil)
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	s := newTestStore(t)
	assert.True(t, s.Load(context.Background()).Equal(Default()))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	r := Record{
		CurrentWeek:   "Week 3",
		CurrentDay:    4,
		CompletedDays: map[string]bool{"Week 1_1": true, "Week 1_2": false},
	}
	require.NoError(t, s.Save(ctx, r))

	got := s.Load(ctx)
	assert.True(t, got.Equal(r))
	v, ok := got.CompletedDays["Week 1_2"]
	assert.True(t, ok, "false entries survive a round trip")
	assert.False(t, v)
}

func TestSaveWritesExpectedJSON(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.Save(ctx, Toggle(Default(), "Week 1", 1)))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{"current_week":"Week 1","current_day":1,"completed_days":{"Week 1_1":true}}`, string(data))
}

func TestLoadCorruptFileReturnsDefault(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"garbage", "{not json"},
		{"empty", ""},
		{"wrong type", `{"current_day":"two"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			require.NoError(t, os.WriteFile(s.Path(), []byte(tt.data), 0o644))
			assert.True(t, s.Load(context.Background()).Equal(Default()))
		})
	}
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"current_week":"Week 2"}`), 0o644))

	got := s.Load(context.Background())
	assert.Equal(t, "Week 2", got.CurrentWeek)
	assert.Equal(t, 1, got.CurrentDay)
	assert.NotNil(t, got.CompletedDays)
}

func TestSaveFailureKeepsPreviousFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	// The parent "directory" is a regular file, so every write fails.
	s := NewStore(filepath.Join(blocker, "progress.json"), nil, nil)
	err := s.Save(ctx, Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save progress")
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	for day := 1; day <= 3; day++ {
		require.NoError(t, s.Save(ctx, Toggle(Default(), "Week 1", day)))
	}

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	settings := NotificationSettings{Enabled: false, Hour: 20, Minute: 15}
	require.NoError(t, s.SaveNotificationSettings(ctx, settings))
	require.NoError(t, s.Save(ctx, Record{CurrentWeek: "Week 4", CurrentDay: 2, CompletedDays: map[string]bool{"Week 1_1": true}}))

	r, err := s.Reset(ctx)
	require.NoError(t, err)
	assert.True(t, r.Equal(Default()))
	assert.True(t, s.Load(ctx).Equal(Default()))
	assert.Equal(t, settings, s.LoadNotificationSettings(ctx), "reset leaves settings alone")
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	var got []Record
	unsubscribe := s.Subscribe(func(r Record) { got = append(got, r) })

	r := Toggle(Default(), "Week 1", 1)
	require.NoError(t, s.Save(ctx, r))
	require.Len(t, got, 1)
	assert.True(t, got[0].Equal(r))

	unsubscribe()
	require.NoError(t, s.Save(ctx, Default()))
	assert.Len(t, got, 1)
}

func TestAsync(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	r := Toggle(Default(), "Week 1", 2)
	res := <-s.SaveAsync(ctx, r)
	require.NoError(t, res.Err)

	loaded := <-s.LoadAsync(ctx)
	assert.True(t, loaded.Record.Equal(r))
}

func TestConcurrentSavesAreSerialized(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	var (
		mu   sync.Mutex
		last Record
		seen int
	)
	s.Subscribe(func(r Record) {
		mu.Lock()
		last = r
		seen++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for day := 1; day <= 20; day++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Save(ctx, Record{CurrentWeek: "Week 1", CurrentDay: day, CompletedDays: map[string]bool{}}))
		}()
	}
	wg.Wait()

	got := s.Load(ctx)
	assert.Equal(t, "Week 1", got.CurrentWeek)
	assert.GreaterOrEqual(t, got.CurrentDay, 1)
	assert.LessOrEqual(t, got.CurrentDay, 20)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 20, seen)
	assert.True(t, last.Equal(got), "subscribers saw day %d, file has day %d", last.CurrentDay, got.CurrentDay)
}
