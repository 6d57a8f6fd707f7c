package progress

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/pylearn/internal/logging"
	"github.com/abhisek/pylearn/internal/store"
)

// Store persists the progress record as a JSON file and the notification
// settings in the preferences table. The two never share storage, so a
// progress reset leaves the settings alone.
type Store struct {
	path   string
	prefs  store.PrefsRepo
	logger *zap.Logger

	// writeMu serializes writers of the progress file.
	writeMu sync.Mutex

	subMu   sync.Mutex
	subs    map[int]func(Record)
	nextSub int
}

// NewStore creates a Store writing the record to path. prefs may be nil,
// in which case notification settings always load as defaults and fail
// to save.
func NewStore(path string, prefs store.PrefsRepo, logger *zap.Logger) *Store {
	return &Store{
		path:   path,
		prefs:  prefs,
		logger: logging.OrNop(logger).Named("progress"),
		subs:   make(map[int]func(Record)),
	}
}

// Path returns the progress file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted record. A missing or unreadable file yields
// Default; the failure is logged, never returned.
func (s *Store) Load(ctx context.Context) Record {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("read progress, using defaults", zap.Error(err))
		}
		return Default()
	}
	r, err := decodeRecord(data)
	if err != nil {
		s.logger.Warn("corrupt progress file, using defaults", zap.String("path", s.path), zap.Error(err))
		return Default()
	}
	return r
}

// Save atomically replaces the persisted record and notifies subscribers.
// On failure the previous file is left intact and the error is logged and
// returned so the caller can report it; there is no retry.
func (s *Store) Save(ctx context.Context, r Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeRecord(r)
	if err != nil {
		s.logger.Error("encode progress", zap.Error(err))
		return fmt.Errorf("encode progress: %w", err)
	}

	// Subscribers are notified before the next writer can rename, so they
	// see records in the order they landed on disk.
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := writeFileAtomic(s.path, data); err != nil {
		s.logger.Error("save progress", zap.String("path", s.path), zap.Error(err))
		return fmt.Errorf("save progress: %w", err)
	}

	s.logger.Debug("progress saved",
		zap.String("week", r.CurrentWeek),
		zap.Int("day", r.CurrentDay),
		zap.Int("completed_keys", len(r.CompletedDays)))
	s.publish(r)
	return nil
}

// Reset persists and returns Default. Completion history is discarded.
// The returned record is Default even when persisting fails.
func (s *Store) Reset(ctx context.Context) (Record, error) {
	r := Default()
	if err := s.Save(ctx, r); err != nil {
		return r, err
	}
	s.logger.Info("progress reset")
	return r, nil
}

// Result carries the outcome of an asynchronous store operation.
type Result struct {
	Record Record
	Err    error
}

// LoadAsync runs Load on a worker goroutine.
func (s *Store) LoadAsync(ctx context.Context) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		ch <- Result{Record: s.Load(ctx)}
	}()
	return ch
}

// SaveAsync runs Save on a worker goroutine. Concurrent calls are
// serialized by the store.
func (s *Store) SaveAsync(ctx context.Context, r Record) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		ch <- Result{Record: r, Err: s.Save(ctx, r)}
	}()
	return ch
}

// Subscribe registers fn to receive the record after every successful
// save. fn runs while the save is still in progress and must not call
// Save. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Record)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) publish(r Record) {
	s.subMu.Lock()
	fns := make([]func(Record), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(r.Clone())
	}
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over path, so readers see either the old or the new file.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write temp: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
