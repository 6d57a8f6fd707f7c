package runner

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/pylearn/internal/logging"
	"github.com/abhisek/pylearn/internal/store"
)

// FinishedMessage replaces empty output.
const FinishedMessage = "Program finished"

var (
	// ErrBusy is returned while another run is in flight.
	ErrBusy = errors.New("a program is already running")

	// ErrEmptySource is returned for blank code.
	ErrEmptySource = errors.New("enter some code first")
)

// Request is one snippet to run. Week and Day tag the run for history.
type Request struct {
	Source string
	Week   string
	Day    int
}

// Result is the outcome of a run.
type Result struct {
	RunID    string
	Output   string
	Err      error
	Duration time.Duration
}

// Display is the text for the output pane: the output, FinishedMessage
// for a silent success, or an error line.
func (r Result) Display() string {
	if r.Err != nil {
		var ee *ExecError
		if errors.As(r.Err, &ee) && strings.TrimSpace(ee.Output) != "" {
			return ee.Output
		}
		return "Error: " + r.Err.Error()
	}
	if strings.TrimSpace(r.Output) == "" {
		return FinishedMessage
	}
	return r.Output
}

// Session runs one snippet at a time in the background and records each
// run.
type Session struct {
	runner Runner
	events store.EventRepo
	logger *zap.Logger

	busy atomic.Bool
}

// NewSession wraps r. events may be nil.
func NewSession(r Runner, events store.EventRepo, logger *zap.Logger) *Session {
	return &Session{
		runner: r,
		events: events,
		logger: logging.OrNop(logger).Named("runner"),
	}
}

// Busy reports whether a run is in flight.
func (s *Session) Busy() bool {
	return s.busy.Load()
}

// Submit starts req on a worker goroutine. The channel receives exactly
// one Result. In-flight runs cannot be cancelled except through ctx.
func (s *Session) Submit(ctx context.Context, req Request) (<-chan Result, error) {
	if strings.TrimSpace(req.Source) == "" {
		return nil, ErrEmptySource
	}
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}

	ch := make(chan Result, 1)
	go func() {
		defer s.busy.Store(false)
		ch <- s.run(ctx, req)
	}()
	return ch, nil
}

// Run is the synchronous form of Submit.
func (s *Session) Run(ctx context.Context, req Request) (Result, error) {
	ch, err := s.Submit(ctx, req)
	if err != nil {
		return Result{}, err
	}
	return <-ch, nil
}

func (s *Session) run(ctx context.Context, req Request) Result {
	start := time.Now()
	out, err := s.runner.Run(ctx, req.Source)
	res := Result{Output: out, Err: err, Duration: time.Since(start)}

	fields := []zap.Field{
		zap.String("week", req.Week),
		zap.Int("day", req.Day),
		zap.Duration("duration", res.Duration),
	}
	if err != nil {
		s.logger.Info("run failed", append(fields, zap.Error(err))...)
	} else {
		s.logger.Debug("run finished", fields...)
	}

	if s.events != nil {
		data := store.RunEventData{
			Week:     req.Week,
			Day:      req.Day,
			Source:   req.Source,
			Output:   out,
			Duration: res.Duration,
		}
		if err != nil {
			data.Error = err.Error()
		}
		id, rerr := s.events.AppendRun(context.WithoutCancel(ctx), data)
		if rerr != nil {
			s.logger.Warn("record run", zap.Error(rerr))
		}
		res.RunID = id
	}
	return res
}
