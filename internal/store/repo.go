package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int   // max results (0 = unlimited)
	After int64 // sequence > After
}

// PrefsRepo is a namespaced key-value store for user preferences.
type PrefsRepo interface {
	// Get returns the stored value and whether it exists.
	Get(ctx context.Context, namespace, key string) (string, bool, error)

	// Set inserts or overwrites a value.
	Set(ctx context.Context, namespace, key, value string) error

	// SetAll writes several keys of one namespace in a single transaction.
	SetAll(ctx context.Context, namespace string, values map[string]string) error

	// All returns every key of a namespace.
	All(ctx context.Context, namespace string) (map[string]string, error)

	// DeleteNamespace removes every key of a namespace.
	DeleteNamespace(ctx context.Context, namespace string) error
}

// RunEventData captures one execution of a learner snippet.
type RunEventData struct {
	Week     string
	Day      int
	Source   string
	Output   string
	Error    string
	Duration time.Duration
}

// RunEventRecord is a stored RunEventData.
type RunEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	RunID     string
	RunEventData
}

// Reminder event actions.
const (
	ReminderRegistered = "registered"
	ReminderCancelled  = "cancelled"
	ReminderFired      = "fired"
)

// ReminderEventData captures a change to, or a firing of, the daily reminder.
type ReminderEventData struct {
	Action     string
	CallbackID string
	TriggerAt  time.Time
	Message    string
	Error      string
}

// ReminderEventRecord is a stored ReminderEventData.
type ReminderEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	ReminderEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMEventRecord is a stored LLMRequestEventData.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendRun records a code run and returns its generated run ID.
	AppendRun(ctx context.Context, data RunEventData) (string, error)
	QueryRuns(ctx context.Context, opts QueryOpts) ([]RunEventRecord, error)

	AppendReminder(ctx context.Context, data ReminderEventData) error
	QueryReminders(ctx context.Context, opts QueryOpts) ([]ReminderEventRecord, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)
}
