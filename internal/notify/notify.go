// Package notify delivers user-visible notifications.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/pylearn/internal/logging"
)

// DefaultChannel is the channel daily reminders are posted on.
const DefaultChannel = "python_learn_channel"

// Notifier posts a notification with a title and body on a channel.
// Implementations must be safe for concurrent use.
type Notifier interface {
	Notify(ctx context.Context, channelID, title, body string) error
}

// Notification is one delivered notification.
type Notification struct {
	ChannelID string
	Title     string
	Body      string
}

// LogNotifier prints notifications to a writer and the log.
type LogNotifier struct {
	mu     sync.Mutex
	w      io.Writer
	logger *zap.Logger
}

// NewLogNotifier creates a LogNotifier. w may be nil to only log.
func NewLogNotifier(w io.Writer, logger *zap.Logger) *LogNotifier {
	return &LogNotifier{w: w, logger: logging.OrNop(logger).Named("notify")}
}

func (n *LogNotifier) Notify(_ context.Context, channelID, title, body string) error {
	n.logger.Info("notification",
		zap.String("channel", channelID),
		zap.String("title", title),
		zap.String("body", body))
	if n.w == nil {
		return nil
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, err := fmt.Fprintf(n.w, "🔔 %s\n   %s\n", title, body); err != nil {
		return fmt.Errorf("write notification: %w", err)
	}
	return nil
}

// ChannelNotifier delivers notifications on a Go channel. Notify blocks
// until the notification is received or ctx is done.
type ChannelNotifier struct {
	ch chan Notification
}

// NewChannelNotifier creates a ChannelNotifier with the given buffer size.
func NewChannelNotifier(buffer int) *ChannelNotifier {
	return &ChannelNotifier{ch: make(chan Notification, buffer)}
}

// C returns the receive side.
func (n *ChannelNotifier) C() <-chan Notification {
	return n.ch
}

func (n *ChannelNotifier) Notify(ctx context.Context, channelID, title, body string) error {
	select {
	case n.ch <- Notification{ChannelID: channelID, Title: title, Body: body}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Multi fans a notification out to every notifier. All are attempted; the
// failures are joined.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, channelID, title, body string) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, channelID, title, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
