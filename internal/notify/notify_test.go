package notify

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogNotifierWrites(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(&buf, nil)
	require.NoError(t, n.Notify(context.Background(), DefaultChannel, "Time to learn", "Open the app"))
	assert.Contains(t, buf.String(), "Time to learn")
	assert.Contains(t, buf.String(), "Open the app")
}

func TestLogNotifierNilWriter(t *testing.T) {
	n := NewLogNotifier(nil, nil)
	assert.NoError(t, n.Notify(context.Background(), DefaultChannel, "t", "b"))
}

func TestChannelNotifier(t *testing.T) {
	n := NewChannelNotifier(1)
	require.NoError(t, n.Notify(context.Background(), "c", "t", "b"))
	assert.Equal(t, Notification{ChannelID: "c", Title: "t", Body: "b"}, <-n.C())
}

func TestChannelNotifierHonorsContext(t *testing.T) {
	n := NewChannelNotifier(0)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, n.Notify(ctx, "c", "t", "b"), context.DeadlineExceeded)
}

type failingNotifier struct{ err error }

func (f failingNotifier) Notify(context.Context, string, string, string) error { return f.err }

func TestMulti(t *testing.T) {
	ch := NewChannelNotifier(1)
	errA := errors.New("a down")

	m := Multi{failingNotifier{errA}, ch}
	err := m.Notify(context.Background(), "c", "t", "b")
	assert.ErrorIs(t, err, errA)

	// The healthy notifier still received it.
	assert.Equal(t, "t", (<-ch.C()).Title)

	assert.NoError(t, Multi{}.Notify(context.Background(), "c", "t", "b"))
}

type fakeSender struct {
	mu   sync.Mutex
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	msg, ok := c.(tgbotapi.MessageConfig)
	if !ok {
		return tgbotapi.Message{}, errors.New("unexpected chattable")
	}
	f.sent = append(f.sent, msg)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func TestTelegramNotifier(t *testing.T) {
	s := &fakeSender{}
	n := NewTelegramNotifierWithSender(s, 4242, nil)

	require.NoError(t, n.Notify(context.Background(), DefaultChannel, "Python Learning", "Practice today!"))
	require.Len(t, s.sent, 1)
	assert.Equal(t, int64(4242), s.sent[0].ChatID)
	assert.Equal(t, "Python Learning\n\nPractice today!", s.sent[0].Text)
}

func TestTelegramNotifierError(t *testing.T) {
	boom := errors.New("boom")
	n := NewTelegramNotifierWithSender(&fakeSender{err: boom}, 1, nil)
	err := n.Notify(context.Background(), DefaultChannel, "t", "b")
	assert.ErrorIs(t, err, boom)
}

func TestTelegramNotifierCancelledContext(t *testing.T) {
	s := &fakeSender{}
	n := NewTelegramNotifierWithSender(s, 1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, n.Notify(ctx, DefaultChannel, "t", "b"), context.Canceled)
	assert.Empty(t, s.sent)
}
