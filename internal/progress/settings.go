package progress

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"
)

// Preference namespace and keys for the notification settings.
const (
	SettingsNamespace = "notifications"

	keyEnabled = "notifications_enabled"
	keyHour    = "notification_hour"
	keyMinute  = "notification_minute"
)

// NotificationSettings controls the daily reminder.
type NotificationSettings struct {
	Enabled bool
	Hour    int
	Minute  int
}

// DefaultNotificationSettings returns the settings used when nothing is stored.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{Enabled: true, Hour: 9, Minute: 0}
}

// Validate checks the time of day is in range.
func (n NotificationSettings) Validate() error {
	if n.Hour < 0 || n.Hour > 23 {
		return fmt.Errorf("hour %d out of range 0..23", n.Hour)
	}
	if n.Minute < 0 || n.Minute > 59 {
		return fmt.Errorf("minute %d out of range 0..59", n.Minute)
	}
	return nil
}

// TimeLabel renders the reminder time as HH:MM.
func (n NotificationSettings) TimeLabel() string {
	return fmt.Sprintf("%02d:%02d", n.Hour, n.Minute)
}

var errNoPrefs = errors.New("no preference storage configured")

// LoadNotificationSettings reads the stored settings. Missing or
// unparsable values fall back to their defaults individually.
func (s *Store) LoadNotificationSettings(ctx context.Context) NotificationSettings {
	out := DefaultNotificationSettings()
	if s.prefs == nil {
		return out
	}

	values, err := s.prefs.All(ctx, SettingsNamespace)
	if err != nil {
		s.logger.Warn("load notification settings, using defaults", zap.Error(err))
		return out
	}

	if v, ok := values[keyEnabled]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			out.Enabled = b
		} else {
			s.logger.Warn("bad stored preference", zap.String("key", keyEnabled), zap.String("value", v))
		}
	}
	if v, ok := values[keyHour]; ok {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			out.Hour = h
		} else {
			s.logger.Warn("bad stored preference", zap.String("key", keyHour), zap.String("value", v))
		}
	}
	if v, ok := values[keyMinute]; ok {
		if m, err := strconv.Atoi(v); err == nil && m >= 0 && m <= 59 {
			out.Minute = m
		} else {
			s.logger.Warn("bad stored preference", zap.String("key", keyMinute), zap.String("value", v))
		}
	}
	return out
}

// SaveNotificationSettings overwrites all three settings in one write.
func (s *Store) SaveNotificationSettings(ctx context.Context, n NotificationSettings) error {
	if err := n.Validate(); err != nil {
		return fmt.Errorf("save notification settings: %w", err)
	}
	if s.prefs == nil {
		return fmt.Errorf("save notification settings: %w", errNoPrefs)
	}
	err := s.prefs.SetAll(ctx, SettingsNamespace, map[string]string{
		keyEnabled: strconv.FormatBool(n.Enabled),
		keyHour:    strconv.Itoa(n.Hour),
		keyMinute:  strconv.Itoa(n.Minute),
	})
	if err != nil {
		s.logger.Error("save notification settings", zap.Error(err))
		return fmt.Errorf("save notification settings: %w", err)
	}
	s.logger.Debug("notification settings saved",
		zap.Bool("enabled", n.Enabled), zap.String("at", n.TimeLabel()))
	return nil
}
