package models

import (
	"fmt"
	"time"
)

type NotificationFrequency string

const (
	FrequencyDaily  NotificationFrequency = "daily"
	FrequencyWeekly NotificationFrequency = "weekly"
)

func ParseNotificationFrequency(s string) (NotificationFrequency, error) {
	switch NotificationFrequency(s) {
	case FrequencyDaily, FrequencyWeekly:
		return NotificationFrequency(s), nil
	default:
		return "", fmt.Errorf("invalid notification frequency: %q", s)
	}
}

func (f *NotificationFrequency) UnmarshalText(text []byte) error {
	parsed, err := ParseNotificationFrequency(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f NotificationFrequency) Interval() time.Duration {
	if f == FrequencyWeekly {
		return 7 * 24 * time.Hour
	}
	return 24 * time.Hour
}

type JobAlert struct {
	Base
	Title                 string                `json:"title"`
	Keywords              []string              `gorm:"serializer:json" json:"keywords"`
	Location              string                `json:"location,omitempty"`
	MinSalary             *float64              `json:"min_salary,omitempty"`
	RemoteOnly            bool                  `json:"remote_only"`
	NotificationFrequency NotificationFrequency `gorm:"size:16;not null;default:daily" json:"notification_frequency"`
	IsActive              bool                  `gorm:"not null;default:true;index" json:"is_active"`
	LastSentAt            *time.Time            `json:"last_sent_at,omitempty"`
}

// ShouldSend reports whether a digest is due at now.
func (a JobAlert) ShouldSend(now time.Time) bool {
	if a.LastSentAt == nil {
		return true
	}
	return now.Sub(*a.LastSentAt) >= a.NotificationFrequency.Interval()
}
