// Package notify delivers alert digests over email and Telegram.
package notify

import (
	"context"
	"errors"
	"fmt"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/maxaizer/job-copilot/internal/logger"
	log "github.com/sirupsen/logrus"
)

var ErrNoChannel = errors.New("recipient has no reachable notification channel")

type Recipient struct {
	Name           string
	Email          string
	TelegramChatID *int64
}

type Digest struct {
	AlertTitle string
	Keywords   []string
	Jobs       []models.JobListing
	Total      int
}

type Channel interface {
	Name() string
	Accepts(recipient Recipient) bool
	Send(ctx context.Context, recipient Recipient, digest Digest) error
}

// Multi sends a digest to every channel the recipient can be reached on.
// Delivery succeeds when at least one channel accepts the message.
type Multi struct {
	channels []Channel
}

func NewMulti(channels ...Channel) *Multi {
	var enabled []Channel
	for _, ch := range channels {
		if ch != nil {
			enabled = append(enabled, ch)
		}
	}
	return &Multi{channels: enabled}
}

func (m *Multi) Notify(ctx context.Context, recipient Recipient, digest Digest) error {

	var errs []error
	delivered := 0

	for _, ch := range m.channels {
		if !ch.Accepts(recipient) {
			continue
		}
		if err := ch.Send(ctx, recipient, digest); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
			continue
		}
		delivered++
	}

	if delivered > 0 {
		if len(errs) > 0 {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeMail).
				Warnf("digest %q partially delivered: %v", digest.AlertTitle, errors.Join(errs...))
		}
		return nil
	}
	if len(errs) == 0 {
		return ErrNoChannel
	}
	return errors.Join(errs...)
}
