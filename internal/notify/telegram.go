package notify

import (
	"context"
	"fmt"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"html"
	"strings"
)

const telegramMessageLimit = 4096

type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Telegram struct {
	api telegramSender
}

func NewTelegram(token string) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &Telegram{api: api}, nil
}

func (t *Telegram) Name() string {
	return "telegram"
}

func (t *Telegram) Accepts(recipient Recipient) bool {
	return recipient.TelegramChatID != nil
}

func (t *Telegram) Send(_ context.Context, recipient Recipient, digest Digest) error {
	msg := tgbotapi.NewMessage(*recipient.TelegramChatID, telegramText(digest))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

func telegramText(digest Digest) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<b>%d new jobs for %s</b>\n\n", digest.Total, html.EscapeString(digest.AlertTitle)))

	for _, job := range digest.Jobs {
		entry := fmt.Sprintf("<a href=\"%s\">%s</a>\n%s, %s\n%s\n\n",
			html.EscapeString(job.URL), html.EscapeString(job.Title),
			html.EscapeString(job.Company), html.EscapeString(job.Location), html.EscapeString(job.Salary))
		if sb.Len()+len(entry) > telegramMessageLimit {
			break
		}
		sb.WriteString(entry)
	}
	return strings.TrimSpace(sb.String())
}
