package notify

import (
	"context"
	"errors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
	"testing"
)

var testDigest = Digest{
	AlertTitle: "Go <backend>",
	Keywords:   []string{"golang", "backend"},
	Total:      1,
	Jobs: []models.JobListing{{
		ID:       "1",
		Title:    "Senior Go Engineer",
		Company:  "Acme",
		Location: "Remote, US",
		Salary:   "$120k - $150k",
		URL:      "https://example.com/jobs/1",
		Remote:   true,
	}},
}

type fakeChannel struct {
	name    string
	accepts bool
	err     error
	sent    int
}

func (f *fakeChannel) Name() string { return f.name }
func (f *fakeChannel) Accepts(_ Recipient) bool { return f.accepts }
func (f *fakeChannel) Send(_ context.Context, _ Recipient, _ Digest) error {
	f.sent++
	return f.err
}

func Test_Multi_DeliversToAcceptingChannels(t *testing.T) {
	email := &fakeChannel{name: "email", accepts: true}
	tg := &fakeChannel{name: "telegram", accepts: false}

	err := NewMulti(email, tg).Notify(context.Background(), Recipient{Email: "a@b.c"}, testDigest)

	require.NoError(t, err)
	assert.Equal(t, 1, email.sent)
	assert.Equal(t, 0, tg.sent)
}

func Test_Multi_PartialFailureStillSucceeds(t *testing.T) {
	email := &fakeChannel{name: "email", accepts: true, err: errors.New("smtp down")}
	tg := &fakeChannel{name: "telegram", accepts: true}

	assert.NoError(t, NewMulti(email, tg).Notify(context.Background(), Recipient{}, testDigest))
}

func Test_Multi_Failures(t *testing.T) {
	err := NewMulti(&fakeChannel{accepts: false}).Notify(context.Background(), Recipient{}, testDigest)
	assert.ErrorIs(t, err, ErrNoChannel)

	err = NewMulti(&fakeChannel{name: "email", accepts: true, err: errors.New("smtp down")}).
		Notify(context.Background(), Recipient{}, testDigest)
	assert.ErrorContains(t, err, "smtp down")
}

type mockMailSender struct {
	mock.Mock
}

func (m *mockMailSender) DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error {
	return m.Called(ctx, messages).Error(0)
}

func Test_Mailer_SendsHTMLDigest(t *testing.T) {
	sender := &mockMailSender{}
	sender.On("DialAndSendWithContext", mock.Anything, mock.MatchedBy(func(messages []*mail.Msg) bool {
		if len(messages) != 1 {
			return false
		}
		subject := messages[0].GetGenHeader(mail.HeaderSubject)
		return len(subject) == 1 && subject[0] == "1 new jobs for Go <backend>"
	})).Return(nil).Once()

	mailer := &Mailer{from: "alerts@example.com", sender: sender}
	err := mailer.Send(context.Background(), Recipient{Name: "Jane", Email: "jane@example.com"}, testDigest)

	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func Test_Mailer_RejectsInvalidAddress(t *testing.T) {
	mailer := &Mailer{from: "alerts@example.com", sender: &mockMailSender{}}
	err := mailer.Send(context.Background(), Recipient{Email: "not an address"}, testDigest)
	assert.ErrorContains(t, err, "invalid recipient address")
}

func Test_RenderHTML_EscapesContent(t *testing.T) {
	body, err := renderHTML(testDigest)
	require.NoError(t, err)
	assert.Contains(t, body, "Go &lt;backend&gt;")
	assert.Contains(t, body, "Senior Go Engineer")
	assert.Contains(t, body, "$120k - $150k")
	assert.Contains(t, body, "1 matching job found")
}

type fakeTelegram struct {
	sent []tgbotapi.MessageConfig
}

func (f *fakeTelegram) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

func Test_Telegram_SendsEscapedHTML(t *testing.T) {
	api := &fakeTelegram{}
	chatID := int64(42)

	tg := &Telegram{api: api}
	require.True(t, tg.Accepts(Recipient{TelegramChatID: &chatID}))
	require.NoError(t, tg.Send(context.Background(), Recipient{TelegramChatID: &chatID}, testDigest))

	require.Len(t, api.sent, 1)
	assert.Equal(t, chatID, api.sent[0].ChatID)
	assert.Equal(t, tgbotapi.ModeHTML, api.sent[0].ParseMode)
	assert.Contains(t, api.sent[0].Text, "Go &lt;backend&gt;")
}
