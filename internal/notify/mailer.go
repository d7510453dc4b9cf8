package notify

import (
	"context"
	"fmt"
	"github.com/wneessen/go-mail"
)

type MailSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type mailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type Mailer struct {
	from   string
	sender mailSender
}

func NewMailer(settings MailSettings) (*Mailer, error) {

	options := []mail.Option{
		mail.WithPort(settings.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if settings.Username != "" {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(settings.Username),
			mail.WithPassword(settings.Password),
		)
	}

	client, err := mail.NewClient(settings.Host, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return &Mailer{from: settings.From, sender: client}, nil
}

func (m *Mailer) Name() string {
	return "email"
}

func (m *Mailer) Accepts(recipient Recipient) bool {
	return recipient.Email != ""
}

func (m *Mailer) Send(ctx context.Context, recipient Recipient, digest Digest) error {

	msg, err := m.message(recipient, digest)
	if err != nil {
		return err
	}

	if err := m.sender.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (m *Mailer) message(recipient Recipient, digest Digest) (*mail.Msg, error) {

	body, err := renderHTML(digest)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if recipient.Name != "" {
		err = msg.AddToFormat(recipient.Name, recipient.Email)
	} else {
		err = msg.To(recipient.Email)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject(subject(digest))
	msg.SetBodyString(mail.TypeTextHTML, body)
	msg.AddAlternativeString(mail.TypeTextPlain, renderText(digest))
	return msg, nil
}
