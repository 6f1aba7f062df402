package notify

import (
	"fmt"

	mail "github.com/wneessen/go-mail"
)

// SMTPSender delivers mail through the relay from the stored settings. It
// implements common.EmailSender; a fresh connection per message keeps the
// sender valid across settings changes.
type SMTPSender struct {
	Settings Settings
}

// Send delivers one plain-text message.
func (s SMTPSender) Send(to, subject, body string) error {
	if !s.Settings.Configured() {
		return fmt.Errorf("smtp not configured")
	}

	opts := []mail.Option{
		mail.WithPort(s.Settings.SMTPPort),
	}
	if s.Settings.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.Settings.SMTPUsername),
			mail.WithPassword(s.Settings.SMTPPassword),
		)
	}
	if s.Settings.SMTPUseTLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	client, err := mail.NewClient(s.Settings.SMTPServer, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	msg := mail.NewMsg()
	from := s.Settings.SMTPUsername
	if from == "" {
		from = s.Settings.NotificationEmail
	}
	if err := msg.From(from); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
