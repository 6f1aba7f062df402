package common

// EmailSender abstracts outbound mail so services stay testable and the
// worker can swap transports per delivery.
type EmailSender interface {
	Send(to, subject, body string) error
}

// Email is one captured message.
type Email struct {
	To      string
	Subject string
	Body    string
}

// InMemoryEmail collects messages instead of sending them; tests inspect
// Outbox.
type InMemoryEmail struct {
	Outbox []Email
}

func (m *InMemoryEmail) Send(to, subject, body string) error {
	if m == nil {
		return nil
	}
	m.Outbox = append(m.Outbox, Email{To: to, Subject: subject, Body: body})
	return nil
}

// NopEmailSender discards everything. Used when SMTP is not configured.
type NopEmailSender struct{}

func (NopEmailSender) Send(string, string, string) error { return nil }
