package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Settings is the persisted email configuration: where admin notifications
// go and how to reach the SMTP relay. Single row, like the discount
// configuration.
type Settings struct {
	NotificationEmail string `json:"notification_email" validate:"omitempty,email"`
	SMTPServer        string `json:"smtp_server"`
	SMTPPort          int    `json:"smtp_port" validate:"min=0,max=65535"`
	SMTPUsername      string `json:"smtp_username"`
	SMTPPassword      string `json:"smtp_password"`
	SMTPUseTLS        bool   `json:"smtp_use_tls"`
}

// Public returns a copy safe for GET responses, with the password stripped.
func (s Settings) Public() Settings {
	s.SMTPPassword = ""
	return s
}

// Configured reports whether outbound email can be attempted at all.
func (s Settings) Configured() bool {
	return s.SMTPServer != "" && s.SMTPPort > 0
}

// SettingsStore abstracts the email settings row.
type SettingsStore interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, s Settings) (Settings, error)
}

// PGSettingsStore keeps the email configuration in Postgres.
type PGSettingsStore struct {
	Pool *pgxpool.Pool
}

// NewPGSettingsStore constructs a PGSettingsStore.
func NewPGSettingsStore(pool *pgxpool.Pool) *PGSettingsStore {
	return &PGSettingsStore{Pool: pool}
}

// Get reads the settings row. A missing row yields empty settings rather
// than an error; email simply stays disabled until an admin saves them.
func (s *PGSettingsStore) Get(ctx context.Context) (Settings, error) {
	var out Settings
	err := s.Pool.QueryRow(ctx,
		`SELECT notification_email, smtp_server, smtp_port, smtp_username, smtp_password, smtp_use_tls
		 FROM notification_settings WHERE id = 1`).
		Scan(&out.NotificationEmail, &out.SMTPServer, &out.SMTPPort,
			&out.SMTPUsername, &out.SMTPPassword, &out.SMTPUseTLS)
	if errors.Is(err, pgx.ErrNoRows) {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("get notification settings: %w", err)
	}
	return out, nil
}

// Update upserts the settings row. An empty incoming password keeps the
// stored one, so admins can edit the rest without retyping the secret.
func (s *PGSettingsStore) Update(ctx context.Context, in Settings) (Settings, error) {
	var out Settings
	err := s.Pool.QueryRow(ctx,
		`INSERT INTO notification_settings (id, notification_email, smtp_server, smtp_port, smtp_username, smtp_password, smtp_use_tls, updated_at)
		 VALUES (1, $1, $2, $3, $4, $5, $6, now())
		 ON CONFLICT (id) DO UPDATE SET
		   notification_email = EXCLUDED.notification_email,
		   smtp_server = EXCLUDED.smtp_server,
		   smtp_port = EXCLUDED.smtp_port,
		   smtp_username = EXCLUDED.smtp_username,
		   smtp_password = CASE WHEN EXCLUDED.smtp_password = '' THEN notification_settings.smtp_password ELSE EXCLUDED.smtp_password END,
		   smtp_use_tls = EXCLUDED.smtp_use_tls,
		   updated_at = now()
		 RETURNING notification_email, smtp_server, smtp_port, smtp_username, smtp_password, smtp_use_tls`,
		in.NotificationEmail, in.SMTPServer, in.SMTPPort, in.SMTPUsername, in.SMTPPassword, in.SMTPUseTLS).
		Scan(&out.NotificationEmail, &out.SMTPServer, &out.SMTPPort,
			&out.SMTPUsername, &out.SMTPPassword, &out.SMTPUseTLS)
	if err != nil {
		return Settings{}, fmt.Errorf("update notification settings: %w", err)
	}
	return out, nil
}
