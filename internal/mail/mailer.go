package mail

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Mailer delivers the temporary-password email to a newly created parent.
type Mailer interface {
	SendTemporaryPassword(ctx context.Context, toEmail, parentName, password string) error
}

// LogMailer is used when no mail transport is configured. It logs that a
// temporary password was assigned without revealing it.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) SendTemporaryPassword(ctx context.Context, toEmail, parentName, password string) error {
	log.Info().
		Str("email", toEmail).
		Msg("mailer disabled: temporary password not sent")
	return nil
}
