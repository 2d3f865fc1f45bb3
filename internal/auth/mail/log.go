package mail

import (
	"context"
	"log/slog"
)

// LogDispatcher logs instead of sending. Used in development and whenever
// SMTP is not configured, so the flows behave the same either way.
type LogDispatcher struct {
	logger *slog.Logger
}

func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) SendVerification(ctx context.Context, to, token string) error {
	d.logger.InfoContext(ctx, "verification mail (not sent)",
		slog.String("to", to),
		slog.String("token", token),
	)
	return nil
}

func (d *LogDispatcher) SendPasswordReset(ctx context.Context, to, token string) error {
	d.logger.InfoContext(ctx, "password reset mail (not sent)",
		slog.String("to", to),
		slog.String("token", token),
	)
	return nil
}

func (d *LogDispatcher) SendContactMessage(ctx context.Context, fromIdentityID, subject, body string) error {
	d.logger.InfoContext(ctx, "contact message (not sent)",
		slog.String("identity_id", fromIdentityID),
		slog.String("subject", subject),
	)
	return nil
}
