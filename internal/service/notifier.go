package service

import (
	"context"

	"github.com/refugiapp/refugiapp/internal/logger"
)

// logNotifier writes reset tokens to the server log. It stands in for a mail
// sender in single-node deployments.
type logNotifier struct {
	logger *logger.Logger
}

func NewLogNotifier(logger *logger.Logger) Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) NotifyPasswordReset(ctx context.Context, email, token string) error {
	logger.FromContext(ctx).Info().
		Str("email", email).
		Str("reset_token", token).
		Msg("password reset requested")
	return nil
}
