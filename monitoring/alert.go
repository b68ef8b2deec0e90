package monitoring

import (
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
)

func Alert(message string, err error) {
	// log it
	evID := sentry.CurrentHub().CaptureException(errors.Wrap(err, message))
	slog.Error("critical error encountered", "msg", message, "error", err, "id (<nil> if not sent to error tracking)", evID)
}
