package log

import (
	"context"

	"github.com/sirupsen/logrus"
)

var (
	G = GetLogger

	// L is an alias for the standard logger.
	L = logrus.NewEntry(logrus.StandardLogger())
)

type (
	loggerKey struct{}
)

// WithLogger returns a new context with the provided logger. Use in
// combination with logger.WithField(s) for great effect.
func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// WithApp returns a context whose logger carries the owner/repo of the
// tracked app being processed.
func WithApp(ctx context.Context, owner, repo string) context.Context {
	return WithLogger(ctx, G(ctx).WithFields(logrus.Fields{
		"owner": owner,
		"repo":  repo,
	}))
}

// SetVerbose switches the standard logger between info and debug level.
func SetVerbose(verbose bool) {
	if verbose {
		L.Logger.SetLevel(logrus.DebugLevel)
		return
	}
	L.Logger.SetLevel(logrus.InfoLevel)
}

// GetLogger retrieves the current logger from the context. If no logger is
// available, the default logger is returned.
func GetLogger(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(loggerKey{})

	if logger == nil {
		return L
	}

	return logger.(*logrus.Entry)
}
