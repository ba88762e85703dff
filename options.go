package bytehuff

import (
	"log/slog"
)

// Option configures Encode.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	workers int
}

// WithLogger sets the logger receiving the per-symbol code assignment trace.
// The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithWorkers counts symbol frequencies with up to n goroutines.  The default
// is 1.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

func makeOptions(opts []Option) options {
	o := options{logger: slog.Default(), workers: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}
