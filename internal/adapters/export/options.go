package export

import "time"

// Option applies a configuration option to the Writer.
type Option func(*Writer)

// WithDirectory sets the target directory for export bundles.
func WithDirectory(dir string) Option {
	return func(w *Writer) {
		if dir != "" {
			w.dir = dir
		}
	}
}

// WithClock overrides the time source stamped into manifests.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		if now != nil {
			w.now = now
		}
	}
}

// WithRunID overrides the run id generator.
func WithRunID(gen func() string) Option {
	return func(w *Writer) {
		if gen != nil {
			w.newRunID = gen
		}
	}
}
