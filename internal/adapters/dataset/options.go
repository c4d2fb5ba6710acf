package dataset

import (
	"net/http"
	"time"
)

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithPath reads the dataset from a local CSV file. Takes precedence over
// the remote URL.
func WithPath(path string) Option {
	return func(l *Loader) {
		l.path = path
	}
}

// WithURL fetches the dataset from a remote registry URL when no local
// path is configured.
func WithURL(url string) Option {
	return func(l *Loader) {
		l.url = url
	}
}

// WithHTTPClient sets a custom HTTP client for remote fetches.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		if client != nil {
			l.client = client
		}
	}
}

// WithTimeout bounds a remote fetch.
func WithTimeout(timeout time.Duration) Option {
	return func(l *Loader) {
		if timeout > 0 {
			l.timeout = timeout
		}
	}
}
