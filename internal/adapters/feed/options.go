package feed

import "time"

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds a fetch that has no context deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMaxBodySize caps the accepted document size in bytes. Larger bodies fail
// the fetch.
func WithMaxBodySize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.client.MaxResponseBodySize = n
		}
	}
}
