// Package app runs long-lived components together and stops them together.
package app

import "context"

// Component is anything with a blocking Run and a Shutdown that honours the
// context deadline: an HTTP server, a background worker, the report lab.
type Component interface {
	Run() error
	Shutdown(ctx context.Context) error
}
