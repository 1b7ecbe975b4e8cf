// Package delivery defines the contract every transport adapter fulfils.
package delivery

import "context"

// Delivery is a long-running transport (HTTP server, worker loop) started by
// the application entrypoint. Serve blocks until the delivery stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
