package model

import "context"

// Processor exposes the capability set of the external image processor.
// Capabilities are validated against, never invoked, by this service.
type Processor interface {
	ListCapabilities(ctx context.Context) ([]string, error)
}
