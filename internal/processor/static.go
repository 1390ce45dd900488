package processor

import (
	"context"
	"slices"

	"github.com/AznStevy/bme590final/internal/model"
)

var _ model.Processor = (*Static)(nil)

// Static serves a fixed capability set. Used when no processor endpoint
// is configured, and in tests.
type Static struct {
	capabilities []string
}

func NewStatic(capabilities ...string) *Static {
	return &Static{capabilities: capabilities}
}

func (s *Static) ListCapabilities(_ context.Context) ([]string, error) {
	return slices.Clone(s.capabilities), nil
}
