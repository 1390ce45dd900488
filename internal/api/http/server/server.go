package server

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/AznStevy/bme590final/internal/model"
)

var _ model.Server = (*HTTPServer)(nil)

// HTTPServer wraps a fiber app with address and lifecycle methods.
type HTTPServer struct {
	app  *fiber.App
	addr string
}

// NewHTTPServer creates an HTTPServer with given app and address.
func NewHTTPServer(app *fiber.App, addr string) *HTTPServer {
	return &HTTPServer{app: app, addr: addr}
}

// Start starts serving on the configured address.
func (s *HTTPServer) Start() error {
	if err := s.app.Listen(s.addr); err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return nil
}

// Stop gracefully stops the server.
func (s *HTTPServer) Stop(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// Address returns the configured listen address.
func (s *HTTPServer) Address() string {
	return s.addr
}
