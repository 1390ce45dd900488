package testutil

import (
	"io"

	"github.com/AznStevy/bme590final/internal/logger"
)

func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, 0)
}
