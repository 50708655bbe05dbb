package logger

import (
	"os"

	"go.uber.org/zap"
)

// New builds the process logger. Set LOG_DEV=1 for human-readable output
// during development.
func New() (*zap.Logger, error) {
	if os.Getenv("LOG_DEV") == "1" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
