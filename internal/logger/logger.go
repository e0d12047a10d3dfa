package logger

import (
	"os"

	"go.uber.org/zap"
)

// New builds the process logger. APP_ENV=development switches to the
// human-readable development config.
func New() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
