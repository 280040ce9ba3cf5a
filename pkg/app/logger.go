package app

import (
	"go.uber.org/zap"

	"github.com/go-drift/mvu/pkg/errors"
)

// Logger returns the logger used by the application loop.
func Logger() *zap.Logger {
	return errors.Logger().Named("app")
}
