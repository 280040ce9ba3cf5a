package engine

import (
	"go.uber.org/zap"

	"github.com/go-drift/mvu/pkg/errors"
)

// Logger returns the logger used by the engine.
func Logger() *zap.Logger {
	return errors.Logger().Named("engine")
}
