package terminal

import (
	"go.uber.org/zap"

	"github.com/go-drift/mvu/pkg/errors"
)

// Logger returns the logger used by the terminal backend.
func Logger() *zap.Logger {
	return errors.Logger().Named("terminal")
}
