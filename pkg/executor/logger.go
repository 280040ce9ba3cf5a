package executor

import (
	"go.uber.org/zap"

	"github.com/go-drift/mvu/pkg/errors"
)

// Logger returns the logger used by the executor.
func Logger() *zap.Logger {
	return errors.Logger().Named("executor")
}
