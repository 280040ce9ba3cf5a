package errors

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	// DefaultHandler receives every reported error. Use SetHandler to
	// replace it.
	DefaultHandler ErrorHandler = &LogHandler{}

	handlerMu sync.RWMutex
)

// SetHandler installs h as the global handler. Nil restores a LogHandler
// writing to Logger().
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	DefaultHandler = h
	handlerMu.Unlock()
}

func handler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Report hands a runtime error to the handler, stamping it if needed.
func Report(err *RuntimeError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	handler().HandleError(err)
}

// ReportPanic hands a recovered panic to the handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	handler().HandlePanic(err)
}

// ReportWidgetError hands a failed widget method to the handler.
func ReportWidgetError(err *WidgetError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	handler().HandleWidgetError(err)
}

func stamp(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

// Recover reports a panic in progress. It must be deferred directly:
//
//	defer errors.Recover("terminal.Terminal.emit")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(recovered(op, r))
	}
}

// Guard runs fn, turning a panic into a *PanicError. Nothing is reported;
// the caller owns the error.
func Guard(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(op, r)
		}
	}()
	return fn()
}

func recovered(op string, value any) *PanicError {
	return &PanicError{
		Op:         op,
		Value:      value,
		StackTrace: stack(4),
		Timestamp:  time.Now(),
	}
}

// CaptureStack returns the stack of its caller, one frame per two lines.
func CaptureStack() string {
	return stack(3)
}

func stack(skip int) string {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		sb.WriteString(f.Function + "\n\t" + f.File + ":" + strconv.Itoa(f.Line) + "\n")
		if !more {
			return sb.String()
		}
	}
}
