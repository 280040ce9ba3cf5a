// Package errors provides structured error handling for the runtime.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindTask indicates a failed task unit.
	KindTask
	// KindSubscription indicates a failed or misconfigured subscription.
	KindSubscription
	// KindLayout indicates a layout failure.
	KindLayout
	// KindRender indicates a rendering error.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates invalid or unreadable settings.
	KindConfig
	// KindEvent indicates an event that could not be delivered.
	KindEvent
)

func (k ErrorKind) String() string {
	switch k {
	case KindTask:
		return "task"
	case KindSubscription:
		return "subscription"
	case KindLayout:
		return "layout"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	case KindEvent:
		return "event"
	default:
		return "unknown"
	}
}

// RuntimeError represents a structured error reported by the runtime.
type RuntimeError struct {
	// Op is the operation that failed (e.g., "executor.Runtime.Spawn").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Source identifies the task or subscription involved, if any.
	Source string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *RuntimeError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s [%s] source=%s: %v", e.Op, e.Kind, e.Source, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "app.Instance.update").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// WidgetError represents a failure inside a widget method.
// The widget is skipped for the rest of the pass; the frame continues.
type WidgetError struct {
	// Widget is the type name of the widget that failed.
	Widget string
	// Method is the widget method (Measure, Arrange, Draw, OnEvent).
	Method string
	// Path is the structural path of the widget, e.g. "0/2/1".
	Path string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *WidgetError) Error() string {
	where := ""
	if e.Path != "" {
		where = " at " + e.Path
	}
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s.%s()%s: %v", e.Widget, e.Method, where, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in %s.%s()%s: %v", e.Widget, e.Method, where, e.Err)
	}
	return fmt.Sprintf("unknown error in %s.%s()%s", e.Widget, e.Method, where)
}

func (e *WidgetError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by the runtime.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *RuntimeError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleWidgetError is called when a widget method fails.
	HandleWidgetError(err *WidgetError)
}
