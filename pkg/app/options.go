package app

import (
	"time"

	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/executor"
	"github.com/go-drift/mvu/pkg/settings"
)

type config struct {
	settings      settings.Settings
	tasks         executor.Executor
	subscriptions executor.Executor
	clipboard     core.Clipboard
	now           func() time.Time
}

// Option configures an Instance.
type Option func(*config)

// WithSettings replaces the default settings.
func WithSettings(s settings.Settings) Option {
	return func(c *config) {
		c.settings = s
	}
}

// WithExecutor sets the executor running tasks. The default is a pool
// bounded by Settings.MaxConcurrentTasks.
func WithExecutor(e executor.Executor) Option {
	return func(c *config) {
		c.tasks = e
	}
}

// WithSubscriptionExecutor sets the executor running subscription recipes.
// Recipes live as long as they are declared, so the executor must not bound
// concurrency below the number of recipes.
func WithSubscriptionExecutor(e executor.Executor) Option {
	return func(c *config) {
		c.subscriptions = e
	}
}

// WithClipboard sets the clipboard reachable from widgets and tasks.
func WithClipboard(cb core.Clipboard) Option {
	return func(c *config) {
		c.clipboard = cb
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

func newConfig(opts []Option) config {
	c := config{settings: settings.Default()}
	for _, opt := range opts {
		opt(&c)
	}
	if c.tasks == nil {
		c.tasks = executor.NewPool(c.settings.MaxConcurrentTasks)
	}
	if c.subscriptions == nil {
		c.subscriptions = executor.NewPool(0)
	}
	if c.clipboard == nil {
		c.clipboard = &core.MemoryClipboard{}
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}
