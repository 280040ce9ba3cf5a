// Package terminal runs applications in a terminal with bubbletea.
//
// The terminal is both the platform and the renderer: bubbletea messages
// become runtime events, and frames are painted into a character grid that
// bubbletea displays. One logical unit is one cell, so applications should
// measure text with text.CellMeasurer.
package terminal

import (
	"context"
	stderrors "errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/mvu/pkg/errors"
	"github.com/go-drift/mvu/pkg/event"
	"github.com/go-drift/mvu/pkg/graphics"
	"github.com/go-drift/mvu/pkg/text"
)

// DefaultSize is the size reported before the terminal tells its own.
var DefaultSize = graphics.Size{Width: 80, Height: 24}

// Options configures a Terminal.
type Options struct {
	// AltScreen draws on the alternate screen buffer.
	AltScreen bool
	// Input and Output replace stdin and stdout.
	Input  io.Reader
	Output io.Writer
	// EventBuffer is the capacity of the event channel. Defaults to 64.
	EventBuffer int
	// Now stamps events. Defaults to time.Now.
	Now func() time.Time
}

// Terminal is a bubbletea-backed platform and renderer.
type Terminal struct {
	program *tea.Program
	events  chan event.Event
	now     func() time.Time

	mu   sync.Mutex
	size graphics.Size
	view string

	// repaint is set while a repaint message is on its way to bubbletea.
	repaint atomic.Bool
	done    chan struct{}
	once    sync.Once
}

// New creates a terminal and makes text.CellMeasurer the default measurer.
func New(opts Options) *Terminal {
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = 64
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	text.SetDefault(text.NewCache(text.CellMeasurer{}, text.DefaultCacheSize))

	t := &Terminal{
		events: make(chan event.Event, opts.EventBuffer),
		now:    opts.Now,
		size:   DefaultSize,
		done:   make(chan struct{}),
	}
	teaOpts := []tea.ProgramOption{tea.WithMouseAllMotion(), tea.WithReportFocus()}
	if opts.AltScreen {
		teaOpts = append(teaOpts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		teaOpts = append(teaOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		teaOpts = append(teaOpts, tea.WithOutput(opts.Output))
	}
	t.program = tea.NewProgram(&model{term: t}, teaOpts...)
	return t
}

// Events implements the application platform.
func (t *Terminal) Events() <-chan event.Event { return t.events }

// Size returns the last size reported by the terminal.
func (t *Terminal) Size() graphics.Size {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size
}

// Render paints f and asks bubbletea to display it. It never waits for
// bubbletea, which may itself be waiting for the application to take an
// event.
func (t *Terminal) Render(f graphics.Frame) error {
	view := Paint(f).String()
	t.mu.Lock()
	t.view = view
	t.mu.Unlock()
	if t.repaint.CompareAndSwap(false, true) {
		go t.program.Send(repaintMsg{})
	}
	return nil
}

// View returns the last rendered frame as styled text.
func (t *Terminal) View() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view
}

// Run runs the bubbletea program until Quit is called, ctx is done or the
// program fails. The event channel is closed when it returns.
func (t *Terminal) Run(ctx context.Context) error {
	defer t.once.Do(func() {
		close(t.done)
		close(t.events)
	})
	stop := context.AfterFunc(ctx, t.program.Quit)
	defer stop()
	_, err := t.program.Run()
	if stderrors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// Quit stops the program.
func (t *Terminal) Quit() {
	t.program.Quit()
}

// emit forwards converted events, dropping them once the terminal stopped.
func (t *Terminal) emit(msg tea.Msg) {
	defer errors.Recover("terminal.Terminal.emit")
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		t.mu.Lock()
		t.size = graphics.Size{Width: float64(size.Width), Height: float64(size.Height)}
		t.mu.Unlock()
	}
	for _, ev := range convert(msg, t.now()) {
		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

type repaintMsg struct{}

// model is the bubbletea side of the terminal. It only displays frames;
// all state lives in the application.
type model struct {
	term *Terminal
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(repaintMsg); ok {
		m.term.repaint.Store(false)
		return m, nil
	}
	m.term.emit(msg)
	return m, nil
}

func (m *model) View() string { return m.term.View() }
