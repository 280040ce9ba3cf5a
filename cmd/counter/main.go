// Command counter runs the counter example.
//
// In a terminal it runs interactively; otherwise, or with -png, it renders
// the view headlessly after the requested number of clicks and writes a PNG.
package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/go-drift/mvu/pkg/app"
	"github.com/go-drift/mvu/pkg/backend/raster"
	"github.com/go-drift/mvu/pkg/backend/terminal"
	"github.com/go-drift/mvu/pkg/errors"
	"github.com/go-drift/mvu/pkg/settings"
)

func logger() *zap.Logger {
	return errors.Logger().Named("counter")
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "counter: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("counter", flag.ContinueOnError)
	configPath := fs.String("config", "mvu.yaml", "settings file (.yaml, .yml or .toml)")
	pngPath := fs.String("png", "", "render headlessly into this PNG file")
	clicks := fs.Int("clicks", 0, "increments to apply before a headless render")
	debug := fs.Bool("debug", false, "log to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *debug {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer func() { _ = l.Sync() }()
		errors.SetLogger(l)
		errors.SetHandler(&errors.LogHandler{Verbose: true})
	}

	s, err := settings.Load(*configPath)
	if err != nil {
		return err
	}
	if err := s.ResolveAppName("."); err != nil {
		return err
	}
	logger().Info("starting", zap.String("app", s.App.Name))

	interactive := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if *pngPath != "" || !interactive {
		out := *pngPath
		if out == "" {
			out = s.App.Name + ".png"
		}
		return renderPNG(s, *clicks, out)
	}
	return runTerminal(s)
}

func renderPNG(s settings.Settings, clicks int, path string) error {
	inst, err := app.New(NewApp(PixelMetrics), app.WithSettings(s))
	if err != nil {
		return err
	}
	defer inst.Close()
	for iter := 0; iter < clicks; iter++ {
		inst.Send(Increment{})
	}

	var r raster.Renderer
	if err := r.Render(inst.Frame()); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	logger().Info("rendered", zap.String("path", path), zap.Int64("value", inst.State().Value))
	return f.Close()
}

func runTerminal(s settings.Settings) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	term := terminal.New(terminal.Options{AltScreen: true})
	inst, err := app.New(NewApp(CellMetrics), app.WithSettings(s), app.WithClipboard(&terminal.Clipboard{}))
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- term.Run(ctx) }()

	runErr := inst.Run(ctx, term, term)
	term.Quit()
	termErr := <-done
	if runErr != nil && !stderrors.Is(runErr, context.Canceled) {
		return runErr
	}
	return termErr
}
