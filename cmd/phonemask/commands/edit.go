package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/phonemask/internal/app"
	"github.com/dshills/phonemask/internal/field"
	"github.com/dshills/phonemask/internal/terminal"
)

func editCmd(g *globals) *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Enter a phone number in an interactive masked field",
		Long: `Edit opens a masked field in the terminal. Enter accepts the number and
prints it, Esc cancels, and the cycle key (Ctrl+N by default) switches to
the next country in the catalog.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			text, err := runEditor(ctx, g.app, code)
			if errors.Is(err, terminal.ErrAborted) || errors.Is(err, context.Canceled) {
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "country", "", "region or dialing code (default detected or from config)")
	return cmd
}

func runEditor(ctx context.Context, a *app.Application, code string) (string, error) {
	cfg := a.Config()
	cycle, err := cfg.CycleKey()
	if err != nil {
		return "", err
	}

	// Resolve fully before binding so the field never shows a stale mask.
	initial := a.InitialCountry(ctx, code)

	buf := field.NewBuffer("")
	id, ctl, err := a.Registry().Bind(buf, initial.Code)
	if err != nil {
		return "", err
	}
	defer a.Registry().Unbind(id)

	logOut, closeLog, err := editorLog(cfg.Logging.File)
	if err != nil {
		return "", err
	}
	defer closeLog()
	prev := a.Logger().SetOutput(logOut)
	defer a.Logger().SetOutput(prev)

	screen, err := tcell.NewScreen()
	if err != nil {
		return "", fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return "", fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.EnablePaste()

	session := terminal.NewSession(screen, ctl, buf,
		terminal.WithCountries(a.Catalog().All()),
		terminal.WithCycleKey(cycle),
		terminal.WithLogger(a.Logger()),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	grp, gctx := errgroup.WithContext(ctx)
	if cfg.Catalog.Watch {
		grp.Go(func() error {
			err := a.WatchCatalog(gctx, session.Reload)
			if errors.Is(err, context.Canceled) || errors.Is(err, app.ErrWatchDisabled) {
				return nil
			}
			return err
		})
	}

	var text string
	grp.Go(func() error {
		defer cancel()
		var err error
		text, err = session.Run(gctx)
		return err
	})

	if err := grp.Wait(); err != nil {
		return "", err
	}
	return text, nil
}

// editorLog returns where log lines go while the screen owns the terminal.
func editorLog(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
