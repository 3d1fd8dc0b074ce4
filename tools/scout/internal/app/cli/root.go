package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tyler180/fbref-scout/internal/app"
	"github.com/tyler180/fbref-scout/internal/config"
	"github.com/tyler180/fbref-scout/internal/logger"
	"github.com/tyler180/fbref-scout/internal/session"
)

var verbose bool

// reported errors were already shown to the user by withApp
type reported struct{ error }

func (r reported) Unwrap() error { return r.error }

func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		var r reported
		if !errors.As(err, &r) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "scout",
		Short:         "AI football scout over FBref player pages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(searchCmd())
	root.AddCommand(statsCmd())
	root.AddCommand(reportCmd())
	root.AddCommand(chatCmd())
	return root
}

// withApp loads config and builds dependencies. A missing API key stops here.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, d *app.Deps) error) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
		return reported{err}
	}
	logger.Init(logger.Console, cfg.LogLevel, cfg.Debug || verbose)

	d, err := app.Build(ctx, cfg)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
		return reported{err}
	}
	if err := fn(ctx, d); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), session.UserMessage(err))
		slog.Debug("cli: command failed", "err", err)
		return reported{err}
	}
	return nil
}

// target is a profile URL argument or a --name lookup.
type target struct {
	url  string
	name string
}

func (t *target) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&t.name, "name", "n", "", "look the player up by name instead of URL")
}

func (t *target) resolve(args []string) error {
	switch {
	case t.name != "" && len(args) > 0:
		return errors.New("give either a URL or --name, not both")
	case t.name != "":
		return nil
	case len(args) == 1 && strings.TrimSpace(args[0]) != "":
		t.url = strings.TrimSpace(args[0])
		return nil
	default:
		return errors.New("a player URL or --name is required")
	}
}

func (t *target) load(ctx context.Context, m *session.Manager, id string) (*session.Session, error) {
	if t.name != "" {
		return m.LoadByName(ctx, id, t.name)
	}
	return m.Load(ctx, id, t.url)
}
