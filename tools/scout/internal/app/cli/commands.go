package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tyler180/fbref-scout/internal/app"
)

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <player name>",
		Short: "Resolve a player name to a profile URL (first match)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, d *app.Deps) error {
				u, err := d.Site.Locate(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), u)
				return nil
			})
		},
	}
}

func statsCmd() *cobra.Command {
	var t target
	cmd := &cobra.Command{
		Use:   "stats [url]",
		Short: "Print the extracted profile and statistics table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := t.resolve(args); err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, d *app.Deps) error {
				u := t.url
				if t.name != "" {
					var err error
					if u, err = d.Site.Locate(ctx, t.name); err != nil {
						return err
					}
				}
				p, err := d.Site.FetchProfile(ctx, u)
				if err != nil {
					return err
				}
				printProfile(cmd.OutOrStdout(), p)
				return nil
			})
		},
	}
	t.bind(cmd)
	return cmd
}

func reportCmd() *cobra.Command {
	var (
		t      target
		export bool
	)
	cmd := &cobra.Command{
		Use:   "report [url]",
		Short: "Generate a scouting report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := t.resolve(args); err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, d *app.Deps) error {
				s, err := t.load(ctx, d.Manager, "")
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				printProfile(out, s.Profile)
				fmt.Fprintln(out)
				fmt.Fprintln(out, s.Report.Markdown)
				if export {
					loc, err := d.Manager.Export(ctx, s.ID)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, "\nreport written to", loc)
				}
				return nil
			})
		},
	}
	t.bind(cmd)
	cmd.Flags().BoolVar(&export, "export", false, "also export the report as <player>_report.md")
	return cmd
}

func chatCmd() *cobra.Command {
	var t target
	cmd := &cobra.Command{
		Use:   "chat [url]",
		Short: "Generate a report, then ask the scout follow-up questions",
		Long: "Interactive session. Commands: /suggest, /ask <n>, /load <url>, /find <name>, " +
			"/export, /reset, /quit. Anything else is sent as a question.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := t.resolve(args); err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, d *app.Deps) error {
				s, err := t.load(ctx, d.Manager, "")
				if err != nil {
					return err
				}
				printProfile(cmd.OutOrStdout(), s.Profile)
				return runChat(ctx, d.Manager, s, cmd.InOrStdin(), cmd.OutOrStdout())
			})
		},
	}
	t.bind(cmd)
	return cmd
}
