package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fieldday-games/bingohunt/internal/app"
	"github.com/fieldday-games/bingohunt/internal/scan"
	"github.com/fieldday-games/bingohunt/internal/ui"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [fragment]",
		Short: "Run the interactive client",
		Long: `Run the interactive terminal client.

An optional starting fragment deep-links into a screen, e.g.
"#board" or "#scan/7". Without one the client starts on the board,
or on signup when no identity is registered yet.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			terminal := ui.NewTerminal(os.Stdin, os.Stdout)
			capability := scan.NewLineSource(terminal)
			nav := app.NewNavigator()

			appCfg := app.DefaultConfig()
			appCfg.PollInterval = cfg.PollInterval

			router := app.NewRouter(client, ids, terminal, terminal, capability, nav, appCfg, logger)

			initial := ""
			if len(args) > 0 {
				initial = args[0]
			}
			router.Run(ctx, initial)
			return nil
		},
	}
	return cmd
}
