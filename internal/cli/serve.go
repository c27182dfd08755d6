package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fieldday-games/bingohunt/internal/stub"
)

func newServeCmd() *cobra.Command {
	var (
		host       string
		port       int
		maxWinners int
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local stub game server",
		Long: `Run a self-contained game server for local development.

State lives in memory: players registered against it get a freshly
generated board, and the game deactivates once enough distinct players
have won.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := stub.NewStore(stub.StoreConfig{
				MaxWinners: maxWinners,
				Seed:       seed,
			})
			handler := stub.NewHandler(store, logger)

			serverCfg := stub.DefaultServerConfig()
			serverCfg.Host = host
			serverCfg.Port = port
			server := stub.NewServer(handler, serverCfg, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				if err := server.Shutdown(context.Background()); err != nil {
					logger.Error("shutdown error", slog.String("error", err.Error()))
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Listen host")
	cmd.Flags().IntVar(&port, "port", 8000, "Listen port")
	cmd.Flags().IntVar(&maxWinners, "max-winners", 3, "Distinct winners that end the game")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Board generation seed (0 for random)")

	return cmd
}
