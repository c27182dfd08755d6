// Package cli implements the bingohunt command line interface: the
// interactive player client plus one-shot commands for every API operation
// and a local stub server.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldday-games/bingohunt/internal/api"
	"github.com/fieldday-games/bingohunt/internal/identity"
	"github.com/fieldday-games/bingohunt/internal/model"
	"github.com/fieldday-games/bingohunt/internal/poll"
)

var (
	cfg    *Config
	client *api.Client
	ids    identity.Store
	logger *slog.Logger
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bingohunt",
		Short: "Client for the scavenger bingo game",
		Long: `bingohunt is a client for the scavenger bingo game API.

Players complete tasks on a 5x5 board by scanning other players' codes.
Run "bingohunt play" for the interactive client, or use the one-shot
commands to hit individual API operations. "bingohunt serve" runs a local
stub game server for development.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}

			logger = newLogger(cfg.Verbose)
			client = api.NewClient(cfg.ServerURL)
			ids = identity.NewFileStore(cfg.IdentityFile)
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("server", "http://localhost:8000", "Server URL (env: BINGOHUNT_SERVER)")
	rootCmd.PersistentFlags().String("identity-file", identity.DefaultPath(), "Identity file path (env: BINGOHUNT_IDENTITY_FILE)")
	rootCmd.PersistentFlags().Duration("poll-interval", poll.DefaultInterval, "Game state polling interval (env: BINGOHUNT_POLL_INTERVAL)")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format: text, json")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newBoardCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newWinnersCmd())
	rootCmd.AddCommand(newTasksCmd())
	rootCmd.AddCommand(newScansCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newQRCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// requireIdentity loads the local identity or fails with a registration hint
func requireIdentity() (model.Identity, error) {
	self, err := ids.Get()
	if err != nil {
		return model.Identity{}, fmt.Errorf("no registered player: run \"bingohunt register\" first")
	}
	return self, nil
}
