package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldday-games/bingohunt/internal/app"
	"github.com/fieldday-games/bingohunt/internal/model"
)

func newRegisterCmd() *cobra.Command {
	var name, phone string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register as a player and save the local identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			normalized, ok := app.NormalizePhone(phone)
			if !ok {
				return fmt.Errorf("phone number must be exactly 10 digits")
			}

			player, err := client.Register(cmd.Context(), name, normalized)
			if err != nil {
				return err
			}

			if err := ids.Set(model.Identity{ID: player.ID, Name: player.Name}); err != nil {
				return fmt.Errorf("failed to save identity: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(player)
			out.PrintMessage(fmt.Sprintf("Identity saved to %s", cfg.IdentityFile))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number, 10 digits (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("phone")

	return cmd
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the registered player",
		RunE: func(cmd *cobra.Command, args []string) error {
			self, err := requireIdentity()
			if err != nil {
				return err
			}

			player, err := client.GetPlayer(cmd.Context(), self.ID)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(player)
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the local player identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ids.Clear(); err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage("Identity removed")
			return nil
		},
	}
}
