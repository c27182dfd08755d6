package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldday-games/bingohunt/internal/model"
)

func newBoardCmd() *cobra.Command {
	var playerID string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show a player's board",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlayerID(playerID)
			if err != nil {
				return err
			}

			board, err := client.GetBoard(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := board.Validate(); err != nil {
				return fmt.Errorf("server returned a malformed board: %w", err)
			}

			NewOutput(cfg.Output).Print(board)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Player ID (defaults to the registered player)")

	return cmd
}

// resolvePlayerID returns the explicit player id, or the registered identity
// when none is given
func resolvePlayerID(explicit string) (model.PlayerID, error) {
	if explicit != "" {
		if !model.ValidPlayerID(explicit) {
			return "", fmt.Errorf("invalid player id %q", explicit)
		}
		return model.PlayerID(explicit), nil
	}
	self, err := requireIdentity()
	if err != nil {
		return "", err
	}
	return self.ID, nil
}
