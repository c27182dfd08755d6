package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldday-games/bingohunt/internal/model"
)

func newScanCmd() *cobra.Command {
	var target string
	var taskID int

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Submit a scan of another player for a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			self, err := requireIdentity()
			if err != nil {
				return err
			}

			pending := model.PendingScan{
				TargetID: model.PlayerID(target),
				TaskID:   &taskID,
			}
			if err := pending.Validate(self.ID); err != nil {
				if errors.Is(err, model.ErrSelfScan) {
					return fmt.Errorf("you cannot scan your own code")
				}
				return fmt.Errorf("invalid target player id %q", target)
			}

			result, err := client.SubmitScan(cmd.Context(), self.ID, pending.TargetID, taskID)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "Scanned player ID (required)")
	cmd.Flags().IntVar(&taskID, "task", 0, "Task ID to complete (required)")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("task")

	return cmd
}

func newScansCmd() *cobra.Command {
	var playerID string

	cmd := &cobra.Command{
		Use:   "scans",
		Short: "Show a player's scan history",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlayerID(playerID)
			if err != nil {
				return err
			}

			scans, err := client.GetPlayerScans(cmd.Context(), id)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(scans)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Player ID (defaults to the registered player)")

	return cmd
}
