package cli

import (
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the global game state",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := client.GetGameState(cmd.Context())
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(status)
			return nil
		},
	}
}

func newWinnersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "winners",
		Short: "Show the winners",
		RunE: func(cmd *cobra.Command, args []string) error {
			winners, err := client.GetWinners(cmd.Context())
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(winners)
			return nil
		},
	}
}

func newTasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "Show the task catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := client.GetTasks(cmd.Context())
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(tasks)
			return nil
		},
	}
}
