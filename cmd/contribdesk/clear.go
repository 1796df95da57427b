package main

import (
	"context"
	"fmt"

	"github.com/harunnryd/contribdesk/internal/console"
	"github.com/harunnryd/contribdesk/internal/store"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every locally approved contribution",
	Long:  `Remove all approvals from the local store once they have been reconciled. Asks for confirmation unless --yes is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		var inner console.Confirmer = console.NewPromptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
		if yes {
			inner = console.AutoConfirm(true)
		}
		confirm := &answerRecorder{inner: inner}

		return executeWithBoard(cmd, boardDeps{confirm: confirm}, func(ctx context.Context, board *console.Board, _ *store.Store) error {
			before := len(board.Records())
			if err := board.Clear(ctx); err != nil {
				return err
			}
			if !confirm.accepted {
				fmt.Fprintln(cmd.OutOrStdout(), "Clear cancelled; nothing was deleted.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared %d local approvals\n", before)
			return nil
		})
	},
}

// answerRecorder remembers whether the wrapped confirmer said yes.
type answerRecorder struct {
	inner    console.Confirmer
	accepted bool
}

func (a *answerRecorder) Confirm(ctx context.Context, prompt string) (bool, error) {
	ok, err := a.inner.Confirm(ctx, prompt)
	a.accepted = ok && err == nil
	return ok, err
}

func init() {
	rootCmd.AddCommand(clearCmd)

	clearCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
