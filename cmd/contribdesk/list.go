package main

import (
	"context"
	"fmt"

	"github.com/harunnryd/contribdesk/internal/console"
	"github.com/harunnryd/contribdesk/internal/store"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List locally approved contributions",
	Long:    `List approvals buffered in the local store. Prints nothing when the store is empty.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFormat, _ := cmd.Flags().GetString("output")
		expand, _ := cmd.Flags().GetStringSlice("expand")

		format, err := console.ParseOutputFormat(outputFormat)
		if err != nil {
			return err
		}

		return executeWithBoard(cmd, boardDeps{}, func(ctx context.Context, board *console.Board, _ *store.Store) error {
			known := make(map[string]bool, len(board.Records()))
			for _, rec := range board.Records() {
				known[rec.ID] = true
			}
			for _, id := range expand {
				if !known[id] {
					return fmt.Errorf("no local approval with id %q", id)
				}
				if !board.Expanded(id) {
					board.Toggle(id)
				}
			}
			return board.Render(cmd.OutOrStdout(), format)
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("output", "o", "table", "Output format (table|json|yaml)")
	listCmd.Flags().StringSliceP("expand", "e", nil, "Record ids to show in detail")
}
