package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/harunnryd/contribdesk/internal/console"
	"github.com/harunnryd/contribdesk/internal/emit"
	"github.com/harunnryd/contribdesk/internal/export"
	"github.com/harunnryd/contribdesk/internal/store"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export locally approved contributions",
	Long: `Export every local approval as json, csv or spreadsheet-csv, or a single
approval (--id) as a one-element JSON array. Files are named
approved-contributions-YYYY-MM-DD.<ext> and written to the output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		loadedCfg, err := loadConfigForCommand(cmd)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		rawTarget, _ := cmd.Flags().GetString("target")
		if strings.TrimSpace(rawTarget) == "" {
			rawTarget = loadedCfg.Export.DefaultTarget
		}
		recordID, _ := cmd.Flags().GetString("id")
		outDir, _ := cmd.Flags().GetString("out")
		toStdout, _ := cmd.Flags().GetBool("stdout")

		// single-record exports are always JSON
		target := export.TargetJSON
		if recordID == "" {
			target, err = export.ParseTarget(rawTarget)
			if err != nil {
				return err
			}
		}

		var deps boardDeps
		report := cmd.OutOrStdout()
		switch {
		case toStdout:
			deps.sink = emit.NewWriterSink(cmd.OutOrStdout())
			report = cmd.ErrOrStderr()
		case outDir != "":
			dirSink, err := emit.NewDirSink(outDir)
			if err != nil {
				return fmt.Errorf("failed to prepare output directory: %w", err)
			}
			deps.sink = dirSink
		}

		return executeWithBoard(cmd, deps, func(ctx context.Context, board *console.Board, _ *store.Store) error {
			if recordID != "" {
				location, err := board.ExportRecord(ctx, recordID)
				if err != nil {
					return err
				}
				fmt.Fprintf(report, "✓ Exported %s to %s\n", recordID, location)
				return nil
			}

			location, err := board.ExportAll(ctx, target)
			if err != nil {
				return err
			}
			fmt.Fprintf(report, "✓ Exported %d approvals (%s) to %s\n", len(board.Records()), target, location)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("target", "t", "", "Export format (json|csv|spreadsheet-csv); defaults to export.default_target, ignored with --id")
	exportCmd.Flags().String("id", "", "Export a single approval as JSON")
	exportCmd.Flags().String("out", "", "Output directory (overrides export.output_dir)")
	exportCmd.Flags().Bool("stdout", false, "Write the export to stdout instead of a file")
}
