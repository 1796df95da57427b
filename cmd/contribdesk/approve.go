package main

import (
	"fmt"
	"strings"

	"github.com/harunnryd/contribdesk/internal/approval"
	apperrors "github.com/harunnryd/contribdesk/internal/errors"
	"github.com/harunnryd/contribdesk/internal/store"

	"github.com/spf13/cobra"
)

var approveCmd = &cobra.Command{
	Use:   "approve",
	Short: "Record an approval locally",
	Long: `Record an approved skill or tool in the local store. Use this when the
spreadsheet system of record cannot be reached; reconcile later with export and clear.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		loadedCfg, err := loadConfigForCommand(cmd)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		rec, err := recordFromFlags(cmd)
		if err != nil {
			return err
		}

		st, err := store.Open(loadedCfg.Store)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer st.Close()

		saved, err := st.Append(commandContext(cmd), rec)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Approved %s %q locally (id %s)\n", saved.Kind, saved.Name(), saved.ID)
		return nil
	},
}

func recordFromFlags(cmd *cobra.Command) (approval.Record, error) {
	kind, _ := cmd.Flags().GetString("kind")
	name, _ := cmd.Flags().GetString("name")
	category, _ := cmd.Flags().GetString("category")
	description, _ := cmd.Flags().GetString("description")
	resources, _ := cmd.Flags().GetString("resources")
	useCases, _ := cmd.Flags().GetString("use-cases")
	email, _ := cmd.Flags().GetString("email")
	notes, _ := cmd.Flags().GetString("notes")
	id, _ := cmd.Flags().GetString("id")

	var rec approval.Record
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "skill":
		rec = approval.NewSkill(approval.SkillFields{
			SkillName:         strings.TrimSpace(name),
			Category:          strings.TrimSpace(category),
			Description:       description,
			LearningResources: resources,
		})
	case "tool":
		rec = approval.NewTool(approval.ToolFields{
			ToolName:        strings.TrimSpace(name),
			Category:        strings.TrimSpace(category),
			Description:     description,
			PrimaryUseCases: useCases,
		})
	default:
		return approval.Record{}, apperrors.InvalidInput(fmt.Sprintf("kind must be Skill or Tool, got %q", kind))
	}

	rec.ID = strings.TrimSpace(id)
	rec.ContributorEmail = strings.TrimSpace(email)
	rec.ReviewNotes = notes
	return rec, nil
}

func init() {
	rootCmd.AddCommand(approveCmd)

	approveCmd.Flags().StringP("kind", "k", "", "Contribution kind (Skill|Tool)")
	approveCmd.Flags().StringP("name", "n", "", "Skill or tool name")
	approveCmd.Flags().StringP("category", "c", "", "Category")
	approveCmd.Flags().StringP("description", "d", "", "Description")
	approveCmd.Flags().String("resources", "", "Learning resources (skills)")
	approveCmd.Flags().String("use-cases", "", "Primary use cases (tools)")
	approveCmd.Flags().String("email", "", "Contributor email")
	approveCmd.Flags().String("notes", "", "Review notes")
	approveCmd.Flags().String("id", "", "Record id (generated when empty)")
	_ = approveCmd.MarkFlagRequired("kind")
	_ = approveCmd.MarkFlagRequired("name")
}
