package cli

import (
	"fmt"
	"os"

	"github.com/RoyKeane94/toad/internal/entities"
	"github.com/RoyKeane94/toad/internal/mapper"

	"github.com/spf13/cobra"
)

func newCampaignCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Run outreach campaigns",
	}
	cmd.AddCommand(newCampaignSendCmd(app))
	return cmd
}

func newCampaignSendCmd(app *App) *cobra.Command {
	var (
		templateID int64
		kind       string
		status     string
		limit      int
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Mail a template to every eligible lead",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Campaigns.SendCampaign(cmd.Context(), entities.CampaignOptions{
				TemplateID: templateID,
				Filter:     mapper.LeadFilter(kind, status, nil, limit),
				DryRun:     dryRun,
			})
			if err != nil {
				return err
			}
			mode := "sent"
			if dryRun {
				mode = "dry run"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: selected=%d sent=%d failed=%d skipped=%d\n",
				mode, res.Selected, res.Sent, res.Failed, res.Skipped)
			return nil
		},
	}

	cmd.Flags().Int64Var(&templateID, "template", 0, "Email template ID")
	cmd.Flags().StringVar(&kind, "kind", "", "Lead kind (society|b2b); defaults to the template kind")
	cmd.Flags().StringVar(&status, "status", "", "Only leads in this status")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of leads")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render without sending")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}

func newLeadsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leads",
		Short: "Manage CRM leads",
	}
	cmd.AddCommand(newLeadsExportCmd(app))
	return cmd
}

func newLeadsExportCmd(app *App) *cobra.Command {
	var (
		out    string
		kind   string
		status string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export leads to an XLSX workbook",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer func() {
				if cerr := f.Close(); err == nil {
					err = cerr
				}
			}()

			n, err := app.CRM.ExportLeads(cmd.Context(), mapper.LeadFilter(kind, status, nil, 0), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d leads to %s\n", n, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "leads.xlsx", "Output file")
	cmd.Flags().StringVar(&kind, "kind", "", "Lead kind (society|b2b)")
	cmd.Flags().StringVar(&status, "status", "", "Lead status")
	return cmd
}
