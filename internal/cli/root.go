// Package cli implements the toadctl management commands.
package cli

import (
	"github.com/RoyKeane94/toad/internal/usecase"

	"github.com/spf13/cobra"
)

// TokenIssuer mints bearer tokens for the HTTP API.
type TokenIssuer interface {
	Issue(userID string, staff bool) (string, error)
}

// App holds references to the services used by CLI commands.
type App struct {
	Accounts  usecase.AccountUsecaseInterface
	CRM       usecase.CRMUsecaseInterface
	Campaigns usecase.CampaignUsecaseInterface
	Tokens    TokenIssuer
}

// NewRootCmd creates the top-level "toadctl" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "toadctl",
		Short:         "Toad management commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newUsersCmd(app),
		newTokenCmd(app),
		newTrialsCmd(app),
		newCampaignCmd(app),
		newLeadsCmd(app),
	)

	return root
}
