package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts",
	}
	cmd.AddCommand(newUsersCreateCmd(app), newUsersShowCmd(app))
	return cmd
}

func newUsersShowCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print an account looked up by email",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.Accounts.UserByEmail(cmd.Context(), email)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id:       %s\n", user.ID)
			fmt.Fprintf(out, "email:    %s\n", user.Email)
			fmt.Fprintf(out, "tier:     %s (%s)\n", user.Tier, user.TierSource)
			fmt.Fprintf(out, "verified: %t\n", user.EmailVerified)
			fmt.Fprintf(out, "staff:    %t\n", user.IsStaff)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newUsersCreateCmd(app *App) *cobra.Command {
	var (
		email    string
		username string
		staff    bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a free account and send its verification email",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.Accounts.CreateUser(cmd.Context(), email, username, staff)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s)\n", user.ID, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&username, "username", "", "Display name")
	cmd.Flags().BoolVar(&staff, "staff", false, "Grant CRM access")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newTokenCmd(app *App) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API bearer token for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Tokens == nil {
				return errors.New("token issuer is not configured")
			}
			user, err := app.Accounts.Me(cmd.Context(), userID)
			if err != nil {
				return err
			}
			token, err := app.Tokens.Issue(user.ID, user.IsStaff)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newTrialsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trials",
		Short: "Manage trials",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "expire",
		Short: "Downgrade every user whose trial has ended",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, report, err := app.Accounts.ExpireTrials(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "expired %d trials: %d projects archived, %d unshared, %d groups deactivated\n",
				n, report.ProjectsArchived, report.ProjectsUnshared, report.GroupsDeactivated)
			return nil
		},
	})
	return cmd
}
