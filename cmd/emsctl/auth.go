package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/employee-desk/v2/internal/auth"
	"github.com/employee-desk/v2/internal/session"
)

var errNotLoggedIn = errors.New("not logged in, run emsctl login first")

func newLoginCmd(c *cli) *cobra.Command {
	creds := auth.NewCredentials()
	var role string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := auth.ParseRole(role)
			if err != nil {
				return err
			}
			creds.Role = parsed
			if err := creds.Validate(); err != nil {
				return err
			}
			if err := session.Login(cmd.Context(), c.store, c.svc.Auth, c.tokens, creds); err != nil {
				return err
			}
			return c.printJSON(c.store.State().User)
		},
	}
	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password")
	cmd.Flags().StringVar(&role, "role", string(auth.DefaultRole), "account type [admin | employee]")
	return cmd
}

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return session.Logout(c.store, c.tokens)
		},
	}
}

func newWhoamiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the user of the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			restored, err := session.Restore(c.store, c.tokens, time.Now())
			if err != nil {
				return err
			}
			if !restored {
				return errNotLoggedIn
			}
			return c.printJSON(c.store.State().User)
		},
	}
}
