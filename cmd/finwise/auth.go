package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finwise/finwise-go/pkg/apierr"
	"github.com/finwise/finwise-go/pkg/authsession"
)

var (
	loginEmail    string
	loginPassword string
	loginMFACode  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and persist the session credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := newApp(ctx)
		if err != nil {
			return err
		}

		creds := authsession.Credentials{
			Email:    loginEmail,
			Password: loginPassword,
			MFACode:  loginMFACode,
		}
		err = app.Session.Login(ctx, creds)
		// A second factor turns the first pass into a prompt, not a failure.
		if err != nil && !apierr.IsMFARequired(err) {
			return err
		}
		if app.Session.Snapshot().AwaitingSecondFactor {
			code, err := promptLine(cmd, "Enter your 6-digit authenticator code: ")
			if err != nil {
				return err
			}
			creds.MFACode = code
			if err := app.Session.Login(ctx, creds); err != nil {
				return err
			}
		}

		snap := app.Session.Snapshot()
		if !snap.IsAuthenticated {
			return fmt.Errorf("login failed: %s", snap.Error)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s %s <%s>\n",
			snap.User.FirstName, snap.User.LastName, snap.User.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and discard the persisted credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := newApp(ctx)
		if err != nil {
			return err
		}
		app.Session.Logout(ctx)
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := newApp(ctx)
		if err != nil {
			return err
		}
		snap := app.Session.Snapshot()
		if !snap.IsAuthenticated {
			fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
			return nil
		}
		u := snap.User
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s <%s>\n", u.FirstName, u.LastName, u.Email)
		if u.MFAEnabled {
			fmt.Fprintln(cmd.OutOrStdout(), "Two-factor authentication: enabled")
		}
		if u.LastLogin != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Last login: %s\n", u.LastLogin.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password")
	loginCmd.Flags().StringVar(&loginMFACode, "mfa-code", "", "6-digit authenticator code, if already known")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}

func promptLine(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
