package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finwise/finwise-go/pkg/mfa"
)

var mfaQROut string

var mfaCmd = &cobra.Command{
	Use:   "mfa",
	Short: "Manage two-factor authentication",
}

var mfaSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Begin enrolling an authenticator app",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := newApp(ctx)
		if err != nil {
			return err
		}
		snap := app.Session.Snapshot()
		if !snap.IsAuthenticated {
			return fmt.Errorf("not signed in; run `finwise login` first")
		}

		setup, err := app.Client.SetupMFA(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Secret: %s\n", setup.Secret)
		if len(setup.BackupCodes) > 0 {
			fmt.Fprintln(out, "Backup codes (store these somewhere safe):")
			for _, code := range setup.BackupCodes {
				fmt.Fprintf(out, "  %s\n", code)
			}
		}

		uri, err := mfa.ProvisioningURI(setup.Secret, snap.User.Email, "")
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Provisioning URI: %s\n", uri)

		if mfaQROut != "" {
			png, err := mfa.QRCodePNG(uri, 256)
			if err != nil {
				return err
			}
			if err := os.WriteFile(mfaQROut, png, 0o600); err != nil {
				return fmt.Errorf("write QR code: %w", err)
			}
			fmt.Fprintf(out, "QR code written to %s\n", mfaQROut)
		}

		fmt.Fprintln(out, "Scan the code, then run `finwise mfa verify --code <code>` to finish.")
		return nil
	},
}

var mfaVerifyCode string

var mfaVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Confirm authenticator enrollment with a one-time code",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := newApp(ctx)
		if err != nil {
			return err
		}
		ok, err := app.Client.VerifyMFA(ctx, mfaVerifyCode)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("code rejected; check your authenticator clock and try again")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Two-factor authentication enabled.")
		return nil
	},
}

func init() {
	mfaCmd.AddCommand(mfaSetupCmd, mfaVerifyCmd)
	mfaSetupCmd.Flags().StringVar(&mfaQROut, "qr-out", "", "write the provisioning QR code PNG to this file")
	mfaVerifyCmd.Flags().StringVar(&mfaVerifyCode, "code", "", "6-digit authenticator code")
	_ = mfaVerifyCmd.MarkFlagRequired("code")
}
