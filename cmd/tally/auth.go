package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"github.com/fernwood/tally/internal/api"
	"github.com/fernwood/tally/internal/cli"
	"github.com/fernwood/tally/internal/session"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the dashboard session",
		Long:  `Log in to the dashboard API and manage the saved session token.`,
	}

	cmd.AddCommand(authLoginCmd())
	cmd.AddCommand(authLogoutCmd())
	cmd.AddCommand(authStatusCmd())

	return cmd
}

func authLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save a session token",
		Long: `Log in to the dashboard API with your email and password.

The bearer token is saved locally, so later commands and the dashboard
can authenticate without prompting again.`,
		RunE: runAuthLogin,
	}

	cmd.Flags().String("email", "", "account email (prompted if omitted)")

	return cmd
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		fmt.Print("Email: ") //nolint:forbidigo // User-facing output
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}
		email = strings.TrimSpace(line)
	}
	if email == "" {
		return fmt.Errorf("an email is required to log in")
	}

	fmt.Print("Password: ") //nolint:forbidigo // User-facing output
	password, err := term.ReadPassword(syscall.Stdin)
	fmt.Println() //nolint:forbidigo // User-facing output
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(password) == 0 {
		return fmt.Errorf("a password is required to log in")
	}

	client, store, err := newAPIClient()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Warn("Failed to close session store", "error", closeErr)
		}
	}()

	token, err := client.Login(ctx, email, string(password))
	if err != nil {
		if api.IsUnauthorized(err) {
			return fmt.Errorf("login rejected: check your email and password")
		}
		return fmt.Errorf("login failed: %w", err)
	}

	if err := store.SaveToken(token, email); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Logged in as %s", email))) //nolint:forbidigo // User-facing output

	return nil
}

func authLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the saved session token",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := openSession()
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					slog.Warn("Failed to close session store", "error", closeErr)
				}
			}()

			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Logged out")) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}

func authStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := openSession()
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					slog.Warn("Failed to close session store", "error", closeErr)
				}
			}()

			token, err := store.Token()
			if err != nil {
				if errors.Is(err, session.ErrNoSession) {
					fmt.Println(cli.FormatWarning("Not logged in. Run: tally auth login")) //nolint:forbidigo // User-facing output
					return nil
				}
				return fmt.Errorf("failed to read session: %w", err)
			}

			email, err := store.Email()
			if err != nil {
				return fmt.Errorf("failed to read session: %w", err)
			}

			status := fmt.Sprintf("Logged in as %s", email)
			if !token.Expiry.IsZero() {
				if token.Valid() {
					status += fmt.Sprintf(" (token expires %s)", token.Expiry.Format("2006-01-02 15:04"))
				} else {
					status += " (token expired; log in again)"
				}
			}

			fmt.Println(cli.FormatInfo(status)) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}
