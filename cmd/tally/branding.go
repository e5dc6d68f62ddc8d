package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fernwood/tally/internal/cli"
	"github.com/spf13/cobra"
)

func brandingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branding",
		Short: "Invoice and email branding",
	}

	cmd.AddCommand(brandingShowCmd())
	cmd.AddCommand(brandingUpdateCmd())
	cmd.AddCommand(brandingLogoCmd())
	cmd.AddCommand(brandingPaletteCmd())
	cmd.AddCommand(brandingTestEmailCmd())

	return cmd
}

func brandingShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current branding",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, store, err := newAPIClient()
			if err != nil {
				return err
			}
			defer closeStore(store)

			branding, err := client.GetBranding(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch branding: %w", err)
			}

			logo := branding.LogoURL
			if logo == "" {
				logo = "none"
			}
			body := fmt.Sprintf("Business:  %s\nTag line:  %s\nLogo:      %s\nPrimary:   %s\nAccent:    %s",
				branding.BusinessName, branding.TagLine, logo,
				branding.PrimaryColor, branding.AccentColor)
			fmt.Println(cli.RenderBox("Branding", body)) //nolint:forbidigo // User-facing output

			return nil
		},
	}
}

func brandingUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update branding fields",
		RunE:  runBrandingUpdate,
	}

	cmd.Flags().String("name", "", "business name")
	cmd.Flags().String("tag-line", "", "tag line shown under the name")
	cmd.Flags().String("primary-color", "", "primary color (hex)")
	cmd.Flags().String("accent-color", "", "accent color (hex)")
	cmd.Flags().String("email-signature", "", "signature appended to invoice emails")

	return cmd
}

func runBrandingUpdate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, store, err := newAPIClient()
	if err != nil {
		return err
	}
	defer closeStore(store)

	branding, err := client.GetBranding(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch branding: %w", err)
	}

	changed := false
	if v, _ := cmd.Flags().GetString("name"); v != "" {
		branding.BusinessName = v
		changed = true
	}
	if v, _ := cmd.Flags().GetString("tag-line"); v != "" {
		branding.TagLine = v
		changed = true
	}
	if v, _ := cmd.Flags().GetString("primary-color"); v != "" {
		if err := validateHexColor(v); err != nil {
			return err
		}
		branding.PrimaryColor = v
		changed = true
	}
	if v, _ := cmd.Flags().GetString("accent-color"); v != "" {
		if err := validateHexColor(v); err != nil {
			return err
		}
		branding.AccentColor = v
		changed = true
	}
	if v, _ := cmd.Flags().GetString("email-signature"); v != "" {
		branding.EmailSignature = v
		changed = true
	}

	if !changed {
		return fmt.Errorf("no branding flags given; nothing to update")
	}

	if _, err := client.UpdateBranding(ctx, *branding); err != nil {
		return fmt.Errorf("failed to update branding: %w", err)
	}

	fmt.Println(cli.FormatSuccess("Branding updated")) //nolint:forbidigo // User-facing output

	return nil
}

func validateHexColor(s string) error {
	if len(s) != 7 || !strings.HasPrefix(s, "#") {
		return fmt.Errorf("color %q must look like #1A2B3C", s)
	}
	for _, r := range s[1:] {
		isHex := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
		if !isHex {
			return fmt.Errorf("color %q must look like #1A2B3C", s)
		}
	}
	return nil
}

func brandingLogoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logo [file]",
		Short: "Upload or remove the logo",
		Long: `Upload a logo image for invoices and emails, or remove the current
one with --remove.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runBrandingLogo,
	}

	cmd.Flags().Bool("remove", false, "remove the current logo")

	return cmd
}

func runBrandingLogo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	remove, _ := cmd.Flags().GetBool("remove")

	client, store, err := newAPIClient()
	if err != nil {
		return err
	}
	defer closeStore(store)

	if remove {
		if err := client.DeleteLogo(ctx); err != nil {
			return fmt.Errorf("failed to remove logo: %w", err)
		}
		fmt.Println(cli.FormatSuccess("Logo removed")) //nolint:forbidigo // User-facing output
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("a logo file is required (or --remove)")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close logo file", "error", closeErr)
		}
	}()

	branding, err := client.UploadLogo(ctx, filepath.Base(args[0]), f)
	if err != nil {
		return fmt.Errorf("failed to upload logo: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Logo uploaded: %s", branding.LogoURL))) //nolint:forbidigo // User-facing output

	return nil
}

func brandingPaletteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "Show colors extracted from the logo",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, store, err := newAPIClient()
			if err != nil {
				return err
			}
			defer closeStore(store)

			colors, err := client.ColorPalette(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch palette: %w", err)
			}

			if len(colors) == 0 {
				fmt.Println(cli.FormatInfo("No palette available; upload a logo first")) //nolint:forbidigo // User-facing output
				return nil
			}

			for _, c := range colors {
				fmt.Println(c) //nolint:forbidigo // User-facing output
			}

			return nil
		},
	}
}

func brandingTestEmailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test-email",
		Short: "Send a test email with the current branding",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			to, _ := cmd.Flags().GetString("to")
			if to == "" {
				return fmt.Errorf("a --to address is required")
			}

			client, store, err := newAPIClient()
			if err != nil {
				return err
			}
			defer closeStore(store)

			if err := client.SendTestEmail(ctx, to); err != nil {
				return fmt.Errorf("failed to send test email: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Test email sent to %s", to))) //nolint:forbidigo // User-facing output

			return nil
		},
	}

	cmd.Flags().String("to", "", "recipient address")

	return cmd
}
