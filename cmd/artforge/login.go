package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gageg/artforge/internal/browser"
	"github.com/gageg/artforge/internal/config"
	"github.com/gageg/artforge/internal/provider"
)

var loginCmd = &cobra.Command{
	Use:   "login [site]",
	Short: "Open a site for manual login",
	Long: `Open the given generation site (or Instagram, the default) in the
persistent browser profile so you can log in by hand. The session is
stored in the profile and reused by every later run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.ProfileDir == "" {
		return fmt.Errorf("PROFILE_DIR is required for login")
	}

	url := "https://www.instagram.com/"
	name := "instagram"
	if len(args) == 1 && args[0] != "instagram" {
		site, err := provider.SiteByName(args[0])
		if err != nil {
			return err
		}
		url, name = site.URL, site.Name
	}

	// Login is always headful; a window is the whole point.
	session, err := browser.NewSession(ctx, browser.Config{ProfileDir: cfg.ProfileDir})
	if err != nil {
		return fmt.Errorf("start browser: %w", err)
	}
	defer session.Close()

	page, err := session.Open(ctx, url)
	if err != nil {
		return err
	}
	defer page.Close()

	fmt.Printf("Log in to %s in the browser window, then press Enter here.\n", name)
	_, _ = bufio.NewReader(os.Stdin).ReadString('\n')

	fmt.Println("Session saved in the browser profile.")
	return nil
}
