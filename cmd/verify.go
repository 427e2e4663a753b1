package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shopsynth-dev/shopsynth/internal/config"
	"github.com/shopsynth-dev/shopsynth/internal/profile"
	"github.com/shopsynth-dev/shopsynth/internal/verify"
)

var verifyDir string

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check an exported dataset's invariants",
	Long: `
Re-read the exported CSV tables and check every structural invariant:
contiguous customer IDs, valid customer and product references, no orphan
orders, category price bands, and exact payment reconciliation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		dir := cfg.OutputPath
		if cmd.Flags().Changed("dir") {
			dir = verifyDir
		}

		prof := profile.Default()
		if cfg.ProfilePath != "" {
			prof, err = profile.LoadFile(cfg.ProfilePath)
			if err != nil {
				return err
			}
		}
		if err := prof.Validate(); err != nil {
			return err
		}

		color.Cyan("🔍 Verifying dataset in %s", dir)

		report, err := verify.Dir(dir, prof)
		if err != nil {
			return err
		}

		for _, check := range report.Checks {
			if check.Err != nil {
				color.Red("❌ %s: %v", check.Name, check.Err)
			} else {
				color.Green("✅ %s", check.Name)
			}
		}

		if report.Failed() {
			return fmt.Errorf("dataset verification failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVar(&verifyDir, "dir", "data/raw", "Directory containing the exported CSV tables")
}
