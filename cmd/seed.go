package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shopsynth-dev/shopsynth/internal/loader"
)

var seedTruncate bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate the dataset and load it into a database",
	Long: `
Generate the dataset and insert it into the configured SQL database
(postgresql, mysql or sqlite). Tables are created first and rows are
inserted in dependency order inside a transaction.

The connection URL is read from the environment variable named by
database.url_env in the config (DATABASE_URL by default).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, prof, err := loadRunConfig(cmd)
		if err != nil {
			return err
		}

		dbURL, err := cfg.GetDatabaseURL()
		if err != nil {
			return err
		}

		ds, err := buildDataset(cfg, prof)
		if err != nil {
			return err
		}

		ctx := context.Background()

		l, err := loader.Open(ctx, cfg.Database.Provider, dbURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer l.Close()

		color.Cyan("🌱 Loading dataset into %s...", cfg.Database.Provider)
		if err := l.Load(ctx, ds, seedTruncate); err != nil {
			return err
		}

		color.Green("✅ Database seeded")
		printSummary(ds)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().BoolVar(&seedTruncate, "truncate", false, "Drop and recreate tables before loading")
}
