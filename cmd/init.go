package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shopsynth-dev/shopsynth/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new shopsynth project",
	Long:  `Create shopsynth.config.json with default generation parameters and the output directory.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitializeProject(); err != nil {
			return err
		}

		color.Green("✅ Created %s", config.ConfigFileName)
		color.Cyan("💡 Run 'shopsynth generate' to produce the dataset")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
