package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "1.2.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════════╗",
		"║   ███████╗██╗  ██╗ ██████╗ ██████╗                   ║",
		"║   ██╔════╝██║  ██║██╔═══██╗██╔══██╗                  ║",
		"║   ███████╗███████║██║   ██║██████╔╝                  ║",
		"║   ╚════██║██╔══██║██║   ██║██╔═══╝                   ║",
		"║   ███████║██║  ██║╚██████╔╝██║                       ║",
		"║   ╚══════╝╚═╝  ╚═╝ ╚═════╝ ╚═╝ synth                 ║",
		"║                                                      ║",
		"║   🛒 Deterministic e-commerce dataset generator       ║",
		"╚══════════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "shopsynth",
	Short: "Synthesize a consistent fictitious e-commerce dataset",
	Long: `
shopsynth generates a seeded, reproducible e-commerce dataset — customers,
products, orders, order line items and payments — with full referential
integrity and exact payment reconciliation, and writes it as CSV tables
for downstream analytics work.

The same seed and parameters always produce byte-identical output.`,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("shopsynth version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./shopsynth.config.json)")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("shopsynth.config")
	}

	viper.SetEnvPrefix("SHOPSYNTH")
	viper.AutomaticEnv()

	viper.ReadInConfig()
}
