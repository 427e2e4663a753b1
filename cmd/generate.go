package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shopsynth-dev/shopsynth/internal/config"
	"github.com/shopsynth-dev/shopsynth/internal/dataset"
	"github.com/shopsynth-dev/shopsynth/internal/export"
	"github.com/shopsynth-dev/shopsynth/internal/profile"
	"github.com/shopsynth-dev/shopsynth/internal/synth"
)

var (
	genSeed      int64
	genCustomers int
	genProducts  int
	genOrders    int
	genStart     string
	genEnd       string
	genOut       string
	genProfile   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the dataset and write CSV tables",
	Long: `
Generate customers, products, orders, order items and payments in dependency
order and write one CSV file per table to the output directory.

Flags override values from shopsynth.config.json. The same seed and
parameters always produce byte-identical files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, prof, err := loadRunConfig(cmd)
		if err != nil {
			return err
		}

		ds, err := buildDataset(cfg, prof)
		if err != nil {
			return err
		}

		if err := export.WriteCSV(ds, cfg.OutputPath); err != nil {
			return err
		}

		color.Green("✅ Dataset written to %s", cfg.OutputPath)
		printSummary(ds)
		return nil
	},
}

// loadRunConfig loads and validates config plus profile, applying any flag
// overrides. Shared by generate and seed.
func loadRunConfig(cmd *cobra.Command) (*config.Config, *profile.Profile, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = genSeed
	}
	if flags.Changed("customers") {
		cfg.Customers = genCustomers
	}
	if flags.Changed("products") {
		cfg.Products = genProducts
	}
	if flags.Changed("orders") {
		cfg.Orders = genOrders
	}
	if flags.Changed("start") {
		cfg.StartDate = genStart
	}
	if flags.Changed("end") {
		cfg.EndDate = genEnd
	}
	if flags.Changed("out") {
		cfg.OutputPath = genOut
	}
	if flags.Changed("profile") {
		cfg.ProfilePath = genProfile
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	prof := profile.Default()
	if cfg.ProfilePath != "" {
		prof, err = profile.LoadFile(cfg.ProfilePath)
		if err != nil {
			return nil, nil, err
		}
	}
	if err := prof.Validate(); err != nil {
		return nil, nil, err
	}

	return cfg, prof, nil
}

func buildDataset(cfg *config.Config, prof *profile.Profile) (*dataset.Dataset, error) {
	start, end, err := cfg.DateRange()
	if err != nil {
		return nil, err
	}

	color.Cyan("🛒 Generating dataset (seed=%d)...", cfg.Seed)

	gen := synth.New(synth.Params{
		Seed:             cfg.Seed,
		Customers:        cfg.Customers,
		Products:         cfg.Products,
		Orders:           cfg.Orders,
		Start:            start,
		End:              end,
		MaxItemsPerOrder: cfg.MaxItemsPerOrder,
		MaxQuantity:      cfg.MaxQuantity,
	}, prof)

	return gen.Generate(), nil
}

func printSummary(ds *dataset.Dataset) {
	fmt.Println()
	color.Cyan("📊 Table summary:")
	fmt.Printf("   customers:   %d rows\n", len(ds.Customers))
	fmt.Printf("   products:    %d rows\n", len(ds.Products))
	fmt.Printf("   orders:      %d rows\n", len(ds.Orders))
	fmt.Printf("   order_items: %d rows\n", len(ds.Items))
	fmt.Printf("   payments:    %d rows\n", len(ds.Payments))
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().Int64Var(&genSeed, "seed", 42, "Random seed")
	generateCmd.Flags().IntVar(&genCustomers, "customers", 1500, "Number of customers")
	generateCmd.Flags().IntVar(&genProducts, "products", 300, "Number of products")
	generateCmd.Flags().IntVar(&genOrders, "orders", 8000, "Number of orders")
	generateCmd.Flags().StringVar(&genStart, "start", "2023-01-01", "Order date range start (YYYY-MM-DD)")
	generateCmd.Flags().StringVar(&genEnd, "end", "2024-12-31", "Order date range end (YYYY-MM-DD)")
	generateCmd.Flags().StringVar(&genOut, "out", "data/raw", "Output directory")
	generateCmd.Flags().StringVar(&genProfile, "profile", "", "Distribution profile YAML file")
}
