package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pitcast/pitcast/internal/generate"
	"github.com/pitcast/pitcast/internal/models"
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate synthetic raw orders for demos and fixtures",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		if cfg.GenDays == 0 {
			cfg.GenDays = viper.GetInt("days")
		}
		if cfg.GenOrdersPerDay == 0 {
			cfg.GenOrdersPerDay = viper.GetInt("orders-per-day")
		}

		orders := generate.New(cfg, loc).Orders()

		out := cfg.GenOutputFile
		if out == "" {
			out = viper.GetString("out")
		}
		file, err := os.Create(out)
		if err != nil {
			return err
		}
		defer file.Close()

		enc := json.NewEncoder(file)
		enc.SetIndent("", "  ")
		if err := enc.Encode(orders); err != nil {
			return err
		}

		log.Printf("wrote %d synthetic orders to %s", len(orders), out)
		return nil
	},
}

func init() {
	genCmd.Flags().Int("days", 30, "Number of days to generate")
	genCmd.Flags().Int("orders-per-day", 40, "Orders per day")
	genCmd.Flags().String("out", "orders.json", "Output file for generated orders")
	viper.BindPFlags(genCmd.Flags())

	rootCmd.AddCommand(genCmd)
}
