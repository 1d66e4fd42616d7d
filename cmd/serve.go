package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/pitcast/pitcast/internal/dashboard"
	"github.com/pitcast/pitcast/internal/models"
	"github.com/pitcast/pitcast/internal/output"
	"github.com/pitcast/pitcast/internal/pipeline"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the demand dashboard from the cached daily series",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cfg.CacheFile == "" {
			return fmt.Errorf("serve needs cache_file: run the pipeline first to build the series cache")
		}

		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		series, err := output.NewSeriesCache(cfg.CacheFile).Read(loc)
		if err != nil {
			return fmt.Errorf("reading series cache: %w", err)
		}

		matrix, err := pipeline.Featurize(series, cfg.CategoryList(), cfg.WindowSize)
		if err != nil {
			return err
		}

		srv := dashboard.NewServer(series, fitModels(matrix, cfg), cfg.WindowSize, cfg.SafetyMargin)
		log.Printf("dashboard listening on %s", cfg.DashboardAddr)
		return srv.ListenAndServe(cfg.DashboardAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
