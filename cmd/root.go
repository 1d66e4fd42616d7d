package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pitcast/pitcast/internal/models"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pitcast",
	Short: "Builds lagged demand features from smokehouse POS orders",
	Long: `pitcast turns raw point-of-sale orders into a per-day, per-category demand
series, reshapes it into fixed-width lag features, and fits a linear demand
model per category for next-day prep planning.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		if err := runPipeline(cmd.Context(), cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is examples/config.json)")

	rootCmd.Flags().String("merchant-id", "", "Merchant ID for the orders API")
	rootCmd.Flags().String("api-token", "", "Bearer token for the orders API")
	rootCmd.Flags().String("orders-file", "", "Read raw orders from a JSON file instead of the API")
	rootCmd.Flags().String("weather-file", "", "CSV of date,high daily temperatures")
	rootCmd.Flags().Int("window-size", 7, "Window size W for lag features")
	rootCmd.Flags().String("excluded-weekday", "Sunday", "Weekday dropped from the series")
	rootCmd.Flags().String("cache-file", "", "Parquet cache path for the daily series")
	rootCmd.Flags().Bool("from-cache", false, "Load the daily series from the parquet cache")
	rootCmd.Flags().Bool("kafka-enabled", false, "Publish daily totals to Kafka")
	rootCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	rootCmd.Flags().Bool("postgres-enabled", false, "Persist the daily series to Postgres")
	rootCmd.Flags().Bool("redis-enabled", false, "Cache fetched order pages in Redis")
	rootCmd.Flags().String("redis-addr", "localhost:6379", "Redis address for the page cache")

	viper.BindPFlags(rootCmd.Flags())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
