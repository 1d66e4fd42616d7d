package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/viper"

	"github.com/pitcast/pitcast/internal/cloudwriter"
	"github.com/pitcast/pitcast/internal/fetch"
	"github.com/pitcast/pitcast/internal/models"
	"github.com/pitcast/pitcast/internal/output"
	"github.com/pitcast/pitcast/internal/pipeline"
	"github.com/pitcast/pitcast/internal/regress"
	"github.com/pitcast/pitcast/internal/repositories"
	"github.com/pitcast/pitcast/internal/repositories/postgres"
	"github.com/pitcast/pitcast/internal/weather"
)

// runPipeline is the root command's body: materialize the daily series
// (from cache, file, or the API), featurize it, fit a model per category,
// and deliver results to the configured sinks.
func runPipeline(ctx context.Context, cfg *models.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	series, err := materializeSeries(ctx, cfg, p)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no order data: the daily series is empty")
	}
	log.Printf("daily series covers %d days (%s .. %s)",
		len(series),
		series[0].Date.Format("2006-01-02"),
		series[len(series)-1].Date.Format("2006-01-02"))

	matrix, err := pipeline.Featurize(series, cfg.CategoryList(), cfg.WindowSize)
	if err != nil {
		return err
	}
	log.Printf("feature matrix: %d rows x %d columns", len(matrix.Rows), len(matrix.Columns))

	fits := fitModels(matrix, cfg)
	printFits(fits)

	return deliver(ctx, cfg, series)
}

func materializeSeries(ctx context.Context, cfg *models.Config, p *pipeline.Pipeline) (models.Series, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	if viper.GetBool("from-cache") {
		if cfg.CacheFile == "" {
			return nil, fmt.Errorf("--from-cache needs cache_file set")
		}
		log.Printf("loading daily series from cache %s", cfg.CacheFile)
		return output.NewSeriesCache(cfg.CacheFile).Read(loc)
	}

	orders, err := loadOrders(ctx, cfg)
	if err != nil {
		return nil, err
	}

	highs := map[string]float64{}
	if cfg.WeatherFile != "" {
		highs, err = weather.LoadCSV(cfg.WeatherFile)
		if err != nil {
			return nil, fmt.Errorf("loading weather table: %w", err)
		}
	}

	series, stats := p.BuildSeries(orders, highs)
	if stats.MalformedOrders > 0 {
		log.Printf("skipped %d malformed orders", stats.MalformedOrders)
	}
	if stats.MissingWeather > 0 {
		log.Printf("%d days had no weather reading", stats.MissingWeather)
	}

	if cfg.CacheFile != "" {
		if err := output.NewSeriesCache(cfg.CacheFile).Write(series); err != nil {
			return nil, fmt.Errorf("writing series cache: %w", err)
		}
		log.Printf("cached daily series to %s", cfg.CacheFile)
	}

	return series, nil
}

func loadOrders(ctx context.Context, cfg *models.Config) ([]models.RawOrder, error) {
	if path := viper.GetString("orders-file"); path != "" {
		return readOrdersFile(path)
	}

	if cfg.MerchantID == "" || cfg.APIToken == "" {
		return nil, fmt.Errorf("no orders source: set merchant_id and api_token, or pass --orders-file")
	}

	var cache fetch.Cache
	if cfg.RedisEnabled {
		rc := fetch.NewRedisCache(cfg)
		defer rc.Close()
		cache = rc
	}

	return fetch.NewClient(cfg, cache).FetchOrders(ctx)
}

// readOrdersFile accepts either a bare JSON array of orders or the API's
// {"elements": [...]} wrapper.
func readOrdersFile(path string) ([]models.RawOrder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapped struct {
		Elements []models.RawOrder `json:"elements"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Elements != nil {
		return wrapped.Elements, nil
	}

	var orders []models.RawOrder
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("parsing orders file %s: %w", path, err)
	}
	return orders, nil
}

// fitModels fits one model per demand category. The temperature key is a
// predictor, never a target.
func fitModels(matrix *models.FeatureMatrix, cfg *models.Config) map[models.Category]*regress.Model {
	fits := make(map[models.Category]*regress.Model)
	for _, cat := range cfg.CategoryList() {
		if cat == models.CategoryHigh {
			continue
		}
		m, err := regress.FitCategory(matrix, cat, cfg.WindowSize)
		if err != nil {
			log.Printf("skipping model for %s: %v", cat, err)
			continue
		}
		fits[cat] = m
	}
	return fits
}

func printFits(fits map[models.Category]*regress.Model) {
	for cat, m := range fits {
		fmt.Printf("%-12s r2=%.3f intercept=%.4f n=%d\n", cat, m.R2, m.Intercept, m.NObs)
	}
}

// deliver pushes the series to every enabled sink.
func deliver(ctx context.Context, cfg *models.Config, series models.Series) error {
	if cfg.KafkaEnabled {
		kafka, err := output.NewKafkaOutput(strings.Split(cfg.KafkaBrokerList, ","))
		if err != nil {
			return err
		}
		defer kafka.Close()
		if err := output.WriteSeries(kafka, cfg.KafkaTopic, series); err != nil {
			return fmt.Errorf("publishing to kafka: %w", err)
		}
	}

	if cfg.PostgresEnabled {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connecting to postgres: %w", err)
		}
		defer pool.Close()

		var repo repositories.DailyTotalsRepository = postgres.NewDailyTotalsRepository(pool)
		if err := repo.CreateSchema(ctx); err != nil {
			return err
		}
		if err := repo.BulkCreate(ctx, series); err != nil {
			return fmt.Errorf("persisting daily totals: %w", err)
		}
	}

	if cfg.OutputDestination == "s3" && cfg.CacheFile != "" {
		factory, err := cloudwriter.NewS3WriterFactory(ctx, cfg.CloudStorage.Region)
		if err != nil {
			return err
		}
		cache := output.NewSeriesCache(cfg.CacheFile)
		objectPath := cfg.OutputFolder + "/series.parquet"
		if err := cache.WriteCloud(ctx, factory, cfg.CloudStorage.BucketName, objectPath, series); err != nil {
			return fmt.Errorf("uploading series to s3: %w", err)
		}
	}

	return nil
}
