package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pitcast/pitcast/internal/models"
)

// DailyTotalsRepository persists the aggregated daily series so downstream
// jobs can query it without re-running the fetch+parse cycle.
type DailyTotalsRepository struct {
	pool *pgxpool.Pool
}

func NewDailyTotalsRepository(pool *pgxpool.Pool) *DailyTotalsRepository {
	return &DailyTotalsRepository{pool: pool}
}

// BulkCreate replaces the stored series with the given one.
func (r *DailyTotalsRepository) BulkCreate(ctx context.Context, series models.Series) error {
	if _, err := r.pool.Exec(ctx, `TRUNCATE daily_totals`); err != nil {
		return err
	}

	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"daily_totals"},
		[]string{
			"date", "pulled_pork", "brisket", "tri_tip", "ends",
			"turkey", "null_lbs", "chickens", "ribs", "high",
		},
		pgx.CopyFromSlice(len(series), func(i int) ([]interface{}, error) {
			d := series[i]
			var high interface{}
			if d.High != nil {
				high = *d.High
			}
			return []interface{}{
				d.Date,
				d.Weights[models.CategoryPulledPork],
				d.Weights[models.CategoryBrisket],
				d.Weights[models.CategoryTriTip],
				d.Weights[models.CategoryEnds],
				d.Weights[models.CategoryTurkey],
				d.Weights[models.CategoryNull],
				d.Chickens,
				d.Ribs,
				high,
			}, nil
		}),
	)
	return err
}

// GetAll reads the stored series back in date order, anchored in loc.
func (r *DailyTotalsRepository) GetAll(ctx context.Context, loc *time.Location) (models.Series, error) {
	query := `
        SELECT
            date, pulled_pork, brisket, tri_tip, ends,
            turkey, null_lbs, chickens, ribs, high
        FROM daily_totals
        ORDER BY date
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var series models.Series
	for rows.Next() {
		var (
			date time.Time
			high *float64
		)
		d := models.NewDailyTotals(time.Time{})
		var pulledPork, brisket, triTip, ends, turkey, null float64
		if err := rows.Scan(
			&date, &pulledPork, &brisket, &triTip, &ends,
			&turkey, &null, &d.Chickens, &d.Ribs, &high,
		); err != nil {
			return nil, err
		}
		y, m, day := date.In(loc).Date()
		d.Date = time.Date(y, m, day, 0, 0, 0, 0, loc)
		d.Weights[models.CategoryPulledPork] = pulledPork
		d.Weights[models.CategoryBrisket] = brisket
		d.Weights[models.CategoryTriTip] = triTip
		d.Weights[models.CategoryEnds] = ends
		d.Weights[models.CategoryTurkey] = turkey
		d.Weights[models.CategoryNull] = null
		d.High = high
		series = append(series, d)
	}

	return series, rows.Err()
}

// CreateSchema sets up the daily_totals table if missing.
func (r *DailyTotalsRepository) CreateSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS daily_totals (
            date        date PRIMARY KEY,
            pulled_pork double precision NOT NULL DEFAULT 0,
            brisket     double precision NOT NULL DEFAULT 0,
            tri_tip     double precision NOT NULL DEFAULT 0,
            ends        double precision NOT NULL DEFAULT 0,
            turkey      double precision NOT NULL DEFAULT 0,
            null_lbs    double precision NOT NULL DEFAULT 0,
            chickens    double precision NOT NULL DEFAULT 0,
            ribs        double precision NOT NULL DEFAULT 0,
            high        double precision
        )
    `)
	return err
}
