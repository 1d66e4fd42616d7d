package repositories

import (
	"context"
	"time"

	"github.com/pitcast/pitcast/internal/models"
)

type DailyTotalsRepository interface {
	BulkCreate(ctx context.Context, series models.Series) error
	GetAll(ctx context.Context, loc *time.Location) (models.Series, error)
	CreateSchema(ctx context.Context) error
}
