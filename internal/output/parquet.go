package output

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/pitcast/pitcast/internal/cloudwriter"
	"github.com/pitcast/pitcast/internal/models"
)

// seriesRow is the parquet schema for one cached day. The fetch+parse cycle
// is the slow half of a run, so the aggregated series is cached and must
// round-trip exactly.
type seriesRow struct {
	Date       string   `parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	PulledPork float64  `parquet:"name=pulled_pork, type=DOUBLE"`
	Brisket    float64  `parquet:"name=brisket, type=DOUBLE"`
	TriTip     float64  `parquet:"name=tri_tip, type=DOUBLE"`
	Ends       float64  `parquet:"name=ends, type=DOUBLE"`
	Turkey     float64  `parquet:"name=turkey, type=DOUBLE"`
	Null       float64  `parquet:"name=null, type=DOUBLE"`
	Chickens   float64  `parquet:"name=chickens, type=DOUBLE"`
	Ribs       float64  `parquet:"name=ribs, type=DOUBLE"`
	High       *float64 `parquet:"name=high, type=DOUBLE"`
}

// SeriesCache round-trips the daily series through a parquet file.
type SeriesCache struct {
	path string
}

func NewSeriesCache(path string) *SeriesCache {
	return &SeriesCache{path: path}
}

func (c *SeriesCache) Write(series models.Series) error {
	fw, err := local.NewLocalFileWriter(c.path)
	if err != nil {
		return fmt.Errorf("failed to create local file writer: %w", err)
	}
	return writeSeriesParquet(fw, series)
}

// WriteCloud streams the cache file into object storage via a cloud writer.
func (c *SeriesCache) WriteCloud(ctx context.Context, factory cloudwriter.CloudWriterFactory, bucket, objectPath string, series models.Series) error {
	cw, err := factory.NewWriter(ctx, bucket, objectPath)
	if err != nil {
		return fmt.Errorf("failed to create cloud file writer: %w", err)
	}
	return writeSeriesParquet(newCloudParquetFile(cw), series)
}

func writeSeriesParquet(fw source.ParquetFile, series models.Series) error {
	pw, err := writer.NewParquetWriter(fw, new(seriesRow), 4)
	if err != nil {
		fw.Close()
		return fmt.Errorf("failed to create ParquetWriter: %w", err)
	}

	for _, d := range series {
		row := seriesRow{
			Date:       d.Date.Format("2006-01-02"),
			PulledPork: d.Weights[models.CategoryPulledPork],
			Brisket:    d.Weights[models.CategoryBrisket],
			TriTip:     d.Weights[models.CategoryTriTip],
			Ends:       d.Weights[models.CategoryEnds],
			Turkey:     d.Weights[models.CategoryTurkey],
			Null:       d.Weights[models.CategoryNull],
			Chickens:   d.Chickens,
			Ribs:       d.Ribs,
		}
		if d.High != nil {
			h := *d.High
			row.High = &h
		}
		if err := pw.Write(row); err != nil {
			fw.Close()
			return fmt.Errorf("failed to write series row: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return fw.Close()
}

// Read loads the cached series back, re-anchoring dates in loc so the
// calendar filter still sees the right weekdays.
func (c *SeriesCache) Read(loc *time.Location) (models.Series, error) {
	fr, err := local.NewLocalFileReader(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open series cache: %w", err)
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(seriesRow), 4)
	if err != nil {
		return nil, fmt.Errorf("failed to create ParquetReader: %w", err)
	}
	defer pr.ReadStop()

	rows := make([]seriesRow, pr.GetNumRows())
	if err := pr.Read(&rows); err != nil {
		return nil, fmt.Errorf("failed to read series rows: %w", err)
	}

	series := make(models.Series, 0, len(rows))
	for _, row := range rows {
		date, err := time.ParseInLocation("2006-01-02", row.Date, loc)
		if err != nil {
			return nil, fmt.Errorf("bad cached date %q: %w", row.Date, err)
		}
		d := models.NewDailyTotals(date)
		d.Weights[models.CategoryPulledPork] = row.PulledPork
		d.Weights[models.CategoryBrisket] = row.Brisket
		d.Weights[models.CategoryTriTip] = row.TriTip
		d.Weights[models.CategoryEnds] = row.Ends
		d.Weights[models.CategoryTurkey] = row.Turkey
		d.Weights[models.CategoryNull] = row.Null
		d.Chickens = row.Chickens
		d.Ribs = row.Ribs
		if row.High != nil {
			h := *row.High
			d.High = &h
		}
		series = append(series, d)
	}

	return series, nil
}

// cloudParquetFile adapts a CloudWriter to the parquet source interface.
// Objects are write-only: reads and end-relative seeks are not supported.
type cloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func newCloudParquetFile(cw cloudwriter.CloudWriter) *cloudParquetFile {
	return &cloudParquetFile{cloudWriter: cw}
}

func (c *cloudParquetFile) Open(name string) (source.ParquetFile, error)   { return c, nil }
func (c *cloudParquetFile) Create(name string) (source.ParquetFile, error) { return c, nil }

func (c *cloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	case io.SeekEnd:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *cloudParquetFile) Read(p []byte) (n int, err error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *cloudParquetFile) Write(p []byte) (n int, err error) {
	return c.cloudWriter.Write(p)
}

func (c *cloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}
