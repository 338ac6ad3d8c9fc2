package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/cwbudde/arcfit/internal/geom"
)

// ReadPoints loads an ordered point sequence from a CSV file with one "x,y"
// pair per row. A leading header row is skipped if its first field is not
// numeric.
func ReadPoints(path string) ([]geom.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open points file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read points file: %w", err)
	}

	points := make([]geom.Point, 0, len(records))
	for i, rec := range records {
		x, errX := strconv.ParseFloat(rec[0], 64)
		y, errY := strconv.ParseFloat(rec[1], 64)
		if errX != nil || errY != nil {
			if i == 0 {
				// Header row.
				continue
			}
			return nil, fmt.Errorf("invalid point on line %d: %q,%q", i+1, rec[0], rec[1])
		}
		points = append(points, geom.Pt(x, y))
	}

	return points, nil
}

// WritePoints saves an ordered point sequence as CSV, one "x,y" pair per
// row, with a header.
func WritePoints(path string, points []geom.Point) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create points file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"x", "y"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, p := range points {
		rec := []string{
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.Y, 'g', -1, 64),
		}
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("failed to write point: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush points file: %w", err)
	}
	return nil
}
