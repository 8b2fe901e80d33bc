package main

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"schoolapi/db"
	"schoolapi/geo"
	"schoolapi/metrics"
	"schoolapi/models"
)

type loadResult struct {
	Inserted int
	Skipped  int
}

// parseRow expects name, address, latitude, longitude. Extra columns are ignored.
func parseRow(row []string) (models.NewSchool, error) {
	if len(row) < 4 {
		return models.NewSchool{}, errors.Errorf("want 4 columns, got %d", len(row))
	}
	name := strings.TrimSpace(row[0])
	address := strings.TrimSpace(row[1])
	if name == "" || address == "" {
		return models.NewSchool{}, errors.New("name and address are required")
	}
	lat, err := geo.ParseCoordinateString(row[2])
	if err != nil {
		return models.NewSchool{}, errors.Wrap(err, "latitude")
	}
	lon, err := geo.ParseCoordinateString(row[3])
	if err != nil {
		return models.NewSchool{}, errors.Wrap(err, "longitude")
	}
	return models.NewSchool{Name: name, Address: address, Latitude: lat, Longitude: lon}, nil
}

// load inserts every valid row. Bad rows are logged and skipped; a store
// error stops the run.
func load(ctx context.Context, store db.Store, r io.Reader, comma rune, skipHeader bool, log *zap.Logger) (loadResult, error) {
	var res loadResult

	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1

	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return res, nil
		}
		line++
		if err != nil {
			return res, errors.Wrapf(err, "read line %d", line)
		}
		if line == 1 && skipHeader {
			continue
		}

		school, err := parseRow(row)
		if err != nil {
			log.Warn("skipping row", zap.Int("line", line), zap.Error(err))
			res.Skipped++
			continue
		}

		if _, err := store.InsertSchool(ctx, school); err != nil {
			return res, errors.Wrapf(err, "line %d", line)
		}
		metrics.SchoolsAdded.Inc()
		res.Inserted++
	}
}
