package models

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"
)

// coordinateScale matches the DECIMAL(10,6) columns.
const coordinateScale = 6

// Coordinate is a stored latitude or longitude. It serializes as a string
// with all six fractional digits, the way the MySQL driver returns it.
type Coordinate struct {
	decimal.Decimal
}

func NewCoordinate(f float64) Coordinate {
	return Coordinate{decimal.NewFromFloat(f).Round(coordinateScale)}
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.StringFixed(coordinateScale))
}

// School is a stored row.
type School struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	Latitude  Coordinate `json:"latitude"`
	Longitude Coordinate `json:"longitude"`
}

type NewSchool struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type SchoolDistance struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DistanceKm float64 `json:"distanceKm"`
}

// MarshalJSON writes a non-finite distance as null instead of failing the
// whole response.
func (s SchoolDistance) MarshalJSON() ([]byte, error) {
	type plain SchoolDistance
	out := struct {
		plain
		DistanceKm *float64 `json:"distanceKm"`
	}{plain: plain(s)}
	if !math.IsNaN(s.DistanceKm) && !math.IsInf(s.DistanceKm, 0) {
		out.DistanceKm = &s.DistanceKm
	}
	return json.Marshal(out)
}
