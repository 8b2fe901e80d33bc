package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinateKeepsColumnScale(t *testing.T) {
	s := School{
		ID:        3,
		Name:      "ABCD ACADEMY",
		Address:   "XYZ Lane",
		Latitude:  NewCoordinate(10.5),
		Longitude: NewCoordinate(-0.1234567),
	}

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"name":"ABCD ACADEMY","address":"XYZ Lane","latitude":"10.500000","longitude":"-0.123457"}`, string(b))
}

func TestCoordinateScansDriverBytes(t *testing.T) {
	var c Coordinate
	require.NoError(t, c.Scan([]byte("78.901000")))
	assert.Equal(t, 78.901, c.InexactFloat64())
}

func TestSchoolDistanceNonFinite(t *testing.T) {
	for _, d := range []float64{math.NaN(), math.Inf(1)} {
		b, err := json.Marshal(SchoolDistance{ID: 1, Name: "A", Address: "a", Latitude: 1, Longitude: 1, DistanceKm: d})
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":1,"name":"A","address":"a","latitude":1,"longitude":1,"distanceKm":null}`, string(b))
	}

	b, err := json.Marshal(SchoolDistance{ID: 2, DistanceKm: 12.5})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"distanceKm":12.5`)
}
