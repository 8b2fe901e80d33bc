package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolapi/models"
)

func school(id int64, name string, lat, lon float64) models.School {
	return models.School{
		ID:        id,
		Name:      name,
		Address:   name + " street",
		Latitude:  models.NewCoordinate(lat),
		Longitude: models.NewCoordinate(lon),
	}
}

func TestRankOrdersNearestFirst(t *testing.T) {
	schools := []models.School{
		school(1, "far", 0, 90),
		school(2, "near", 0, 0),
		school(3, "middle", 0, 45),
	}

	got := Rank(Point{Lat: 0, Lon: 0}, schools)

	require.Len(t, got, 3)
	assert.Equal(t, []int64{2, 3, 1}, []int64{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, 0.0, got[0].DistanceKm)
	assert.InDelta(t, 10007.543, got[2].DistanceKm, 0.001)
	assert.Equal(t, 90.0, got[2].Longitude)
	assert.Equal(t, "far street", got[2].Address)
}

func TestRankKeepsInputOrderForTies(t *testing.T) {
	schools := []models.School{
		school(7, "east", 0, 10),
		school(3, "west", 0, -10),
		school(5, "north", 10, 0),
	}

	got := Rank(Point{}, schools)

	require.Len(t, got, 3)
	assert.Equal(t, int64(7), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}

func TestRankEmpty(t *testing.T) {
	got := Rank(Point{Lat: 1, Lon: 1}, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRankUncomputableDistances(t *testing.T) {
	schools := []models.School{
		school(1, "a", 1, 1),
		school(2, "b", 2, 2),
	}

	// 1e308 degrees overflows to +Inf in radians, so every distance is NaN.
	got := Rank(Point{Lat: 1e308, Lon: 0}, schools)
	require.Len(t, got, 2)
	assert.True(t, math.IsNaN(got[0].DistanceKm))
	assert.True(t, math.IsNaN(got[1].DistanceKm))
	assert.Equal(t, []int64{1, 2}, []int64{got[0].ID, got[1].ID})
}

func TestLessWithNaN(t *testing.T) {
	nan := math.NaN()
	assert.True(t, less(1, nan))
	assert.False(t, less(nan, 1))
	assert.False(t, less(nan, nan))
	assert.True(t, less(1, 2))
}
