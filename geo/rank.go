package geo

import (
	"math"
	"sort"

	"schoolapi/models"
)

// Rank annotates every school with its distance from origin and orders the
// result nearest first. Equal distances keep their input order; distances the
// formula cannot compute (NaN) come last.
func Rank(origin Point, schools []models.School) []models.SchoolDistance {
	out := make([]models.SchoolDistance, 0, len(schools))
	for _, s := range schools {
		lat := s.Latitude.InexactFloat64()
		lon := s.Longitude.InexactFloat64()
		out = append(out, models.SchoolDistance{
			ID:         s.ID,
			Name:       s.Name,
			Address:    s.Address,
			Latitude:   lat,
			Longitude:  lon,
			DistanceKm: DistanceKm(origin.Lat, origin.Lon, lat, lon),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i].DistanceKm, out[j].DistanceKm)
	})
	return out
}

// less orders NaN after every real distance so the sort stays well defined
// when a coordinate overflows the formula.
func less(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a < b
}
