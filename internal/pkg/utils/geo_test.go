package utils

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateHaversineDistance_SamePointIsZero(t *testing.T) {
	points := [][2]float64{{0, 0}, {10, 20}, {-33.8688, 151.2093}, {89.9, -179.9}}
	for _, p := range points {
		assert.Equal(t, 0.0, CalculateHaversineDistance(p[0], p[1], p[0], p[1]))
	}
}

func TestCalculateHaversineDistance_Symmetric(t *testing.T) {
	pairs := [][4]float64{
		{10, 20, 10.0003, 20.0003},
		{-6.2, 106.8, 1.35, 103.82},
		{51.5074, -0.1278, 40.7128, -74.0060},
		{-38.153, 137.698, 22.044, 50.394},
	}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20000; i++ {
		pairs = append(pairs, [4]float64{
			rng.Float64()*180 - 90, rng.Float64()*360 - 180,
			rng.Float64()*180 - 90, rng.Float64()*360 - 180,
		})
	}

	for _, p := range pairs {
		ab := CalculateHaversineDistance(p[0], p[1], p[2], p[3])
		ba := CalculateHaversineDistance(p[2], p[3], p[0], p[1])
		if ab != ba {
			t.Fatalf("distance not symmetric for %v: %v != %v", p, ab, ba)
		}
	}
}

func TestCalculateHaversineDistance_KnownDistances(t *testing.T) {
	// One degree of latitude is ~111.19 km on a 6371 km sphere.
	assert.InDelta(t, 111195, CalculateHaversineDistance(0, 0, 1, 0), 1)

	near := CalculateHaversineDistance(10.0003, 20.0003, 10.0, 20.0)
	assert.InDelta(t, 46.8, near, 0.5)
	assert.Less(t, near, 100.0)

	far := CalculateHaversineDistance(10.01, 20.01, 10.0, 20.0)
	assert.InDelta(t, 1560.6, far, 2)
}

func TestFormatCoordinates(t *testing.T) {
	assert.Equal(t, "10.01, 20.01", FormatCoordinates(10.01, 20.01))
	assert.Equal(t, "-6.2, 106", FormatCoordinates(-6.2, 106))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 8.5, RoundTo(8.499999, 2))
	assert.Equal(t, 7.33, RoundTo(7.3333, 2))
	assert.Equal(t, 0.0, RoundTo(0.001, 2))
}
