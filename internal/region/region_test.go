package region

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustaphathe3rd/neighbourhood/internal/geo"
)

// Two adjacent unit squares: X covers lon 0..1, Y covers lon 1..2.
const twoStates = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"shapeName": "X"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]
      }
    },
    {
      "type": "Feature",
      "properties": {"shapeName": "Y"},
      "geometry": {
        "type": "MultiPolygon",
        "coordinates": [[[[1,0],[2,0],[2,1],[1,1],[1,0]]]]
      }
    }
  ]
}`

// A square with a square hole in the middle.
const holedState = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "Holed"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [
          [[0,0],[4,0],[4,4],[0,4],[0,0]],
          [[1,1],[3,1],[3,3],[1,3],[1,1]]
        ]
      }
    }
  ]
}`

func TestLoad(t *testing.T) {
	boundaries, err := Load(strings.NewReader(twoStates))
	require.NoError(t, err)
	require.Len(t, boundaries, 2)
	assert.Equal(t, "X", boundaries[0].Name)
	assert.Equal(t, "Y", boundaries[1].Name)

	t.Run("MalformedJSON", func(t *testing.T) {
		_, err := Load(strings.NewReader("{not json"))
		assert.Error(t, err)
	})

	t.Run("MissingName", func(t *testing.T) {
		_, err := Load(strings.NewReader(`{"features":[{"properties":{},"geometry":{"type":"Polygon","coordinates":[]}}]}`))
		assert.Error(t, err)
	})

	t.Run("UnsupportedGeometry", func(t *testing.T) {
		_, err := Load(strings.NewReader(`{"features":[{"properties":{"shapeName":"Z"},"geometry":{"type":"Point","coordinates":[0,0]}}]}`))
		assert.Error(t, err)
	})
}

func TestResolve(t *testing.T) {
	boundaries, err := Load(strings.NewReader(twoStates))
	require.NoError(t, err)
	r := NewResolver(boundaries, nil)

	tests := []struct {
		name     string
		point    geo.Point
		want     string
		resolved bool
	}{
		{"InsideX", geo.Point{Lat: 0.5, Lon: 0.5}, "X", true},
		{"InsideY", geo.Point{Lat: 0.5, Lon: 1.5}, "Y", true},
		{"Outside", geo.Point{Lat: 5, Lon: 5}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(tt.point)
			assert.Equal(t, tt.resolved, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveWithHole(t *testing.T) {
	boundaries, err := Load(strings.NewReader(holedState))
	require.NoError(t, err)
	r := NewResolver(boundaries, nil)

	_, ok := r.Resolve(geo.Point{Lat: 0.5, Lon: 0.5})
	assert.True(t, ok, "point between shell and hole")

	_, ok = r.Resolve(geo.Point{Lat: 2, Lon: 2})
	assert.False(t, ok, "point inside the hole")
}

func TestResolveOverlapIsDeterministic(t *testing.T) {
	// Degenerate data: identical polygons under two names. The first boundary
	// in dataset order must win every time.
	boundaries, err := Load(strings.NewReader(twoStates))
	require.NoError(t, err)
	boundaries[1].Polys = boundaries[0].Polys
	r := NewResolver(boundaries, nil)

	for i := 0; i < 10; i++ {
		got, ok := r.Resolve(geo.Point{Lat: 0.5, Lon: 0.5})
		require.True(t, ok)
		assert.Equal(t, "X", got)
	}
}

func TestDefaultRadiusKm(t *testing.T) {
	r := NewResolver(nil, map[string]int{"Rivers": 25, "Broken": 0})

	assert.Equal(t, 25, r.DefaultRadiusKm("Rivers"))
	assert.Equal(t, FallbackRadiusKm, r.DefaultRadiusKm("Lagos"))
	assert.Equal(t, FallbackRadiusKm, r.DefaultRadiusKm("Broken"))
}
