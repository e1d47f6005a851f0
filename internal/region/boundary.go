// Package region maps coordinates to administrative regions. Boundaries are
// loaded once at startup from a GeoJSON FeatureCollection (ADM1-style state
// polygons) and held immutable in memory; many concurrent searches read them
// without coordination. The package also owns the region-to-default-radius
// lookup used to pre-fill search radii.
package region

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mustaphathe3rd/neighbourhood/internal/geo"
)

// Boundary is one named region with its polygon set.
type Boundary struct {
	Name  string
	Polys []Polygon
}

// Polygon follows the GeoJSON ring convention: the first ring is the outer
// shell, any further rings are holes. The bounding box is precomputed at load
// time as a cheap containment prefilter.
type Polygon struct {
	Rings [][]geo.Point
	bbox  [4]float64 // minLon, minLat, maxLon, maxLat
}

// geoJSON is the subset of a FeatureCollection the loader reads.
type geoJSON struct {
	Features []struct {
		Properties map[string]any `json:"properties"`
		Geometry   struct {
			Type        string          `json:"type"`
			Coordinates json.RawMessage `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Load parses boundaries from a GeoJSON FeatureCollection. The region name is
// taken from the shapeName property (geoBoundaries convention), falling back
// to name. Geometry must be Polygon or MultiPolygon.
func Load(r io.Reader) ([]Boundary, error) {
	var doc geoJSON
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse boundary dataset: %w", err)
	}

	boundaries := make([]Boundary, 0, len(doc.Features))
	for i, feature := range doc.Features {
		name := propertyString(feature.Properties, "shapeName")
		if name == "" {
			name = propertyString(feature.Properties, "name")
		}
		if name == "" {
			return nil, fmt.Errorf("boundary feature %d has no shapeName or name property", i)
		}

		var polys []Polygon
		switch feature.Geometry.Type {
		case "Polygon":
			var coords [][][]float64
			if err := json.Unmarshal(feature.Geometry.Coordinates, &coords); err != nil {
				return nil, fmt.Errorf("boundary %q: malformed Polygon coordinates: %w", name, err)
			}
			polys = append(polys, newPolygon(coords))
		case "MultiPolygon":
			var coords [][][][]float64
			if err := json.Unmarshal(feature.Geometry.Coordinates, &coords); err != nil {
				return nil, fmt.Errorf("boundary %q: malformed MultiPolygon coordinates: %w", name, err)
			}
			for _, poly := range coords {
				polys = append(polys, newPolygon(poly))
			}
		default:
			return nil, fmt.Errorf("boundary %q: unsupported geometry type %q", name, feature.Geometry.Type)
		}

		boundaries = append(boundaries, Boundary{Name: name, Polys: polys})
	}

	return boundaries, nil
}

// LoadFile loads boundaries from a GeoJSON file on disk.
func LoadFile(path string) ([]Boundary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open boundary dataset: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func propertyString(props map[string]any, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}

// newPolygon converts GeoJSON lon/lat positions into rings and computes the
// bounding box over all rings.
func newPolygon(coords [][][]float64) Polygon {
	p := Polygon{Rings: make([][]geo.Point, 0, len(coords))}
	first := true
	for _, ring := range coords {
		points := make([]geo.Point, 0, len(ring))
		for _, pos := range ring {
			if len(pos) < 2 {
				continue
			}
			pt := geo.Point{Lon: pos[0], Lat: pos[1]}
			points = append(points, pt)
			if first {
				p.bbox = [4]float64{pt.Lon, pt.Lat, pt.Lon, pt.Lat}
				first = false
				continue
			}
			if pt.Lon < p.bbox[0] {
				p.bbox[0] = pt.Lon
			}
			if pt.Lat < p.bbox[1] {
				p.bbox[1] = pt.Lat
			}
			if pt.Lon > p.bbox[2] {
				p.bbox[2] = pt.Lon
			}
			if pt.Lat > p.bbox[3] {
				p.bbox[3] = pt.Lat
			}
		}
		p.Rings = append(p.Rings, points)
	}
	return p
}

// contains tests the point against the outer shell and subtracts holes.
func (p Polygon) contains(pt geo.Point) bool {
	if pt.Lon < p.bbox[0] || pt.Lat < p.bbox[1] || pt.Lon > p.bbox[2] || pt.Lat > p.bbox[3] {
		return false
	}
	if len(p.Rings) == 0 || !ringContains(p.Rings[0], pt) {
		return false
	}
	for _, hole := range p.Rings[1:] {
		if ringContains(hole, pt) {
			return false
		}
	}
	return true
}

// ringContains is the even-odd ray casting test.
func ringContains(ring []geo.Point, pt geo.Point) bool {
	in := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a.Lat > pt.Lat) != (b.Lat > pt.Lat) &&
			pt.Lon < (b.Lon-a.Lon)*(pt.Lat-a.Lat)/(b.Lat-a.Lat)+a.Lon {
			in = !in
		}
	}
	return in
}
