package geo

import "encoding/json"

// Point WGS84 coordinate. Order follows GeoJSON: longitude first.
type Point struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

type geoJSONPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// ParsePoint decodes a GeoJSON Point payload. Malformed or non-Point
// geometry yields nil rather than an error; location columns are
// user-supplied and a bad one must not fail the whole read.
func ParsePoint(raw json.RawMessage) *Point {
	if len(raw) == 0 {
		return nil
	}
	var g geoJSONPoint
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil
	}
	if g.Type != "Point" || len(g.Coordinates) < 2 {
		return nil
	}
	return &Point{Lng: g.Coordinates[0], Lat: g.Coordinates[1]}
}

// MarshalGeoJSON encodes the point back into its storage form.
func (p Point) MarshalGeoJSON() json.RawMessage {
	raw, _ := json.Marshal(geoJSONPoint{
		Type:        "Point",
		Coordinates: []float64{p.Lng, p.Lat},
	})
	return raw
}
