package geo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePoint(t *testing.T) {
	p := ParsePoint(json.RawMessage(`{"type":"Point","coordinates":[-3.7038,40.4168]}`))
	require.NotNil(t, p)
	assert.Equal(t, -3.7038, p.Lng)
	assert.Equal(t, 40.4168, p.Lat)
}

func TestParsePointMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":        ``,
		"not json":     `{{`,
		"wrong type":   `{"type":"Polygon","coordinates":[[0,0]]}`,
		"short coords": `{"type":"Point","coordinates":[1]}`,
		"null":         `null`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, ParsePoint(json.RawMessage(raw)))
		})
	}
}

func TestMarshalGeoJSONRoundTrip(t *testing.T) {
	orig := Point{Lng: 2.1734, Lat: 41.3851}
	p := ParsePoint(orig.MarshalGeoJSON())
	require.NotNil(t, p)
	assert.Equal(t, orig, *p)
}
