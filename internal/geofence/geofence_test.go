package geofence

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func ptr(v float64) *float64 { return &v }

var testOffices = []Office{
	{Name: "Home Office", Latitude: 12.9040293, Longitude: 77.5634288, RadiusMeters: 1000},
	{Name: "college", Latitude: 13.11734540585317, Longitude: 77.6361704517549, RadiusMeters: 1000},
}

func TestIsWithinAnyOffice(t *testing.T) {
	e := NewEvaluator(testOffices, zap.NewNop())

	t.Run("exact office coordinate", func(t *testing.T) {
		ok, name := e.IsWithinAnyOffice(ptr(12.9040293), ptr(77.5634288))
		assert.True(t, ok)
		assert.Equal(t, "Home Office", name)
	})

	t.Run("second office", func(t *testing.T) {
		ok, name := e.IsWithinAnyOffice(ptr(13.1175), ptr(77.6362))
		assert.True(t, ok)
		assert.Equal(t, "college", name)
	})

	t.Run("far away", func(t *testing.T) {
		ok, name := e.IsWithinAnyOffice(ptr(0), ptr(0))
		assert.False(t, ok)
		assert.Empty(t, name)
	})

	t.Run("missing coordinates", func(t *testing.T) {
		ok, _ := e.IsWithinAnyOffice(nil, ptr(77.56))
		assert.False(t, ok)
		ok, _ = e.IsWithinAnyOffice(ptr(12.9), nil)
		assert.False(t, ok)
	})

	t.Run("non finite coordinates", func(t *testing.T) {
		ok, _ := e.IsWithinAnyOffice(ptr(math.NaN()), ptr(77.56))
		assert.False(t, ok)
		ok, _ = e.IsWithinAnyOffice(ptr(12.9), ptr(math.Inf(1)))
		assert.False(t, ok)
	})
}

func TestIsWithinAnyOffice_FirstMatchWins(t *testing.T) {
	overlapping := []Office{
		{Name: "A", Latitude: 10, Longitude: 10, RadiusMeters: 5000},
		{Name: "B", Latitude: 10, Longitude: 10, RadiusMeters: 5000},
	}
	e := NewEvaluator(overlapping, zap.NewNop())

	ok, name := e.IsWithinAnyOffice(ptr(10.001), ptr(10.001))

	assert.True(t, ok)
	assert.Equal(t, "A", name)
}

func TestIsWithinAnyOffice_RadiusBoundaryInclusive(t *testing.T) {
	d := Distance(10, 10, 10.005, 10)
	e := NewEvaluator([]Office{{Name: "edge", Latitude: 10, Longitude: 10, RadiusMeters: d}}, zap.NewNop())

	ok, _ := e.IsWithinAnyOffice(ptr(10.005), ptr(10))

	assert.True(t, ok)
}

func TestIsWithinAnyOffice_TwoKilometresNorthIsOutside(t *testing.T) {
	e := NewEvaluator([]Office{{Name: "Koramangala", Latitude: 12.92499, Longitude: 77.61800, RadiusMeters: 1000}}, zap.NewNop())
	// 2000 m along a meridian is 2000/6371000 rad, about 0.017986 degrees.
	north := 12.92499 + 0.017986

	assert.InDelta(t, 2000, Distance(12.92499, 77.61800, north, 77.61800), 1)
	ok, name := e.IsWithinAnyOffice(ptr(north), ptr(77.61800))
	assert.False(t, ok)
	assert.Empty(t, name)
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 0.0, Distance(12.9, 77.5, 12.9, 77.5))
	// one degree of latitude is roughly 111.2 km
	assert.InDelta(t, 111195, Distance(0, 0, 1, 0), 10)
}

func TestParseCoordinate(t *testing.T) {
	assert.Equal(t, 12.5, *ParseCoordinate(" 12.5 "))
	assert.Nil(t, ParseCoordinate(""))
	assert.Nil(t, ParseCoordinate("abc"))
	assert.Nil(t, ParseCoordinate("NaN"))
}

func TestOfficesReturnsCopy(t *testing.T) {
	e := NewEvaluator(testOffices, zap.NewNop())
	got := e.Offices()
	got[0].Name = "changed"

	assert.Equal(t, "Home Office", e.Offices()[0].Name)
}
