// Package geofence decides whether a coordinate lies inside one of the
// configured office circles.
package geofence

import (
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const earthRadiusMeters = 6371000.0

type Office struct {
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
}

type Evaluator struct {
	offices []Office
	logger  *zap.Logger
}

func NewEvaluator(offices []Office, logger ...*zap.Logger) *Evaluator {
	l := zap.L().Named("geofence")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("geofence")
	}
	cp := make([]Office, len(offices))
	copy(cp, offices)
	return &Evaluator{offices: cp, logger: l}
}

func (e *Evaluator) Offices() []Office {
	cp := make([]Office, len(e.offices))
	copy(cp, e.offices)
	return cp
}

// IsWithinAnyOffice returns the first office, in configuration order, whose
// radius contains the point. Missing or non-finite coordinates never match.
func (e *Evaluator) IsWithinAnyOffice(lat, lon *float64) (bool, string) {
	if !validCoordinate(lat) || !validCoordinate(lon) {
		e.logger.Debug("geofence check skipped, coordinates unavailable")
		return false, ""
	}

	distances := make([]zap.Field, 0, len(e.offices))
	for _, office := range e.offices {
		d := Distance(*lat, *lon, office.Latitude, office.Longitude)
		if d <= office.RadiusMeters {
			return true, office.Name
		}
		distances = append(distances, zap.Float64(office.Name, math.Round(d)))
	}

	e.logger.Debug("outside all offices",
		zap.Float64("latitude", *lat),
		zap.Float64("longitude", *lon),
		zap.Dict("distance_m", distances...),
	)
	return false, ""
}

// Distance is the great-circle distance in meters.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// ParseCoordinate turns form input into a coordinate; anything unparsable is nil.
func ParseCoordinate(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func validCoordinate(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}
