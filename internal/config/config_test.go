package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OFFICE_LOCATIONS", "")
	t.Setenv("REQUIRE_TIMESHEET_FOR_SIGNOUT", "")
	t.Setenv("WORKING_HOURS_START", "")
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("OTEL_SERVICE_NAME", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	cfg := Load()

	assert.Equal(t, DefaultOffices, cfg.Offices)
	assert.True(t, cfg.RequireTimesheetForSignOut)
	assert.Equal(t, 10, cfg.WorkingHoursStart)
	assert.Equal(t, 18, cfg.WorkingHoursEnd)
	assert.Equal(t, "admin", cfg.DefaultAdmin.Username)
	assert.Equal(t, "go-attendance", cfg.ServiceName)
	assert.Empty(t, cfg.OTLPEndpoint)
}

func TestLoadOfficeLocationsFromEnv(t *testing.T) {
	t.Setenv("OFFICE_LOCATIONS", `[{"name":"HQ","latitude":1.5,"longitude":2.5,"radius_meters":250}]`)
	t.Setenv("REQUIRE_TIMESHEET_FOR_SIGNOUT", "false")

	cfg := Load()

	assert.Len(t, cfg.Offices, 1)
	assert.Equal(t, "HQ", cfg.Offices[0].Name)
	assert.Equal(t, 250.0, cfg.Offices[0].RadiusMeters)
	assert.False(t, cfg.RequireTimesheetForSignOut)
}

func TestLoadMalformedOfficesFallsBack(t *testing.T) {
	t.Setenv("OFFICE_LOCATIONS", `{not json`)

	assert.Equal(t, DefaultOffices, Load().Offices)
}

func TestIsOfficeHours(t *testing.T) {
	cfg := Config{WorkingHoursStart: 10, WorkingHoursEnd: 18, Location: time.UTC}

	assert.False(t, cfg.IsOfficeHours(time.Date(2024, 1, 1, 9, 59, 0, 0, time.UTC)))
	assert.True(t, cfg.IsOfficeHours(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)))
	assert.False(t, cfg.IsOfficeHours(time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)))
}
