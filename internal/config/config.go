package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"

	"go-attendance/internal/geofence"

	"go.uber.org/zap"
)

type DatabaseConfig struct {
	Host       string
	User       string
	Password   string
	Name       string
	Port       string
	SSLMode    string
	MaxRetries int
}

type AdminSeed struct {
	Username string
	Password string
	Name     string
}

type Config struct {
	Port        string
	AppEnv      string
	Database    DatabaseConfig
	RedisAddr   string
	KafkaBroker string

	JWTSecret      string
	GoogleClientID string

	Offices                    []geofence.Office
	RequireTimesheetForSignOut bool
	EnforceGeofenceOnLogin     bool
	WorkingHoursStart          int
	WorkingHoursEnd            int
	Location                   *time.Location

	SeedSampleData bool
	DefaultAdmin   AdminSeed

	ServiceName  string
	OTLPEndpoint string
	OTLPInsecure bool
}

// DefaultOffices is used when OFFICE_LOCATIONS is unset or malformed.
var DefaultOffices = []geofence.Office{
	{Name: "Home Office", Latitude: 12.9040293, Longitude: 77.5634288, RadiusMeters: 1000},
	{Name: "college", Latitude: 13.11734540585317, Longitude: 77.6361704517549, RadiusMeters: 1000},
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	return Config{
		Port:   port,
		AppEnv: readString("APP_ENV", "development"),
		Database: DatabaseConfig{
			Host:       os.Getenv("DB_HOST"),
			User:       os.Getenv("DB_USER"),
			Password:   os.Getenv("DB_PASSWORD"),
			Name:       os.Getenv("DB_NAME"),
			Port:       readString("DB_PORT", "5432"),
			SSLMode:    readString("DB_SSLMODE", "disable"),
			MaxRetries: readInt("DB_MAX_RETRIES", 5),
		},
		RedisAddr:   readString("REDIS_ADDR", "localhost:6379"),
		KafkaBroker: os.Getenv("KAFKA_BROKER"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),

		Offices:                    readOffices("OFFICE_LOCATIONS"),
		RequireTimesheetForSignOut: readBool("REQUIRE_TIMESHEET_FOR_SIGNOUT", true),
		EnforceGeofenceOnLogin:     readBool("ENFORCE_GEOFENCE_ON_LOGIN", false),
		WorkingHoursStart:          readInt("WORKING_HOURS_START", 10),
		WorkingHoursEnd:            readInt("WORKING_HOURS_END", 18),
		Location:                   readLocation("APP_TIMEZONE"),

		SeedSampleData: readBool("SEED_SAMPLE_DATA", false),
		DefaultAdmin: AdminSeed{
			Username: readString("DEFAULT_ADMIN_USERNAME", "admin"),
			Password: readString("DEFAULT_ADMIN_PASSWORD", "admin123"),
			Name:     readString("DEFAULT_ADMIN_NAME", "System Administrator"),
		},

		ServiceName:  readString("OTEL_SERVICE_NAME", "go-attendance"),
		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTLPInsecure: readBool("OTEL_EXPORTER_OTLP_INSECURE", true),
	}
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// IsOfficeHours reports whether t falls in [WorkingHoursStart, WorkingHoursEnd).
func (c Config) IsOfficeHours(t time.Time) bool {
	if c.Location != nil {
		t = t.In(c.Location)
	}
	return c.WorkingHoursStart <= t.Hour() && t.Hour() < c.WorkingHoursEnd
}

func readOffices(key string) []geofence.Office {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return DefaultOffices
	}

	var offices []geofence.Office
	if err := json.Unmarshal([]byte(raw), &offices); err != nil || len(offices) == 0 {
		zap.L().Warn("invalid office locations, using defaults", zap.String("key", key), zap.Error(err))
		return DefaultOffices
	}
	return offices
}

func readLocation(key string) *time.Location {
	name := os.Getenv(key)
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		zap.L().Warn("unknown timezone, using local", zap.String("timezone", name), zap.Error(err))
		return time.Local
	}
	return loc
}

func readString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func readBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(strings.ToLower(raw))
	if err != nil {
		return fallback
	}
	return value
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
