package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "sessionid", cfg.Session.CookieName)
	assert.False(t, cfg.Timetable.RequireAuth)
}

func TestLoadFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TIMETABLE_REQUIRE_AUTH", "true")
	t.Setenv("JWT_EXPIRATION", "not-a-duration")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, http://example.com ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Timetable.RequireAuth)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, []string{"http://localhost:5173", "http://example.com"}, cfg.CORS.AllowedOrigins)
}

func TestTimetableLocation(t *testing.T) {
	loc, err := TimetableConfig{}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = TimetableConfig{Timezone: "UTC"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = TimetableConfig{Timezone: "Nowhere/Atlantis"}.Location()
	assert.Error(t, err)
}

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
