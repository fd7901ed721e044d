package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), map[string]string{
		"SUPABASE_URL":      "https://example.supabase.co",
		"SUPABASE_ANON_KEY": "anon",
	})
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.GetServerAddr())
	assert.Equal(t, DriverREST, cfg.App.BackendDriver)
	assert.Equal(t, int64(3), cfg.App.OwnerUserID)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Zero(t, cfg.Supabase.RequestTimeout())
	assert.True(t, cfg.App.IsDevelopment())
}

func TestLoadMissingBackendIsFatal(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"both missing", map[string]string{}, "SUPABASE_URL, SUPABASE_ANON_KEY"},
		{"key missing", map[string]string{"SUPABASE_URL": "https://x"}, "SUPABASE_ANON_KEY"},
		{"blank url", map[string]string{"SUPABASE_URL": "  ", "SUPABASE_ANON_KEY": "k"}, "SUPABASE_URL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(context.Background(), tt.env)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadPostgresDriverSkipsSupabase(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), map[string]string{
		"APP_BACKEND_DRIVER": "postgres",
		"DB_HOST":            "db.internal",
		"DB_NAME":            "lukitas",
	})
	require.NoError(t, err)
	assert.Equal(t, "host=db.internal port=5432 user=postgres password=postgres dbname=lukitas sslmode=disable",
		cfg.Database.GetDatabaseURL())
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	_, err := LoadFrom(context.Background(), map[string]string{"APP_BACKEND_DRIVER": "firebase"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "firebase")
}

func TestLoadRejectsNegativeRateLimit(t *testing.T) {
	_, err := LoadFrom(context.Background(), map[string]string{
		"SUPABASE_URL":        "https://x",
		"SUPABASE_ANON_KEY":   "k",
		"SUPABASE_RATE_LIMIT": "-1",
	})
	require.Error(t, err)
}
