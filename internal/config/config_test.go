package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/song-ranker-admin/internal/config"
	"github.com/stretchr/testify/require"
)

func TestEnvVars_GetPort(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv("PORT", "")
		require.Equal(t, ":8080", config.EnvVars{}.GetPort())
	})

	t.Run("bare number", func(t *testing.T) {
		t.Setenv("PORT", "9000")
		require.Equal(t, ":9000", config.EnvVars{}.GetPort())
	})

	t.Run("already prefixed", func(t *testing.T) {
		t.Setenv("PORT", ":9001")
		require.Equal(t, ":9001", config.EnvVars{}.GetPort())
	})
}

func TestEnvVars_GetRemoteTimeout(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv("REMOTE_TIMEOUT", "")
		require.Equal(t, 10*time.Second, config.EnvVars{}.GetRemoteTimeout())
	})

	t.Run("configured", func(t *testing.T) {
		t.Setenv("REMOTE_TIMEOUT", "2500ms")
		require.Equal(t, 2500*time.Millisecond, config.EnvVars{}.GetRemoteTimeout())
	})

	t.Run("invalid falls back", func(t *testing.T) {
		t.Setenv("REMOTE_TIMEOUT", "soon")
		require.Equal(t, 10*time.Second, config.EnvVars{}.GetRemoteTimeout())
	})

	t.Run("negative falls back", func(t *testing.T) {
		t.Setenv("REMOTE_TIMEOUT", "-1s")
		require.Equal(t, 10*time.Second, config.EnvVars{}.GetRemoteTimeout())
	})
}

func TestSupabase_TrimsTrailingSlash(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://song-ranker.supabase.co/")
	require.Equal(t, "https://song-ranker.supabase.co", config.Supabase{}.GetSupabaseURL())
}

func TestParseAllowedOrigins(t *testing.T) {
	origins := config.ParseAllowedOrigins(" https://a.example.com, ,https://b.example.com")
	require.True(t, origins.IsAllowedOrigin("https://a.example.com"))
	require.True(t, origins.IsAllowedOrigin("https://b.example.com"))
	require.False(t, origins.IsAllowedOrigin(""))
	require.Equal(t, "https://a.example.com, https://b.example.com", origins.String())
}

func TestValidate(t *testing.T) {
	t.Run("missing settings", func(t *testing.T) {
		t.Setenv("SUPABASE_URL", "")
		t.Setenv("SUPABASE_ANON_KEY", "")
		t.Setenv("SESSION_SECRET", "")

		err := config.New().Validate()
		require.Error(t, err)
		require.Contains(t, err.Error(), "SUPABASE_URL")
		require.Contains(t, err.Error(), "SUPABASE_ANON_KEY")
		require.Contains(t, err.Error(), "SESSION_SECRET")
	})

	t.Run("complete", func(t *testing.T) {
		t.Setenv("SUPABASE_URL", "https://song-ranker.supabase.co")
		t.Setenv("SUPABASE_ANON_KEY", "anon")
		t.Setenv("SESSION_SECRET", "secret")

		require.NoError(t, config.New().Validate())
	})
}
