package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{
		"MODE", "HTTP_ADDR", "DB_DRIVER", "DB_DSN", "DATA_ROOT", "WEIGHTS_PATH",
		"ADMIN_USER", "ADMIN_PASS_HASH", "VIEWER_PASS_HASH", "CORS_ORIGINS_LOCAL",
	} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()

	require.Equal(t, ModeLocal, cfg.Mode)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, "sqlite", cfg.DBDriver)
	require.Equal(t, "./data", cfg.DataRoot)
	require.Equal(t, "admin", cfg.AdminUser)
	require.NotEmpty(t, cfg.AdminPassHash)
	require.Empty(t, cfg.ViewerPassHash)
	require.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORSOriginsLocal)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("MODE", "shared")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "postgres://db/rankwatch")
	t.Setenv("DATA_ROOT", "/srv/exports")
	t.Setenv("WEIGHTS_PATH", "/etc/rankwatch/ranking_config.yaml")
	t.Setenv("CORS_ORIGINS_SHARED", "https://rankwatch.example.com, https://ops.example.com")

	cfg := FromEnv()
	require.Equal(t, ModeShared, cfg.Mode)
	require.Equal(t, ":9090", cfg.HTTPAddr)
	require.Equal(t, "postgres", cfg.DBDriver)
	require.Equal(t, "postgres://db/rankwatch", cfg.DBDSN)
	require.Equal(t, "/srv/exports", cfg.DataRoot)
	require.Equal(t, "/etc/rankwatch/ranking_config.yaml", cfg.WeightsPath)
	require.Equal(t, []string{"https://rankwatch.example.com", "https://ops.example.com"}, cfg.CORSOriginsShared)
}
