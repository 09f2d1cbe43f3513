package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	t.Setenv("ENV", "does-not-exist")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverLog, cfg.Index.Driver)
	assert.Equal(t, "/uploads", cfg.Storage.PublicPath)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ENV", "does-not-exist")
	t.Setenv("PORT", "9000")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("INDEX_DRIVER", DriverMongo)
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("NODE_ID", "7")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, DriverMongo, cfg.Index.Driver)
	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
	assert.Equal(t, int64(7), cfg.App.NodeID)
}

func TestDurations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mongo.TimeoutMS = 0
	cfg.Breaker.OpenTimeoutMS = 0
	cfg.Reconcile.GracePeriodMS = -1

	assert.Equal(t, "5s", cfg.MongoTimeout().String())
	assert.Equal(t, "10s", cfg.BreakerOpenTimeout().String())
	assert.Equal(t, "1m0s", cfg.ReconcileGracePeriod().String())
}
