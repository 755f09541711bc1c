package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
http:
  address: ":8081"
grpc:
  address: ":9091"
database:
  host: db
  port: 5432
  user: sky
  password: pw
  name: skybook
  ssl_mode: disable
redis:
  addr: "redis:6379"
kafka:
  brokers: ["kafka:9092"]
  ticket_topic: tickets
  notifications_topic: notifications
catalog:
  source: FILE
  file: flights.jsonc
ledger:
  log_path: /var/lib/skybook/tickets.log
log:
  level: debug
operators:
  - username: admin
    password: admin123
    privileged: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, ":8081", cfg.HTTP.Address)
	assert.Equal(t, ":9091", cfg.GRPC.Address)
	assert.Equal(t, "host=db port=5432 user=sky password=pw dbname=skybook sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, CatalogSourceFile, cfg.Catalog.Source)
	assert.Equal(t, 300, cfg.Catalog.CacheTTLSeconds)
	assert.Equal(t, "/var/lib/skybook/tickets.log", cfg.Ledger.LogPath)
	assert.Equal(t, 600, cfg.Booking.RequestLockTTLSeconds)
	assert.Equal(t, "skybook-worker", cfg.Kafka.GroupID)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
	require.Len(t, cfg.Operators, 1)
	assert.True(t, cfg.Operators[0].Privileged)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, ":9090", cfg.GRPC.Address)
	assert.Equal(t, CatalogSourceSeed, cfg.Catalog.Source)
	assert.Equal(t, "data/tickets.log", cfg.Ledger.LogPath)
	assert.Equal(t, slog.LevelInfo, cfg.Log.SlogLevel())
}

func TestParse_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"bad yaml", "http: ["},
		{"unknown source", "catalog:\n  source: ftp"},
		{"file source without file", "catalog:\n  source: file"},
		{"negative ttl", "booking:\n  request_lock_ttl_seconds: -1"},
		{"brokers without topic", "kafka:\n  brokers: [\"k:9092\"]"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
