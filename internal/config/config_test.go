package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "jwt:\n  secret: s3cret\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "pawnder.db", cfg.Storage.SQLite.Path)
	assert.Equal(t, 20, cfg.Feed.Size)
	assert.Equal(t, "none", cfg.Events.Driver)
	assert.Equal(t, 30*24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadReadsSections(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 9000
storage:
  driver: redis
  redis:
    addr: localhost:6379
    db: 2
jwt:
  secret: abc
  ttl: 1h
feed:
  size: 5
events:
  driver: nats
  nats_url: nats://localhost:4222
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Storage.Driver)
	assert.Equal(t, 2, cfg.Storage.Redis.DB)
	assert.Equal(t, time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 5, cfg.Feed.Size)
	assert.Equal(t, "nats://localhost:4222", cfg.Events.NATSURL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	cases := map[string]string{
		"missing secret":     "storage:\n  driver: memory\n",
		"unknown storage":    "jwt:\n  secret: x\nstorage:\n  driver: mongo\n",
		"redis without addr": "jwt:\n  secret: x\nstorage:\n  driver: redis\n",
		"unknown events":     "jwt:\n  secret: x\nevents:\n  driver: kafka\n",
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "pawnder", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=pawnder sslmode=disable", db.DSN())
}
