package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestMustLoad(t *testing.T) {
	t.Run("Fills unset keys with defaults", func(t *testing.T) {
		// Given: a config that only picks the storage
		path := writeConfig(t, "storage: redis\n")

		// When: it is loaded
		conf := MustLoad(path)

		// Then: everything else has its default
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, "exo-bot", conf.Bot.ID)
		assert.Equal(t, 4, conf.Bot.Depth)
		assert.Empty(t, conf.Console.Channel)
	})

	t.Run("Reads every key", func(t *testing.T) {
		path := writeConfig(t, `log-level: debug
storage: memory
redis:
  host: cache
  port: "6380"
bot:
  id: robo
  depth: 2
console:
  channel: lobby
`)

		conf := MustLoad(path)

		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, StorageMemory, conf.Storage)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, "robo", conf.Bot.ID)
		assert.Equal(t, 2, conf.Bot.Depth)
		assert.Equal(t, "lobby", conf.Console.Channel)
	})

	t.Run("Panics without a config file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}

func TestRedis_GetRedisAddr(t *testing.T) {
	assert.Equal(t, "localhost:6379", (&Redis{Host: "localhost", Port: "6379"}).GetRedisAddr())
	assert.Empty(t, (&Redis{Host: "", Port: "6379"}).GetRedisAddr())
	assert.Empty(t, (&Redis{Host: "localhost"}).GetRedisAddr())
}
