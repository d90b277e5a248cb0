// Package suite runs repository tests against a disposable Redis.
package suite

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

const (
	containerTTL = 120 // seconds before docker kills a leaked container
	startTimeout = 120 * time.Second
)

const (
	redisImage = "redis"
	redisTag   = "7-alpine"
	redisPort  = "6379/tcp"

	sessionPrefix = "session:"
)

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Storage *redis.Client
}

// New gives the test an empty Redis. The test is skipped in short mode or when Docker is not reachable.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	if testing.Short() {
		t.Skip("redis session tests need docker")
	}

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	t.Cleanup(cancel)

	st := &Suite{
		T:       t,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Storage: startRedis(ctx, t),
	}

	st.Flush(ctx)

	return ctx, st
}

func startRedis(ctx context.Context, t *testing.T) *redis.Client {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}

	pool.MaxWait = startTimeout

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(host *docker.HostConfig) {
		host.AutoRemove = true
		host.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "start redis container")

	t.Cleanup(func() {
		if purgeErr := pool.Purge(resource); purgeErr != nil {
			t.Logf("purge redis container: %v", purgeErr)
		}
	})

	_ = resource.Expire(containerTTL)

	client := redis.NewClient(&redis.Options{Addr: resource.GetHostPort(redisPort)})
	t.Cleanup(func() { _ = client.Close() })

	// the server may still be booting
	err = pool.Retry(func() error {
		return client.Ping(ctx).Err()
	})
	require.NoError(t, err, "connect to redis")

	return client
}

// Flush drops every key so each test starts from an empty store.
func (that *Suite) Flush(ctx context.Context) {
	that.Helper()

	require.NoError(that, that.Storage.FlushDB(ctx).Err(), "flush redis")
}

// SeedSession writes a stored session record directly, bypassing the repository.
// The token is not validated, so broken records can be planted.
func (that *Suite) SeedSession(ctx context.Context, id, token string) {
	that.Helper()

	record, err := json.Marshal(map[string]string{"id": id, "token": token})
	require.NoError(that, err)

	require.NoError(that, that.Storage.Set(ctx, sessionPrefix+id, record, 0).Err(), "seed session %s", id)
}

// SessionKeys lists the stored session keys.
func (that *Suite) SessionKeys(ctx context.Context) []string {
	that.Helper()

	keys, err := that.Storage.Keys(ctx, sessionPrefix+"*").Result()
	require.NoError(that, err, "list session keys")

	return keys
}
