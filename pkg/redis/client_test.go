package redis_test

import (
	"context"
	"testing"

	appredis "go-recruitment-scheduler/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("Should fail without URL", func(t *testing.T) {
		_, err := appredis.NewClient(context.Background(), appredis.Config{})
		assert.Error(t, err)
	})

	t.Run("Should connect and pass health check", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client, err := appredis.NewClient(context.Background(), appredis.Config{URL: "redis://" + mr.Addr()})
		require.NoError(t, err)
		defer client.Close()

		assert.NoError(t, appredis.HealthCheck(context.Background(), client))
	})

	t.Run("Health check on nil client", func(t *testing.T) {
		assert.Error(t, appredis.HealthCheck(context.Background(), nil))
	})
}
