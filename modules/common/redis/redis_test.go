package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paprika-server/modules/common/config"
)

func TestOptions(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		opts := Options(&config.Config{RedisHost: "cache.internal", RedisPort: "6380", RedisPassword: "pw"})
		assert.Equal(t, "cache.internal:6380", opts.Addr)
		assert.Equal(t, "pw", opts.Password)
		assert.Nil(t, opts.TLSConfig)
	})

	t.Run("tls verifies the host", func(t *testing.T) {
		opts := Options(&config.Config{RedisHost: "cache.internal", RedisPort: "6380", RedisUseTLS: true})
		require.NotNil(t, opts.TLSConfig)
		assert.Equal(t, "cache.internal", opts.TLSConfig.ServerName)
		assert.False(t, opts.TLSConfig.InsecureSkipVerify)
	})
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{RedisHost: mr.Host(), RedisPort: mr.Port(), HistoryMaxEntries: 10}

	t.Run("reachable", func(t *testing.T) {
		rdb, err := Connect(context.Background(), cfg)
		require.NoError(t, err)
		defer rdb.Close()
		assert.NoError(t, rdb.Ping(context.Background()).Err())
	})

	t.Run("unreachable", func(t *testing.T) {
		gone := miniredis.NewMiniRedis()
		require.NoError(t, gone.Start())
		down := &config.Config{RedisHost: gone.Host(), RedisPort: gone.Port()}
		gone.Close()

		rdb, err := Connect(context.Background(), down)
		assert.Error(t, err)
		assert.Nil(t, rdb)
	})
}
