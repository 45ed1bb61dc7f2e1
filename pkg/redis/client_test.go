package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Should connect to a reachable server", func(t *testing.T) {
		mr := miniredis.RunT(t)

		c, err := New(Config{URL: "redis://" + mr.Addr()})
		require.NoError(t, err)
		defer c.Close()

		assert.Equal(t, mr.Addr(), c.Options().Addr)
	})

	t.Run("Should take the password from the url when none is given", func(t *testing.T) {
		mr := miniredis.RunT(t)
		mr.RequireAuth("s3cret")

		c, err := New(Config{URL: "redis://:s3cret@" + mr.Addr()})
		require.NoError(t, err)
		defer c.Close()
	})

	t.Run("Should fail when unconfigured", func(t *testing.T) {
		_, err := New(Config{})
		assert.ErrorContains(t, err, "not configured")
	})

	t.Run("Should fail on an unreachable server", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := New(Config{URL: "redis://" + addr})
		assert.ErrorContains(t, err, "connection failed")
	})
}
