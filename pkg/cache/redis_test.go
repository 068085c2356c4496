package cache

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewRedisClient_Ping tests connecting to a live server and failing fast on a dead one
func TestNewRedisClient_Ping(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)

	client, err := NewRedisClient(context.Background(), Config{Host: host, Port: port})
	require.NoError(t, err)
	defer client.Close()
	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())

	mr.Close()
	_, err = NewRedisClient(context.Background(), Config{Host: host, Port: port, DialTimeout: 200 * time.Millisecond})
	assert.Error(t, err)
}

// TestKeyspace_Key tests key namespacing
func TestKeyspace_Key(t *testing.T) {
	tests := []struct {
		space Keyspace
		want  string
	}{
		{"", "token"},
		{"ridehail", "ridehail:token"},
		{"ridehail:", "ridehail:token"},
	}
	for _, tt := range tests {
		t.Run(string(tt.space), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.space.Key("token"))
		})
	}
	assert.Equal(t, []string{"a:x", "a:y"}, Keyspace("a").Keys("x", "y"))
}
