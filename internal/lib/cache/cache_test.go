package cache

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/deppfellow/go-invoicing/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryHook answers GET/SET/DEL from a map so no Redis server is needed.
type memoryHook struct {
	data map[string]string
	ttls map[string]any
	fail error
}

func (h *memoryHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, fmt.Errorf("dial disabled in tests")
	}
}

func (h *memoryHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if h.fail != nil {
			return h.fail
		}

		args := cmd.Args()
		key := fmt.Sprint(args[1])
		switch c := cmd.(type) {
		case *redis.StringCmd:
			v, ok := h.data[key]
			if !ok {
				return redis.Nil
			}
			c.SetVal(v)
		case *redis.StatusCmd:
			h.data[key] = fmt.Sprintf("%s", args[2])
			if len(args) > 4 {
				h.ttls[key] = args[4]
			}
			c.SetVal("OK")
		case *redis.IntCmd:
			var n int64
			if _, ok := h.data[key]; ok {
				delete(h.data, key)
				n = 1
			}
			c.SetVal(n)
		}
		return nil
	}
}

func (h *memoryHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func newTestCache(t *testing.T) (*ViewCache, *memoryHook) {
	t.Helper()
	hook := &memoryHook{data: map[string]string{}, ttls: map[string]any{}}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	client.AddHook(hook)
	t.Cleanup(func() { _ = client.Close() })

	return NewViewCache(client, &config.CacheConfig{TTL: time.Minute, KeyPrefix: "test:"}), hook
}

type view struct {
	Items []string `json:"items"`
}

func TestViewCacheRoundTrip(t *testing.T) {
	c, hook := newTestCache(t)
	ctx := context.Background()

	var got view
	hit, err := c.Get(ctx, "/dashboard/invoices", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "/dashboard/invoices", view{Items: []string{"a", "b"}}))
	assert.Contains(t, hook.data, "test:/dashboard/invoices")
	assert.EqualValues(t, 60, hook.ttls["test:/dashboard/invoices"])

	hit, err = c.Get(ctx, "/dashboard/invoices", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"a", "b"}, got.Items)
}

func TestViewCacheRevalidate(t *testing.T) {
	c, hook := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "/dashboard/invoices", view{}))
	require.NoError(t, c.Revalidate(ctx, "/dashboard/invoices"))
	assert.NotContains(t, hook.data, "test:/dashboard/invoices")

	// Revalidating an absent view is fine.
	require.NoError(t, c.Revalidate(ctx, "/dashboard/invoices"))
}

func TestViewCacheErrors(t *testing.T) {
	c, hook := newTestCache(t)
	hook.fail = fmt.Errorf("connection reset")

	_, err := c.Get(context.Background(), "/x", &view{})
	assert.ErrorContains(t, err, "connection reset")
	assert.ErrorContains(t, c.Revalidate(context.Background(), "/x"), "cache revalidate /x")
}
