package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedis_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	s := NewRedis(client)
	ctx := context.Background()

	_, _, err := s.Get(ctx, "mw_cart")
	assert.ErrorIs(t, err, ErrFailedRead)

	assert.ErrorIs(t, s.Set(ctx, "mw_cart", "{}"), ErrFailedWrite)
	assert.ErrorIs(t, s.Delete(ctx, "mw_cart"), ErrFailedDelete)
	assert.ErrorIs(t, s.Set(ctx, "", "{}"), ErrEmptyKey)
}
