package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// raises KEYS[1] to ARGV[1] without ever lowering it
var ensureScript = redis.NewScript(`
local cur = tonumber(redis.call('GET', KEYS[1]) or '0')
local floor = tonumber(ARGV[1])
if cur < floor then
	redis.call('SET', KEYS[1], floor)
	return floor
end
return cur
`)

type redisSequenceRepo struct {
	client *redis.Client
	prefix string
}

// NewRedisSequenceRepo keeps counters in Redis under prefix+name. Numbers
// taken by a transaction that later rolls back are not returned, so the
// sequence may have gaps.
func NewRedisSequenceRepo(client *redis.Client, prefix string) SequenceRepository {
	return &redisSequenceRepo{client: client, prefix: prefix}
}

func (r *redisSequenceRepo) key(name string) string {
	return r.prefix + name
}

func (r *redisSequenceRepo) Next(ctx context.Context, _ *gorm.DB, name string) (int64, error) {
	n, err := r.client.Incr(ctx, r.key(name)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr %s: %w", name, err)
	}
	return n, nil
}

func (r *redisSequenceRepo) Ensure(ctx context.Context, name string, floor int64) error {
	if err := ensureScript.Run(ctx, r.client, []string{r.key(name)}, floor).Err(); err != nil {
		return fmt.Errorf("redis ensure %s: %w", name, err)
	}
	return nil
}
