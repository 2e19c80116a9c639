// Package cache keeps publicly visible listings in Redis for the read path.
// Invalidate leaves a short-lived tombstone in place of the entry; Set is a
// script that refuses to overwrite a tombstone or a newer version, so a reader
// that loaded a listing before a transition cannot put the stale copy back.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"bazaar/internal/domain/listings"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultTombstoneTTL = time.Minute
	tombstone           = `{"tombstone":true}`
)

// setScript writes ARGV[1] unless the current value is a tombstone or carries
// a higher version than ARGV[2]. Returns 1 when written.
var setScript = redis.NewScript(`
local cur = redis.call("GET", KEYS[1])
if cur then
	local ok, doc = pcall(cjson.decode, cur)
	if ok and type(doc) == "table" then
		if doc.tombstone then
			return 0
		end
		local v = tonumber(doc.version)
		if v and v > tonumber(ARGV[2]) then
			return 0
		end
	end
end
redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[3])
return 1
`)

type Listings struct {
	client       redis.Cmdable
	ttl          time.Duration
	tombstoneTTL time.Duration
}

func NewListings(client redis.Cmdable, ttl time.Duration) *Listings {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Listings{client: client, ttl: ttl, tombstoneTTL: DefaultTombstoneTTL}
}

func key(id int64) string {
	return "listing:" + strconv.FormatInt(id, 10)
}

type entry struct {
	Tombstone bool `json:"tombstone"`
	listings.Listing
}

// Get returns (nil, nil) on a miss or a tombstone.
func (c *Listings) Get(ctx context.Context, id int64) (*listings.Listing, error) {
	data, err := c.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	if e.Tombstone {
		return nil, nil
	}
	return &e.Listing, nil
}

func (c *Listings) Set(ctx context.Context, l *listings.Listing) error {
	if !l.Public() {
		return c.Invalidate(ctx, l.ID)
	}
	data, err := json.Marshal(l)
	if err != nil {
		return err
	}
	return setScript.Run(ctx, c.client, []string{key(l.ID)}, data, l.Version, c.ttl.Milliseconds()).Err()
}

func (c *Listings) Invalidate(ctx context.Context, ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := c.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		for _, id := range ids {
			p.Set(ctx, key(id), tombstone, c.tombstoneTTL)
		}
		return nil
	})
	return err
}
