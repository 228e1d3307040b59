package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"

	"github.com/robalobadob/wordgrid/internal/game"
)

// Redis implements Store on a Redis server. Each session is a JSON string
// key; a per-player sorted set (score = last update) backs List.
type Redis struct {
	client  *backend.Client
	prefix  string
	ttl     time.Duration
	lockTTL time.Duration
}

type Option func(*Redis)

// WithTTL sets the expiration for sessions.
func WithTTL(ttl time.Duration) Option {
	return func(s *Redis) { s.ttl = ttl }
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Redis) { s.prefix = prefix }
}

// WithLockTTL bounds how long a crashed holder can block a game.
func WithLockTTL(ttl time.Duration) Option {
	return func(s *Redis) { s.lockTTL = ttl }
}

// NewRedis connects to addr.
func NewRedis(addr, password string, db int, opts ...Option) *Redis {
	return NewRedisFromClient(backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}), opts...)
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client *backend.Client, opts ...Option) *Redis {
	s := &Redis{
		client:  client,
		prefix:  "wordgrid:",
		lockTTL: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Redis) key(id string) string           { return s.prefix + "game:" + id }
func (s *Redis) playerKey(id string) string     { return s.prefix + "player:" + id }
func (s *Redis) lockKey(id string) string       { return s.prefix + "lock:" + id }
func (s *Redis) Ping(ctx context.Context) error { return s.client.Ping(ctx).Err() }

func (s *Redis) Save(ctx context.Context, g *game.Session) error {
	data, err := encode(g)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(g.ID), data, s.ttl)
	for _, p := range g.Players {
		pipe.ZAdd(ctx, s.playerKey(p.ID), backend.Z{
			Score:  float64(g.UpdatedAt.UnixNano()),
			Member: g.ID,
		})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save game %s to redis: %w", g.ID, err)
	}
	return nil
}

func (s *Redis) Get(ctx context.Context, id string) (*game.Session, error) {
	val, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get game %s from redis: %w", id, err)
	}
	return decode(val)
}

// List walks the player's index newest first. Entries whose session has
// expired, or no longer seats the player, are dropped from the index as they
// are found.
func (s *Redis) List(ctx context.Context, playerID string, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	ids, err := s.client.ZRevRange(ctx, s.playerKey(playerID), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("list games for %s: %w", playerID, err)
	}
	out := []Summary{}
	for _, id := range ids {
		g, err := s.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			s.client.ZRem(ctx, s.playerKey(playerID), id)
			continue
		}
		if err != nil {
			return nil, err
		}
		if !g.HasPlayer(playerID) {
			s.client.ZRem(ctx, s.playerKey(playerID), id)
			continue
		}
		out = append(out, summarize(g, playerID))
	}
	return out, nil
}

var unlockScript = backend.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`)

// Lock takes a SET NX PX lock on the game, polling until ctx is done. The
// lock expires after the lock TTL even if never released.
func (s *Redis) Lock(ctx context.Context, id string) (UnlockFunc, error) {
	key := s.lockKey(id)
	val := uuid.NewString()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		ok, err := s.client.SetNX(ctx, key, val, s.lockTTL).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, errors.Join(ErrLocked, ctx.Err())
			}
			return nil, fmt.Errorf("acquire lock %s: %w", id, err)
		}
		if ok {
			return func() {
				_ = unlockScript.Run(context.Background(), s.client, []string{key}, val).Err()
			}, nil
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrLocked, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (s *Redis) Close() error { return s.client.Close() }
