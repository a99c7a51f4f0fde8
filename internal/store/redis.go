package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis keeps each collection as an ordered id list plus a hash of id -> JSON.
type Redis struct {
	rdb    *redis.Client
	prefix string
}

// RedisOptions configures the Redis backend.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // key namespace, defaults to "jobboard"
}

// ConnectRedis creates a client and verifies connectivity.
func ConnectRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, ioError("store.ConnectRedis", "redis", err)
	}
	return NewRedis(rdb, opts.Prefix), nil
}

// NewRedis wraps an existing client.
func NewRedis(rdb *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "jobboard"
	}
	return &Redis{rdb: rdb, prefix: prefix}
}

func (r *Redis) idsKey(collection string) string  { return r.prefix + ":" + collection + ":ids" }
func (r *Redis) dataKey(collection string) string { return r.prefix + ":" + collection + ":data" }

func (r *Redis) FetchAll(ctx context.Context, collection string) ([]Record, error) {
	ids, err := r.rdb.LRange(ctx, r.idsKey(collection), 0, -1).Result()
	if err != nil {
		return nil, ioError("store.Redis.FetchAll", collection, err)
	}
	if len(ids) == 0 {
		return []Record{}, nil
	}

	vals, err := r.rdb.HMGet(ctx, r.dataKey(collection), ids...).Result()
	if err != nil {
		return nil, ioError("store.Redis.FetchAll", collection, err)
	}

	recs := make([]Record, 0, len(ids))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			// id listed without data: a concurrent delete landed between the two reads
			continue
		}
		recs = append(recs, Record{ID: ids[i], Data: json.RawMessage(s)})
	}
	return recs, nil
}

func (r *Redis) Create(ctx context.Context, collection string, rec Record) (Record, error) {
	added, err := r.rdb.HSetNX(ctx, r.dataKey(collection), rec.ID, string(rec.Data)).Result()
	if err != nil {
		return Record{}, ioError("store.Redis.Create", collection, err)
	}
	if !added {
		return Record{}, conflict("store.Redis.Create", collection, rec.ID)
	}
	if err := r.rdb.RPush(ctx, r.idsKey(collection), rec.ID).Err(); err != nil {
		return Record{}, ioError("store.Redis.Create", collection, err)
	}
	return rec, nil
}

func (r *Redis) Update(ctx context.Context, collection, id string, rec Record) (Record, error) {
	_, err := r.rdb.HGet(ctx, r.dataKey(collection), id).Result()
	if errors.Is(err, redis.Nil) {
		return Record{}, notFound("store.Redis.Update", collection, id)
	}
	if err != nil {
		return Record{}, ioError("store.Redis.Update", collection, err)
	}
	if err := r.rdb.HSet(ctx, r.dataKey(collection), id, string(rec.Data)).Err(); err != nil {
		return Record{}, ioError("store.Redis.Update", collection, err)
	}
	rec.ID = id
	return rec, nil
}

func (r *Redis) Delete(ctx context.Context, collection, id string) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, r.dataKey(collection), id)
		pipe.LRem(ctx, r.idsKey(collection), 0, id)
		return nil
	})
	if err != nil {
		return ioError("store.Redis.Delete", collection, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
