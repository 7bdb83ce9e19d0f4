package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noobtrump/lcache/pkg/codec"
)

// RedisStore keeps the snapshot under a single Redis key. The SET/GET pair is
// atomic on the server side, so readers always see a complete snapshot.
//
// RedisStore 将快照保存在单个Redis键下。SET/GET在服务端是原子的，
// 读取方总能看到完整快照。
type RedisStore[K comparable, V any] struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	codec  codec.Codec

	ownsClient bool
}

// RedisOptions selects the Redis server a store connects to.
// RedisOptions 指定存储连接的Redis服务器。
type RedisOptions struct {
	Addr         string        `json:"addr" yaml:"addr"`
	Password     string        `json:"password" yaml:"password"`
	DB           int           `json:"db" yaml:"db"`
	DialTimeout  time.Duration `json:"dial_timeout" yaml:"dial_timeout"`
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
// A nil codec means the default JSON codec. Close the store when done.
//
// NewRedisStore 连接Redis并通过ping验证连接。codec为nil时使用默认JSON
// 编解码器。使用完毕后请关闭存储。
//
// Parameters:
//   - ctx: Context governing the connection check
//   - opts: Server address and connection settings
//   - key: The Redis key the snapshot is stored under
//   - c: The codec used to encode snapshots, or nil for JSON
//
// Returns:
//   - *RedisStore[K, V]: The connected store
//   - error: An error if the server is unreachable
func NewRedisStore[K comparable, V any](ctx context.Context, opts *RedisOptions, key string, c codec.Codec) (*RedisStore[K, V], error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", opts.Addr, err)
	}
	s := NewRedisStoreWithClient[K, V](client, key, c)
	s.ownsClient = true
	return s, nil
}

// NewRedisStoreWithClient wraps an existing client, useful when the process
// already holds a shared connection pool. The store does not close the client.
//
// NewRedisStoreWithClient 包装已有的客户端，适用于进程已持有共享连接池的
// 情况。存储不会关闭该客户端。
func NewRedisStoreWithClient[K comparable, V any](client *redis.Client, key string, c codec.Codec) *RedisStore[K, V] {
	if c == nil {
		c = codec.DefaultCodec()
	}
	return &RedisStore[K, V]{
		client: client,
		key:    key,
		codec:  c,
	}
}

// WithTTL sets an expiry on the snapshot key, so snapshots from a retired
// deployment eventually disappear on their own. Zero keeps them forever.
//
// WithTTL 为快照键设置过期时间，使退役部署留下的快照最终自行消失。
// 零值表示永久保留。
func (s *RedisStore[K, V]) WithTTL(ttl time.Duration) *RedisStore[K, V] {
	s.ttl = ttl
	return s
}

// Save encodes the snapshot and SETs it under the store's key.
// Save 编码快照并SET到存储的键下。
func (s *RedisStore[K, V]) Save(ctx context.Context, snap *Snapshot[K, V]) error {
	data, err := s.codec.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("write snapshot to redis: %w", err)
	}
	return nil
}

// Load GETs and decodes the snapshot. A missing key yields (nil, nil).
// Load GET并解码快照。键不存在时返回(nil, nil)。
func (s *RedisStore[K, V]) Load(ctx context.Context) (*Snapshot[K, V], error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot from redis: %w", err)
	}
	return decodeSnapshot[K, V](s.codec, data)
}

// Delete removes the snapshot key.
// Delete 删除快照键。
func (s *RedisStore[K, V]) Delete(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}

// Close releases the connection when this store opened it; a store built
// around a shared client leaves the client alone.
//
// Close 在存储自行建立连接时释放连接；围绕共享客户端构建的存储不动该客户端。
func (s *RedisStore[K, V]) Close() error {
	if s.ownsClient {
		return s.client.Close()
	}
	return nil
}
