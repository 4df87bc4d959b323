package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"booking-platform/internal/config"
	"booking-platform/internal/metrics"
	"booking-platform/pkg/logger"
)

// Operation names used in logs and metrics
const (
	opGet        = "get"
	opSet        = "set"
	opDelete     = "del"
	opInvalidate = "invalidate_pattern"
	opExists     = "exists"
	opExpire     = "expire"
	opIncrement  = "increment"
	opSetHash    = "hset"
	opGetHash    = "hget"
	opFlushAll   = "flush_all"
)

// Operation outcomes
const (
	outcomeHit     = "hit"
	outcomeMiss    = "miss"
	outcomeOK      = "ok"
	outcomeError   = "error"
	outcomeSkipped = "skipped"
)

// scanBatch is the COUNT hint used while walking the namespace
const scanBatch = 100

// Options configures a RedisCache. Only Addr is required.
type Options struct {
	Addr                 string
	Password             string
	DB                   int
	KeyPrefix            string
	MaxRetriesPerRequest int
	RetryDelay           time.Duration
	DialTimeout          time.Duration
	EnableReadyCheck     bool
	LazyConnect          bool
	Codec                Codec

	Logger  *logger.Logger
	Metrics *metrics.Metrics
}

// OptionsFromConfig maps the env-driven cache section onto Options
func OptionsFromConfig(cfg config.RedisConfig, log *logger.Logger, m *metrics.Metrics) (Options, error) {
	codec, err := CodecByName(cfg.Codec)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Addr:                 cfg.Addr(),
		Password:             cfg.Password,
		DB:                   cfg.DB,
		KeyPrefix:            cfg.KeyPrefix,
		MaxRetriesPerRequest: cfg.MaxRetriesPerRequest,
		RetryDelay:           cfg.RetryDelay,
		DialTimeout:          cfg.DialTimeout,
		EnableReadyCheck:     cfg.EnableReadyCheck,
		LazyConnect:          cfg.LazyConnect,
		Codec:                codec,
		Logger:               log,
		Metrics:              m,
	}, nil
}

// RedisCache implements Cache on top of a single shared go-redis client.
// No locking is done here; Redis serializes individual commands.
type RedisCache struct {
	client  *redis.Client
	prefix  string
	codec   Codec
	log     *logger.Logger
	metrics *metrics.Metrics
	state   *connState

	retryDelay  time.Duration
	dialTimeout time.Duration

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

var _ Cache = (*RedisCache)(nil)

// NewRedisCache creates the cache client. It never fails because the store
// is unreachable: the cache starts disconnected and connects lazily (or in
// the background when LazyConnect is false). Only invalid options error.
func NewRedisCache(opts Options) (*RedisCache, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis cache: address is required")
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 100 * time.Millisecond
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 5 * time.Second
	}
	if opts.Codec == nil {
		opts.Codec = JSONCodec{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	// go-redis reads 0 as "default (3)" and -1 as "no retries"
	maxRetries := opts.MaxRetriesPerRequest
	if maxRetries == 0 {
		maxRetries = -1
	}

	log := opts.Logger.Named("cache")
	state := newConnState(log, opts.Metrics)

	c := &RedisCache{
		prefix:      opts.KeyPrefix,
		codec:       opts.Codec,
		log:         log,
		metrics:     opts.Metrics,
		state:       state,
		retryDelay:  opts.RetryDelay,
		dialTimeout: opts.DialTimeout,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}

	c.client = redis.NewClient(&redis.Options{
		Addr:            opts.Addr,
		Password:        opts.Password,
		DB:              opts.DB,
		MaxRetries:      maxRetries,
		MinRetryBackoff: opts.RetryDelay,
		MaxRetryBackoff: opts.RetryDelay,
		DialTimeout:     opts.DialTimeout,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
		PoolSize:        10,
		OnConnect: func(ctx context.Context, cn *redis.Conn) error {
			if opts.EnableReadyCheck {
				if err := cn.Ping(ctx).Err(); err != nil {
					return fmt.Errorf("ready check failed: %w", err)
				}
			}
			state.onConnect()
			return nil
		},
	})
	c.client.AddHook(stateHook{state: state})

	go c.watch()

	if !opts.LazyConnect {
		go c.connect(context.Background())
	}

	return c, nil
}

// connect performs the first connection attempt
func (c *RedisCache) connect(ctx context.Context) bool {
	if !c.state.beginConnect() {
		return c.state.connected()
	}

	pingCtx, cancel := context.WithTimeout(ctx, c.dialTimeout)
	defer cancel()

	if err := c.client.Ping(pingCtx).Err(); err != nil {
		// the caller gave up, which says nothing about the store
		if ctx.Err() != nil {
			c.state.resetConnect()
			return false
		}
		c.state.onError(err)
		return false
	}
	c.state.onConnect()
	return true
}

// watch retries the backing store every retryDelay while the cache is in
// StateReconnecting, until Close is called
func (c *RedisCache) watch() {
	defer close(c.done)

	ticker := time.NewTicker(c.retryDelay)
	defer ticker.Stop()

	attempt := 0
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
		}

		if c.state.load() != StateReconnecting {
			attempt = 0
			continue
		}

		attempt++
		ctx, cancel := context.WithTimeout(context.Background(), c.dialTimeout)
		err := c.client.Ping(ctx).Err()
		cancel()

		c.state.onReconnecting(attempt, err)
		if err == nil {
			c.state.onConnect()
			attempt = 0
		}
	}
}

// available decides whether an operation may touch the network
func (c *RedisCache) available(ctx context.Context, op, key string) bool {
	switch c.state.load() {
	case StateReady:
		return true
	case StateIdle:
		if c.connect(ctx) {
			return true
		}
	}
	c.record(op, key, outcomeSkipped, nil)
	return false
}

// record logs and counts the outcome of one operation
func (c *RedisCache) record(op, key, outcome string, err error) {
	c.metrics.CacheOperation(op, outcome)
	if err != nil {
		c.log.Warnw("cache operation failed", "op", op, "key", key, "outcome", outcome, "error", err)
		return
	}
	c.log.Debugw("cache operation", "op", op, "key", key, "outcome", outcome)
}

// prefixKey adds the namespace prefix to a logical key
func (c *RedisCache) prefixKey(key string) string {
	return c.prefix + key
}

// Get retrieves and decodes a value. Absent keys, decode failures and
// connectivity problems all read as a miss.
func (c *RedisCache) Get(ctx context.Context, key string, dest any) bool {
	if !c.available(ctx, opGet, key) {
		return false
	}

	data, err := c.client.Get(ctx, c.prefixKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.record(opGet, key, outcomeMiss, nil)
		return false
	}
	if err != nil {
		c.record(opGet, key, outcomeError, err)
		return false
	}

	if err := c.codec.Unmarshal(data, dest); err != nil {
		c.record(opGet, key, outcomeError, fmt.Errorf("decode: %w", err))
		return false
	}

	c.record(opGet, key, outcomeHit, nil)
	return true
}

// Set encodes value and writes it with SETEX
func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	if !c.available(ctx, opSet, key) {
		return false
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	data, err := c.codec.Marshal(value)
	if err != nil {
		c.record(opSet, key, outcomeError, fmt.Errorf("encode: %w", err))
		return false
	}

	if err := c.client.SetEx(ctx, c.prefixKey(key), data, ttl).Err(); err != nil {
		c.record(opSet, key, outcomeError, err)
		return false
	}

	c.record(opSet, key, outcomeOK, nil)
	return true
}

// Delete removes a key from Redis
func (c *RedisCache) Delete(ctx context.Context, key string) bool {
	if !c.available(ctx, opDelete, key) {
		return false
	}

	if err := c.client.Del(ctx, c.prefixKey(key)).Err(); err != nil {
		c.record(opDelete, key, outcomeError, err)
		return false
	}

	c.record(opDelete, key, outcomeOK, nil)
	return true
}

// InvalidatePattern walks the namespace with SCAN and removes every match
// with a single DEL
func (c *RedisCache) InvalidatePattern(ctx context.Context, pattern string) int64 {
	if !c.available(ctx, opInvalidate, pattern) {
		return 0
	}

	var keys []string
	iter := c.client.Scan(ctx, 0, escapeGlob(c.prefix)+pattern, scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.record(opInvalidate, pattern, outcomeError, err)
		return 0
	}

	if len(keys) == 0 {
		c.record(opInvalidate, pattern, outcomeMiss, nil)
		return 0
	}

	deleted, err := c.client.Del(ctx, keys...).Result()
	if err != nil {
		c.record(opInvalidate, pattern, outcomeError, err)
		return 0
	}

	c.log.Debugw("cache pattern invalidated", "pattern", pattern, "deleted", deleted)
	c.metrics.CacheOperation(opInvalidate, outcomeOK)
	return deleted
}

// Exists checks if a key exists in Redis
func (c *RedisCache) Exists(ctx context.Context, key string) bool {
	if !c.available(ctx, opExists, key) {
		return false
	}

	count, err := c.client.Exists(ctx, c.prefixKey(key)).Result()
	if err != nil {
		c.record(opExists, key, outcomeError, err)
		return false
	}

	if count == 0 {
		c.record(opExists, key, outcomeMiss, nil)
		return false
	}
	c.record(opExists, key, outcomeHit, nil)
	return true
}

// Expire resets the TTL of an existing key; false if the key is absent
func (c *RedisCache) Expire(ctx context.Context, key string, ttl time.Duration) bool {
	if !c.available(ctx, opExpire, key) {
		return false
	}

	ok, err := c.client.Expire(ctx, c.prefixKey(key), ttl).Result()
	if err != nil {
		c.record(opExpire, key, outcomeError, err)
		return false
	}

	if !ok {
		c.record(opExpire, key, outcomeMiss, nil)
		return false
	}
	c.record(opExpire, key, outcomeOK, nil)
	return true
}

// Increment atomically adds by to a counter with INCRBY
func (c *RedisCache) Increment(ctx context.Context, key string, by int64) (int64, bool) {
	if !c.available(ctx, opIncrement, key) {
		return 0, false
	}

	count, err := c.client.IncrBy(ctx, c.prefixKey(key), by).Result()
	if err != nil {
		c.record(opIncrement, key, outcomeError, err)
		return 0, false
	}

	c.record(opIncrement, key, outcomeOK, nil)
	return count, true
}

// IncrementWithTTL runs INCRBY and EXPIRE NX in one MULTI/EXEC. A window
// counter can therefore never be left without an expiry, and a counter that
// lost its TTL gets one back on the next hit.
func (c *RedisCache) IncrementWithTTL(ctx context.Context, key string, by int64, ttl time.Duration) (int64, bool) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if !c.available(ctx, opIncrement, key) {
		return 0, false
	}

	k := c.prefixKey(key)
	var incr *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.IncrBy(ctx, k, by)
		pipe.ExpireNX(ctx, k, ttl)
		return nil
	})
	if err != nil {
		c.record(opIncrement, key, outcomeError, err)
		return 0, false
	}

	c.record(opIncrement, key, outcomeOK, nil)
	return incr.Val(), true
}

// SetHash encodes value into a single hash field
func (c *RedisCache) SetHash(ctx context.Context, key, field string, value any) bool {
	if !c.available(ctx, opSetHash, key) {
		return false
	}

	data, err := c.codec.Marshal(value)
	if err != nil {
		c.record(opSetHash, key, outcomeError, fmt.Errorf("encode field %s: %w", field, err))
		return false
	}

	if err := c.client.HSet(ctx, c.prefixKey(key), field, data).Err(); err != nil {
		c.record(opSetHash, key, outcomeError, err)
		return false
	}

	c.record(opSetHash, key, outcomeOK, nil)
	return true
}

// GetHash decodes a single hash field into dest
func (c *RedisCache) GetHash(ctx context.Context, key, field string, dest any) bool {
	if !c.available(ctx, opGetHash, key) {
		return false
	}

	data, err := c.client.HGet(ctx, c.prefixKey(key), field).Bytes()
	if errors.Is(err, redis.Nil) {
		c.record(opGetHash, key, outcomeMiss, nil)
		return false
	}
	if err != nil {
		c.record(opGetHash, key, outcomeError, err)
		return false
	}

	if err := c.codec.Unmarshal(data, dest); err != nil {
		c.record(opGetHash, key, outcomeError, fmt.Errorf("decode field %s: %w", field, err))
		return false
	}

	c.record(opGetHash, key, outcomeHit, nil)
	return true
}

// FlushAll wipes the whole store, including keys outside the namespace
func (c *RedisCache) FlushAll(ctx context.Context) bool {
	if !c.available(ctx, opFlushAll, "*") {
		return false
	}

	if err := c.client.FlushAll(ctx).Err(); err != nil {
		c.record(opFlushAll, "*", outcomeError, err)
		return false
	}

	c.log.Warnw("cache flushed", "prefix", c.prefix)
	c.metrics.CacheOperation(opFlushAll, outcomeOK)
	return true
}

// IsConnected reports whether operations currently reach the store
func (c *RedisCache) IsConnected() bool {
	return c.state.connected()
}

// State returns the detailed connection state
func (c *RedisCache) State() State {
	return c.state.load()
}

// Prefix returns the namespace this cache writes under
func (c *RedisCache) Prefix() string {
	return c.prefix
}

// Close stops the reconnect watcher and closes the Redis connection.
// Safe to call multiple times.
func (c *RedisCache) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.stop)
		<-c.done
		c.state.onClose()
		if cerr := c.client.Close(); cerr != nil && !errors.Is(cerr, redis.ErrClosed) {
			err = fmt.Errorf("redis close failed: %w", cerr)
		}
	})
	return err
}

// escapeGlob quotes the characters SCAN MATCH treats specially so the
// namespace prefix is always matched literally
func escapeGlob(s string) string {
	if !strings.ContainsAny(s, `*?[]\`) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
