package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const connectTimeout = 3 * time.Second

// redisBus bridges the bus contract onto Redis pub/sub. Redis guarantees
// per-channel delivery order to each subscriber, which is the only ordering
// the sync protocol relies on.
type redisBus struct {
	client *redis.Client
	prefix string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// ConnectRedis dials Redis and verifies the connection before returning the
// bridge. Callers wanting the degrade-to-noop behaviour use Connect instead.
func ConnectRedis(addr, namespace string) (Bus, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancelPing := context.WithTimeout(context.Background(), connectTimeout)
	defer cancelPing()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &redisBus{client: client, prefix: namespace, ctx: ctx, cancel: cancel}, nil
}

func (b *redisBus) channelName(channel string) string {
	if b.prefix == "" {
		return channel
	}
	return b.prefix + ":" + channel
}

// Listen subscribes on a dedicated goroutine that pumps messages into the
// handler until torn down.
func (b *redisBus) Listen(channel string, handler Handler) (func(), error) {
	name := b.channelName(channel)
	pubsub := b.client.Subscribe(b.ctx, name)

	// Force the subscription onto the wire before returning, so a caller
	// that announces itself right after Listen cannot miss the reply.
	if _, err := pubsub.Receive(b.ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", name, err)
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for msg := range pubsub.Channel() {
			dispatch(channel, handler, []byte(msg.Payload))
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { _ = pubsub.Close() })
	}, nil
}

// Emit publishes the JSON-encoded payload. Delivery is best effort; the
// caller decides whether the error is worth more than a trace entry.
func (b *redisBus) Emit(channel string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", channel, err)
	}
	if err := b.client.Publish(b.ctx, b.channelName(channel), data).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", channel, err)
	}
	return nil
}

// Close cancels every subscription pump and releases the client.
func (b *redisBus) Close() error {
	b.cancel()
	err := b.client.Close()
	b.wg.Wait()
	return err
}
