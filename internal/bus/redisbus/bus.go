// Package redisbus is a Bus backed by Redis lists.
//
// A request is LPUSHed as a JSON envelope onto the list named after its
// address. Every Bus owns one reply list and one listener goroutine that
// BLPOPs it and hands each reply to the handler registered under the
// reply's CorrelationID. Consumers push the reply and let the list expire
// after ReplyTTL so replies nobody waits for do not pile up.
package redisbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/oggyb/sms-gateway-connector/internal/bus"
)

const (
	// DefaultReplyTTL bounds how long an unread reply stays in Redis.
	DefaultReplyTTL = 5 * time.Minute

	// DefaultPollInterval is the BLPOP timeout used between checks for Close.
	DefaultPollInterval = time.Second

	// replyPrefix names the per-bus reply lists.
	replyPrefix = "bus:reply"
)

// Options tunes a Bus. Zero values fall back to the defaults above.
type Options struct {
	ReplyTTL     time.Duration
	PollInterval time.Duration
}

// Bus implements bus.Bus on top of a go-redis client. Waiting for replies
// holds a single pool connection no matter how many requests are pending.
type Bus struct {
	rdb          *redis.Client
	replyTTL     time.Duration
	pollInterval time.Duration
	replyTo      string

	mu      sync.Mutex
	pending map[string]bus.ReplyHandler

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a Redis-backed bus using rdb and starts its reply listener.
// The client stays owned by the caller.
func New(rdb *redis.Client, opts Options) *Bus {
	if opts.ReplyTTL <= 0 {
		opts.ReplyTTL = DefaultReplyTTL
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	b := &Bus{
		rdb:          rdb,
		replyTTL:     opts.ReplyTTL,
		pollInterval: opts.PollInterval,
		replyTo:      fmt.Sprintf("%s:%s", replyPrefix, uuid.NewString()),
		pending:      make(map[string]bus.ReplyHandler),
		ctx:          ctx,
		cancel:       cancel,
		done:         make(chan struct{}),
	}

	go b.listen()

	return b
}

// ReplyAddress returns the list this bus receives its replies on.
func (b *Bus) ReplyAddress() string {
	return b.replyTo
}

// Send implements bus.Bus.Send. The wait for the reply has no deadline of
// its own; only Close ends it, without calling onReply. A nil onReply
// sends the request without asking for a reply.
func (b *Bus) Send(address string, body any, onReply bus.ReplyHandler) {
	raw, err := json.Marshal(body)
	if err != nil {
		log.Printf("[Bus] failed to encode request for %s: %v", address, err)
		return
	}

	id := uuid.NewString()
	req := bus.Message{
		ID:      id,
		Address: address,
		Body:    raw,
	}
	if onReply != nil {
		req.ReplyTo = b.replyTo
	}

	data, err := json.Marshal(req)
	if err != nil {
		log.Printf("[Bus] failed to encode envelope %s: %v", id, err)
		return
	}

	// Register before pushing so a fast reply cannot beat the handler.
	if onReply != nil {
		b.mu.Lock()
		b.pending[id] = onReply
		b.mu.Unlock()
	}

	if err := b.rdb.LPush(b.ctx, address, data).Err(); err != nil {
		log.Printf("[Bus] failed to submit %s to %s: %v", id, address, err)
		b.take(id)
	}
}

// take removes and returns the handler waiting on id.
func (b *Bus) take(id string) bus.ReplyHandler {
	b.mu.Lock()
	defer b.mu.Unlock()

	h, ok := b.pending[id]
	if !ok {
		return nil
	}
	delete(b.pending, id)
	return h
}

// Pending reports how many requests are still waiting for a reply.
func (b *Bus) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// listen reads the reply list until Close and dispatches each reply by
// correlation id.
func (b *Bus) listen() {
	defer close(b.done)

	for {
		res, err := b.rdb.BLPop(b.ctx, b.pollInterval, b.replyTo).Result()
		if b.ctx.Err() != nil {
			return
		}
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			log.Printf("[Bus] waiting on %s failed: %v", b.replyTo, err)
			if !b.sleep() {
				return
			}
			continue
		}

		var reply bus.Message
		if err := json.Unmarshal([]byte(res[1]), &reply); err != nil {
			log.Printf("[Bus] dropping malformed reply on %s: %v", b.replyTo, err)
			continue
		}

		h := b.take(reply.CorrelationID)
		if h == nil {
			log.Printf("[Bus] no request waiting for reply %s, dropping", reply.CorrelationID)
			continue
		}
		h(reply)
	}
}

// Consume serves requests arriving on address until ctx is cancelled or the
// bus is closed. Replies are pushed to each request's ReplyTo list.
func (b *Bus) Consume(ctx context.Context, address string, h bus.Handler) error {
	for {
		if ctx.Err() != nil || b.ctx.Err() != nil {
			return nil
		}

		res, err := b.rdb.BLPop(ctx, b.pollInterval, address).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil || b.ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("consume %s: %w", address, err)
		}

		var req bus.Message
		if err := json.Unmarshal([]byte(res[1]), &req); err != nil {
			log.Printf("[Bus] dropping malformed request on %s: %v", address, err)
			continue
		}

		reply := h(ctx, req)
		if reply == nil || req.ReplyTo == "" {
			continue
		}

		if err := b.reply(ctx, req, reply); err != nil {
			log.Printf("[Bus] failed to reply to %s: %v", req.ID, err)
		}
	}
}

func (b *Bus) reply(ctx context.Context, req bus.Message, reply any) error {
	raw, err := json.Marshal(reply)
	if err != nil {
		return fmt.Errorf("encode reply: %w", err)
	}

	data, err := json.Marshal(bus.Message{
		ID:            uuid.NewString(),
		Address:       req.ReplyTo,
		CorrelationID: req.ID,
		Body:          raw,
	})
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	_, err = b.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, req.ReplyTo, data)
		pipe.Expire(ctx, req.ReplyTo, b.replyTTL)
		return nil
	})
	return err
}

// sleep waits one poll interval; it reports false if the bus was closed.
func (b *Bus) sleep() bool {
	t := time.NewTimer(b.pollInterval)
	defer t.Stop()

	select {
	case <-b.ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// Ping checks that Redis is reachable.
func (b *Bus) Ping(ctx context.Context) error {
	return b.rdb.Ping(ctx).Err()
}

// Close stops the reply listener and abandons every pending request. Their
// handlers are never invoked.
func (b *Bus) Close() error {
	b.cancel()
	<-b.done

	b.mu.Lock()
	clear(b.pending)
	b.mu.Unlock()
	return nil
}

var _ bus.Bus = (*Bus)(nil)
