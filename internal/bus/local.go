package bus

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Local is an in-process bus. Consumers register per address; each request
// is served on its own goroutine and the reply is delivered on that same
// goroutine.
type Local struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewLocal creates an empty in-process bus.
func NewLocal() *Local {
	return &Local{handlers: make(map[string]Handler)}
}

// Consume registers h as the consumer for address, replacing any previous
// one. The returned func removes the registration.
func (b *Local) Consume(address string, h Handler) (unregister func()) {
	b.mu.Lock()
	b.handlers[address] = h
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, address)
	}
}

// Send implements Bus.Send.
func (b *Local) Send(address string, body any, onReply ReplyHandler) {
	raw, err := json.Marshal(body)
	if err != nil {
		log.Printf("[Bus] failed to encode request for %s: %v", address, err)
		return
	}

	b.mu.RLock()
	h, ok := b.handlers[address]
	b.mu.RUnlock()
	if !ok {
		log.Printf("[Bus] no consumer registered for %s, dropping request", address)
		return
	}

	req := Message{
		ID:      uuid.NewString(),
		Address: address,
		Body:    raw,
	}

	go func() {
		reply := h(context.Background(), req)
		if reply == nil || onReply == nil {
			return
		}

		replyBody, err := json.Marshal(reply)
		if err != nil {
			log.Printf("[Bus] failed to encode reply to %s: %v", req.ID, err)
			return
		}

		onReply(Message{
			ID:            uuid.NewString(),
			Address:       address,
			CorrelationID: req.ID,
			Body:          replyBody,
		})
	}()
}

var _ Bus = (*Local)(nil)
