// Package bus defines the request/reply contract the SMS gateway connector
// talks through, plus an in-process implementation of it.
package bus

import (
	"context"
	"encoding/json"
)

// Message is the envelope carried on the bus. Body holds the JSON-encoded
// payload; transports never inspect it. A reply carries the ID of its
// request in CorrelationID.
type Message struct {
	ID            string          `json:"id"`
	Address       string          `json:"address"`
	ReplyTo       string          `json:"replyTo,omitempty"`
	CorrelationID string          `json:"correlationId,omitempty"`
	Body          json.RawMessage `json:"body"`
}

// Decode unmarshals the message body into v.
func (m Message) Decode(v any) error {
	return json.Unmarshal(m.Body, v)
}

// ReplyHandler receives the single reply to a request sent with Bus.Send.
type ReplyHandler func(reply Message)

// Handler serves a request on the consumer side. A nil reply means the
// request is left unanswered.
type Handler func(ctx context.Context, req Message) (reply any)

// Bus is the sending half of a request/reply message bus.
type Bus interface {
	// Send submits body to address and returns immediately. onReply is
	// invoked at most once, on whatever goroutine the transport delivers
	// replies on. A request that cannot be delivered never gets a reply.
	Send(address string, body any, onReply ReplyHandler)
}
