// Package connector is the client side of the SMS gateway service: it turns
// a send request into a bus message and the gateway's reply into an outcome.
package connector

import (
	"fmt"
	"log"
	"sync"

	"github.com/oggyb/sms-gateway-connector/internal/bus"
)

// DefaultServiceID is the bus address the SMS gateway service listens on.
const DefaultServiceID = "appsist:service:sms"

const (
	actionSendMessage = "sendMessage"
	statusOK          = "ok"
)

// Request is the envelope sent to the gateway.
type Request struct {
	Action string `json:"action"`
	To     string `json:"to"`
	Text   string `json:"text"`
}

// Reply is the envelope the gateway answers with.
type Reply struct {
	Status  string  `json:"status"`
	Message *string `json:"message,omitempty"`
}

// GatewayError is the failure outcome. Detail is nil when the gateway gave
// no message.
type GatewayError struct {
	Status string
	Detail *string
}

func (e *GatewayError) Error() string {
	if e.Detail != nil {
		return *e.Detail
	}
	return fmt.Sprintf("sms gateway replied with status %q", e.Status)
}

// DetailText returns the gateway's failure message, if it sent one.
func (e *GatewayError) DetailText() (string, bool) {
	if e.Detail == nil {
		return "", false
	}
	return *e.Detail, true
}

// CompletionHandler receives the outcome of SendMessage: nil on success,
// a *GatewayError on failure.
type CompletionHandler func(err error)

// GatewayConnector sends SMS requests to the gateway service. It holds no
// mutable state and is safe for concurrent use.
type GatewayConnector struct {
	bus     bus.Bus
	address string
}

// New creates a connector that talks to the gateway at address over b.
// An empty address selects DefaultServiceID.
func New(b bus.Bus, address string) *GatewayConnector {
	if address == "" {
		address = DefaultServiceID
	}
	return &GatewayConnector{
		bus:     b,
		address: address,
	}
}

// Address returns the bus address requests are sent to.
func (c *GatewayConnector) Address() string {
	return c.address
}

// SendMessage asks the gateway to send text to the phone number to, e.g.
// "+4916518375921". It returns immediately; onComplete, which may be nil,
// is called once the gateway replies. If no reply ever arrives onComplete
// is never called.
func (c *GatewayConnector) SendMessage(to, text string, onComplete CompletionHandler) {
	req := Request{
		Action: actionSendMessage,
		To:     to,
		Text:   text,
	}

	var once sync.Once
	c.bus.Send(c.address, req, func(msg bus.Message) {
		once.Do(func() {
			err := outcome(msg)
			if onComplete != nil {
				onComplete(err)
			}
		})
	})
}

// SendMessageAsync is SendMessage with the outcome delivered on a channel.
// The channel receives exactly one value per reply and nothing otherwise.
func (c *GatewayConnector) SendMessageAsync(to, text string) <-chan error {
	done := make(chan error, 1)
	c.SendMessage(to, text, func(err error) {
		done <- err
	})
	return done
}

// outcome derives the result from a gateway reply. Anything but status "ok",
// including a body that cannot be decoded, is a failure.
func outcome(msg bus.Message) error {
	var reply Reply
	if err := msg.Decode(&reply); err != nil {
		log.Printf("[Connector] undecodable reply %s: %v", msg.ID, err)
	}

	if reply.Status == statusOK {
		return nil
	}
	return &GatewayError{
		Status: reply.Status,
		Detail: reply.Message,
	}
}
