// Package message holds the journal entry recorded for every SMS request
// forwarded to the gateway.
package message

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

var (
	// ErrEmptyRecipient is returned when no recipient phone number is provided.
	ErrEmptyRecipient = errors.New("recipient phone number is required")
	// ErrNotFound is returned when no journal entry exists for an ID.
	ErrNotFound = errors.New("message not found")
)

// Message is one SMS request and, once the gateway replied, its outcome.
type Message struct {
	ID            uuid.UUID
	To            string
	Text          string
	Status        Status
	FailureDetail *string
	CompletedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewMessage constructs a pending Message. The text is passed on as-is and
// may be empty.
func NewMessage(to, text string) (*Message, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return nil, ErrEmptyRecipient
	}

	now := time.Now()
	return &Message{
		ID:        uuid.New(),
		To:        to,
		Text:      text,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsCompleted reports whether the gateway has answered.
func (m *Message) IsCompleted() bool {
	return m.Status != StatusPending
}

// MarkSucceeded records a positive gateway reply.
func (m *Message) MarkSucceeded() {
	now := time.Now()
	m.Status = StatusSuccess
	m.FailureDetail = nil
	m.CompletedAt = &now
	m.UpdatedAt = now
}

// MarkFailed records a negative gateway reply. detail is nil when the
// gateway sent no message.
func (m *Message) MarkFailed(detail *string) {
	now := time.Now()
	m.Status = StatusFailed
	m.FailureDetail = detail
	m.CompletedAt = &now
	m.UpdatedAt = now
}
