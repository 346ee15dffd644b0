package message

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence operations for the request journal.
//
// It is implemented by infrastructure layers (e.g. GORM) while the service
// layer depends only on this interface.
type Repository interface {
	// Save persists a new message.
	Save(ctx context.Context, m *Message) error

	// UpdateOutcome stores the status, failure detail and completion time.
	UpdateOutcome(ctx context.Context, m *Message) error

	// Get returns the message with the given ID or ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (*Message, error)

	// List returns a page of messages, newest first, along with the total
	// number of records.
	List(ctx context.Context, page, limit int) ([]*Message, int64, error)
}
