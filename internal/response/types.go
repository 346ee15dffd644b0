package response

import (
	"time"

	domain "github.com/oggyb/sms-gateway-connector/internal/domain/message"
)

type WelcomePayload struct {
	Message string `json:"message"`
}

type HealthPayload struct {
	Status string `json:"status"`
}

type WelcomeResponse struct {
	Success   bool           `json:"success"`
	Data      WelcomePayload `json:"data"`
	Timestamp string         `json:"timestamp"`
}

type HealthResponse struct {
	Success   bool          `json:"success"`
	Data      HealthPayload `json:"data"`
	Timestamp string        `json:"timestamp"`
}

// MessageDTO is the public-facing representation of a journaled request.
// FailureDetail is omitted when the gateway sent no message.
type MessageDTO struct {
	ID            string     `json:"id"`
	To            string     `json:"to"`
	Text          string     `json:"text"`
	Status        string     `json:"status"`
	FailureDetail *string    `json:"failureDetail,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type MessageResponse struct {
	Success   bool       `json:"success"`
	Data      MessageDTO `json:"data"`
	Timestamp string     `json:"timestamp"`
}

type MessagesPayload struct {
	Items []MessageDTO `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

type MessagesResponse struct {
	Success   bool            `json:"success"`
	Data      MessagesPayload `json:"data"`
	Timestamp string          `json:"timestamp"`
}

type StatsPayload struct {
	Sent      int64 `json:"sent"`
	Succeeded int64 `json:"succeeded"`
	Failed    int64 `json:"failed"`
}

type StatsResponse struct {
	Success   bool         `json:"success"`
	Data      StatsPayload `json:"data"`
	Timestamp string       `json:"timestamp"`
}

// FromDomainMessage converts a domain message into its DTO.
func FromDomainMessage(m *domain.Message) MessageDTO {
	return MessageDTO{
		ID:            m.ID.String(),
		To:            m.To,
		Text:          m.Text,
		Status:        string(m.Status),
		FailureDetail: m.FailureDetail,
		CompletedAt:   m.CompletedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// FromDomainMessages converts domain messages into DTOs.
func FromDomainMessages(msgs []*domain.Message) []MessageDTO {
	out := make([]MessageDTO, len(msgs))
	for i, m := range msgs {
		out[i] = FromDomainMessage(m)
	}
	return out
}
