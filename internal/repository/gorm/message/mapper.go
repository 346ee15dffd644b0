package messagegorm

import (
	"github.com/oggyb/sms-gateway-connector/internal/domain/message"
)

func toDomain(m *RequestModel) *message.Message {
	return &message.Message{
		ID:            m.ID,
		To:            m.To,
		Text:          m.Text,
		Status:        message.Status(m.Status),
		FailureDetail: m.FailureDetail,
		CompletedAt:   m.CompletedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toDomainMany(models []RequestModel) []*message.Message {
	out := make([]*message.Message, len(models))
	for i := range models {
		out[i] = toDomain(&models[i])
	}
	return out
}

func fromDomain(d *message.Message) *RequestModel {
	return &RequestModel{
		ID:            d.ID,
		To:            d.To,
		Text:          d.Text,
		Status:        string(d.Status),
		FailureDetail: d.FailureDetail,
		CompletedAt:   d.CompletedAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
