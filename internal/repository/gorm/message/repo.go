package messagegorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oggyb/sms-gateway-connector/internal/db"
	"github.com/oggyb/sms-gateway-connector/internal/domain/message"
)

// Repository is a GORM-backed implementation of message.Repository.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a journal repository using the given DB adapter.
func NewRepository(d db.DB) *Repository {
	return &Repository{
		db: d.Conn().(*gorm.DB),
	}
}

// Migrate creates or updates the sms_requests table.
func Migrate(d db.DB) error {
	return d.Conn().(*gorm.DB).AutoMigrate(&RequestModel{})
}

// Save inserts a new journal record.
func (r *Repository) Save(ctx context.Context, m *message.Message) error {
	return r.db.WithContext(ctx).Create(fromDomain(m)).Error
}

// UpdateOutcome persists the gateway's answer for an existing record.
func (r *Repository) UpdateOutcome(ctx context.Context, m *message.Message) error {
	updates := map[string]interface{}{
		"status":         string(m.Status),
		"failure_detail": m.FailureDetail,
		"completed_at":   m.CompletedAt,
	}

	res := r.db.WithContext(ctx).
		Model(&RequestModel{}).
		Where("id = ?", m.ID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return message.ErrNotFound
	}
	return nil
}

// Get loads a single record by ID.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*message.Message, error) {
	var model RequestModel

	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, message.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return toDomain(&model), nil
}

// List returns a page of records, newest first, and the total count.
func (r *Repository) List(ctx context.Context, page, limit int) ([]*message.Message, int64, error) {
	var models []RequestModel
	var total int64

	query := r.db.WithContext(ctx).Model(&RequestModel{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit

	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	return toDomainMany(models), total, nil
}

var _ message.Repository = (*Repository)(nil)
