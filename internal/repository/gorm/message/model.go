package messagegorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestModel is the GORM persistence model for journaled SMS requests.
// It maps directly to the "sms_requests" table in Postgres.
type RequestModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	To            string     `gorm:"type:text;not null"`
	Text          string     `gorm:"type:text;not null"`
	Status        string     `gorm:"size:20;not null;index"`
	FailureDetail *string    `gorm:"type:text"`
	CompletedAt   *time.Time `gorm:"index"`
	CreatedAt     time.Time  `gorm:"not null;index"`
	UpdatedAt     time.Time
}

// TableName overrides the default table name used by GORM.
func (RequestModel) TableName() string {
	return "sms_requests"
}

// BeforeCreate ensures a UUID is set before inserting a new record.
func (m *RequestModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
