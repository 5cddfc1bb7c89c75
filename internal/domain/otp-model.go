package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OtpChallenge is one issued OTP code for a mobile number. A new code is
// always a new row; the operative challenge is the most recently created
// one for the mobile. Codes are stored as a sha256 digest, never plaintext.
type OtpChallenge struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Mobile          string    `gorm:"index;not null" json:"mobile"`
	CodeHash        string    `gorm:"not null" json:"-"`
	ExpiresAt       time.Time `gorm:"not null" json:"expires_at"`
	ResendAllowedAt time.Time `gorm:"not null" json:"resend_allowed_at"`
	CreatedAt       time.Time `json:"created_at"`
}

func (c *OtpChallenge) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
