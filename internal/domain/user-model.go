package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserType string

const (
	TypePatient UserType = "patient"
	TypeStudent UserType = "student"
	TypeDoctor  UserType = "doctor"
	TypeNurse   UserType = "nurse"
	TypeAdmin   UserType = "admin"
	TypeGuest   UserType = "guest"
)

// SelfRegisterable reports whether accounts of this type may be created
// through the public register endpoint. Staff accounts are provisioned
// by an admin, never by self-registration.
func (t UserType) SelfRegisterable() bool {
	return t == TypePatient
}

// DefaultRoles returns the role set derived from the account type.
func (t UserType) DefaultRoles() []string {
	return []string{string(t)}
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName     string    `gorm:"not null" json:"full_name"`
	Mobile       string    `gorm:"uniqueIndex;not null" json:"mobile"` // always E.164
	Email        *string   `gorm:"uniqueIndex" json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Type         UserType  `gorm:"type:varchar(20);not null;default:patient" json:"type"`
	Roles        []string  `gorm:"serializer:json" json:"roles"`
	IsVerified   bool      `gorm:"not null;default:false" json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
