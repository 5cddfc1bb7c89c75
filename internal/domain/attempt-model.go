package domain

import "time"

type AttemptScope string

const (
	// AttemptScopeOtp gates verify-otp and reset-password code checks.
	AttemptScopeOtp AttemptScope = "otp"
	// AttemptScopeLogin gates password login.
	AttemptScopeLogin AttemptScope = "login"
)

// AttemptCounter tracks consecutive failures for one mobile in one scope.
// Attempts only grows on failure and goes back to 0 on the next success;
// the row itself is kept so history survives across sessions.
type AttemptCounter struct {
	Mobile       string       `gorm:"primaryKey;size:20" json:"mobile"`
	Scope        AttemptScope `gorm:"primaryKey;size:10" json:"scope"`
	Attempts     int          `gorm:"not null;default:0" json:"attempts"`
	BlockedUntil *time.Time   `json:"blocked_until,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Blocked reports whether the counter is inside an active lockout window.
func (c *AttemptCounter) Blocked(now time.Time) bool {
	return c != nil && c.BlockedUntil != nil && now.Before(*c.BlockedUntil)
}
