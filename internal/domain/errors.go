package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// Auth errors
	ErrPolicyViolation    = errors.New("this account type cannot self-register")
	ErrInvalidIdentifier  = errors.New("invalid mobile number")
	ErrConflict           = errors.New("user already exists with this mobile")
	ErrRateLimited        = errors.New("OTP was sent recently, wait before requesting another")
	ErrBlocked            = errors.New("too many failed attempts, try again later")
	ErrOTPNotFound        = errors.New("no OTP code found for this mobile")
	ErrOTPExpired         = errors.New("OTP code has expired")
	ErrInvalidOTP         = errors.New("invalid OTP code")
	ErrInvalidCredentials = errors.New("invalid mobile or password")
	ErrNotVerified        = errors.New("mobile number is not verified yet")
	ErrPasswordMismatch   = errors.New("passwords do not match")

	// Infrastructure errors
	ErrUnavailable = errors.New("service temporarily unavailable")
)

// RateLimitedError carries the remaining wait before another OTP may be
// requested. It matches ErrRateLimited under errors.Is.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("OTP was sent recently, retry in %ds", secondsCeil(e.RetryAfter))
}

func (e *RateLimitedError) Is(target error) bool { return target == ErrRateLimited }

// BlockedError carries the lockout deadline. It matches ErrBlocked under
// errors.Is.
type BlockedError struct {
	Until      time.Time
	RetryAfter time.Duration
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("too many failed attempts, try again in %ds", secondsCeil(e.RetryAfter))
}

func (e *BlockedError) Is(target error) bool { return target == ErrBlocked }

func secondsCeil(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

// SecondsCeil rounds a wait up to whole seconds for countdown display.
func SecondsCeil(d time.Duration) int { return secondsCeil(d) }
