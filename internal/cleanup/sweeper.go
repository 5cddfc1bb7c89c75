package cleanup

import (
	"context"
	"log"
	"time"

	"github.com/SehaTech/auth_service/internal/repository"
)

// Sweeper periodically deletes expired OTP challenges. It is purely
// housekeeping: every read path re-checks expiry itself, so correctness
// never depends on the sweep having run.
type Sweeper struct {
	otps     repository.OTPRepository
	interval time.Duration
}

func NewSweeper(otps repository.OTPRepository, interval time.Duration) *Sweeper {
	return &Sweeper{otps: otps, interval: interval}
}

func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	count, err := s.otps.DeleteExpired(ctx, time.Now())
	if err != nil {
		log.Printf("otp sweep error: %v", err)
		return
	}
	if count > 0 {
		log.Printf("deleted %d expired OTP records", count)
	}
}
