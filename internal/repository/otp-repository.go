package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/SehaTech/auth_service/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OTPRepository interface {
	CreateChallenge(ctx context.Context, challenge *domain.OtpChallenge) error
	// LatestChallenge returns the most recently created challenge for the
	// mobile, or gorm.ErrRecordNotFound when none exists.
	LatestChallenge(ctx context.Context, mobile string) (*domain.OtpChallenge, error)
	// ConsumeChallenge deletes the challenge by id. It returns false when
	// the row was already gone, so two concurrent verifies cannot both
	// spend the same code.
	ConsumeChallenge(ctx context.Context, id uuid.UUID) (bool, error)
	ClearChallenges(ctx context.Context, mobile string) error
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

type otpRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) OTPRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) CreateChallenge(ctx context.Context, challenge *domain.OtpChallenge) error {
	if challenge == nil {
		return errors.New("nil challenge")
	}

	if err := r.db.WithContext(ctx).Create(challenge).Error; err != nil {
		log.Printf("create otp challenge error: %v", err)
		return domain.ErrUnavailable
	}
	return nil
}

func (r *otpRepository) LatestChallenge(ctx context.Context, mobile string) (*domain.OtpChallenge, error) {
	challenge := &domain.OtpChallenge{}

	err := r.db.WithContext(ctx).
		Where("mobile = ?", mobile).
		Order("created_at DESC").
		First(challenge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		log.Printf("latest otp challenge error: %v", err)
		return nil, domain.ErrUnavailable
	}

	return challenge, nil
}

func (r *otpRepository) ConsumeChallenge(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&domain.OtpChallenge{}, "id = ?", id)
	if res.Error != nil {
		log.Printf("consume otp challenge error: %v", res.Error)
		return false, domain.ErrUnavailable
	}
	return res.RowsAffected > 0, nil
}

func (r *otpRepository) ClearChallenges(ctx context.Context, mobile string) error {
	if err := r.db.WithContext(ctx).Delete(&domain.OtpChallenge{}, "mobile = ?", mobile).Error; err != nil {
		log.Printf("clear otp challenges error: %v", err)
		return domain.ErrUnavailable
	}
	return nil
}

func (r *otpRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&domain.OtpChallenge{}, "expires_at < ?", cutoff)
	if res.Error != nil {
		log.Printf("delete expired otp challenges error: %v", res.Error)
		return 0, domain.ErrUnavailable
	}
	return res.RowsAffected, nil
}
