package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/SehaTech/auth_service/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptRepository interface {
	// Get returns the counter for mobile+scope, or a zero counter when the
	// identifier has never failed.
	Get(ctx context.Context, mobile string, scope domain.AttemptScope) (*domain.AttemptCounter, error)
	// RecordFailure atomically increments the counter and, once attempts
	// reach max, stamps blockedUntil = now + blockFor. The returned counter
	// reflects the state after this failure.
	RecordFailure(ctx context.Context, mobile string, scope domain.AttemptScope, max int, blockFor time.Duration, now time.Time) (*domain.AttemptCounter, error)
	// Reset zeroes attempts and clears any lockout. The row is kept.
	Reset(ctx context.Context, mobile string, scope domain.AttemptScope) error
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Get(ctx context.Context, mobile string, scope domain.AttemptScope) (*domain.AttemptCounter, error) {
	counter := &domain.AttemptCounter{}

	err := r.db.WithContext(ctx).
		Where("mobile = ? AND scope = ?", mobile, scope).
		First(counter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.AttemptCounter{Mobile: mobile, Scope: scope}, nil
		}
		log.Printf("get attempt counter error: %v", err)
		return nil, domain.ErrUnavailable
	}

	return counter, nil
}

func (r *attemptRepository) RecordFailure(ctx context.Context, mobile string, scope domain.AttemptScope, max int, blockFor time.Duration, now time.Time) (*domain.AttemptCounter, error) {
	counter := &domain.AttemptCounter{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Upsert with an in-database increment so two concurrent failures
		// cannot both read the same prior count.
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "mobile"}, {Name: "scope"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"attempts":   gorm.Expr("attempt_counters.attempts + 1"),
				"updated_at": now,
			}),
		}).Create(&domain.AttemptCounter{
			Mobile:    mobile,
			Scope:     scope,
			Attempts:  1,
			CreatedAt: now,
			UpdatedAt: now,
		}).Error
		if err != nil {
			return err
		}

		if err := tx.Where("mobile = ? AND scope = ?", mobile, scope).First(counter).Error; err != nil {
			return err
		}

		if counter.Attempts >= max {
			until := now.Add(blockFor)
			counter.BlockedUntil = &until
			return tx.Model(&domain.AttemptCounter{}).
				Where("mobile = ? AND scope = ?", mobile, scope).
				Update("blocked_until", until).Error
		}
		return nil
	})
	if err != nil {
		log.Printf("record attempt failure error: %v", err)
		return nil, domain.ErrUnavailable
	}

	return counter, nil
}

func (r *attemptRepository) Reset(ctx context.Context, mobile string, scope domain.AttemptScope) error {
	err := r.db.WithContext(ctx).
		Model(&domain.AttemptCounter{}).
		Where("mobile = ? AND scope = ?", mobile, scope).
		Updates(map[string]interface{}{
			"attempts":      0,
			"blocked_until": nil,
		}).Error
	if err != nil {
		log.Printf("reset attempt counter error: %v", err)
		return domain.ErrUnavailable
	}
	return nil
}
