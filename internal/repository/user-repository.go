package repository

import (
	"context"
	"errors"
	"log"

	"github.com/SehaTech/auth_service/internal/domain"
	"github.com/SehaTech/auth_service/internal/helper"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	FindUserByMobile(ctx context.Context, mobile string) (*domain.User, error)
	FindUserById(ctx context.Context, id uuid.UUID) (*domain.User, error)
	SetVerified(ctx context.Context, mobile string) error
	UpdatePasswordHash(ctx context.Context, mobile, hash string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("nil user")
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return nil, domain.ErrConflict
		}
		log.Printf("create user error: %v", err)
		return nil, domain.ErrUnavailable
	}

	return user, nil
}

func (r *userRepository) FindUserByMobile(ctx context.Context, mobile string) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.WithContext(ctx).First(user, "mobile = ?", mobile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		log.Printf("find user by mobile error: %v", err)
		return nil, domain.ErrUnavailable
	}

	return user, nil
}

func (r *userRepository) FindUserById(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.WithContext(ctx).First(user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		log.Printf("find user by id error: %v", err)
		return nil, domain.ErrUnavailable
	}

	return user, nil
}

func (r *userRepository) SetVerified(ctx context.Context, mobile string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("mobile = ?", mobile).
		Update("is_verified", true)
	if res.Error != nil {
		log.Printf("set verified error: %v", res.Error)
		return domain.ErrUnavailable
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, mobile, hash string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("mobile = ?", mobile).
		Update("password_hash", hash)
	if res.Error != nil {
		log.Printf("update password hash error: %v", res.Error)
		return domain.ErrUnavailable
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
