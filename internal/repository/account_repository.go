package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"himti/internal/model"
)

// AccountRepository defines account persistence operations.
type AccountRepository interface {
	Lifecycle[model.Account]
	Create(ctx context.Context, account *model.Account) error
	Update(ctx context.Context, account *model.Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	// FindByEmailAnyState also matches soft-deleted accounts.
	FindByEmailAnyState(ctx context.Context, email string) (*model.Account, error)
	SetOTP(ctx context.Context, id uuid.UUID, otp string, expiresAt time.Time) error
	// ResetPassword stores the new hash and clears the pending OTP in one statement.
	ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error)
}

type accountRepository struct {
	Lifecycle[model.Account]
	db *gorm.DB
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		Lifecycle: NewLifecycle[model.Account](db, "created_at DESC", nil),
		db:        db,
	}
}

// Create creates a new account.
func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// Update updates an existing account.
func (r *accountRepository) Update(ctx context.Context, account *model.Account) error {
	return updated(r.db.WithContext(ctx).Model(account).
		Select("email", "password", "name", "role", "profile_picture").
		Updates(account))
}

// FindByID finds an active account by ID.
func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByEmail finds an active account by email.
func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByEmailAnyState(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Unscoped().Where("email = ?", email).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) SetOTP(ctx context.Context, id uuid.UUID, otp string, expiresAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"otp": otp, "otp_expiry": expiresAt})
	if res.Error != nil {
		return fmt.Errorf("store otp: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *accountRepository) ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"password": passwordHash, "otp": nil, "otp_expiry": nil})
	if res.Error != nil {
		return fmt.Errorf("reset password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClearExpiredOTPs drops reset codes whose expiry has passed.
func (r *accountRepository) ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Unscoped().Model(&model.Account{}).
		Where("otp_expiry IS NOT NULL AND otp_expiry < ?", now).
		Updates(map[string]interface{}{"otp": nil, "otp_expiry": nil})
	if res.Error != nil {
		return 0, fmt.Errorf("clear expired otps: %w", res.Error)
	}
	return res.RowsAffected, nil
}
