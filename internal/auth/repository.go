package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists user records. Every read filters out soft-deleted
// rows; FindAnyByID is the audit escape hatch that does not.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindAnyByID(ctx context.Context, id uuid.UUID) (*User, error)

	// RecordFailedLogin applies the counter increment and, at threshold,
	// the lockout transition. The read-modify-write must be serialized per
	// user row so concurrent failures cannot both see the pre-increment
	// count.
	RecordFailedLogin(ctx context.Context, id uuid.UUID, threshold int, lockFor time.Duration, now time.Time) error

	// RecordSuccessfulLogin resets the counter, clears any lock and stamps
	// last_login.
	RecordSuccessfulLogin(ctx context.Context, id uuid.UUID, now time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).
		Where("email = ? AND is_deleted = FALSE", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = FALSE", id).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) FindAnyByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) RecordFailedLogin(ctx context.Context, id uuid.UUID, threshold int, lockFor time.Duration, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND is_deleted = FALSE", id).
			First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		user.FailedLoginAttempts++
		if user.FailedLoginAttempts >= threshold {
			until := now.Add(lockFor)
			user.LockedUntil = &until
			// The lock carries the penalty, not the counter.
			user.FailedLoginAttempts = 0
		}

		return tx.Save(&user).Error
	})
}

func (r *repository) RecordSuccessfulLogin(ctx context.Context, id uuid.UUID, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND is_deleted = FALSE", id).
			First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		user.FailedLoginAttempts = 0
		user.LockedUntil = nil
		user.LastLogin = &now

		return tx.Save(&user).Error
	})
}
