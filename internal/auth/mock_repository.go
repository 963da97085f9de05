package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// mockRepository is the in-memory Repository used by the package tests. The
// mutex stands in for the row-level locking the real store provides.
type mockRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*User
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users: make(map[uuid.UUID]*User),
	}
}

func (r *mockRepository) Create(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email && !u.IsDeleted {
			return ErrEmailTaken
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.Version = 1

	r.users[user.ID] = user
	return nil
}

func (r *mockRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email && !u.IsDeleted {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *mockRepository) FindByID(_ context.Context, id uuid.UUID) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok || u.IsDeleted {
		return nil, ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *mockRepository) FindAnyByID(_ context.Context, id uuid.UUID) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *mockRepository) RecordFailedLogin(_ context.Context, id uuid.UUID, threshold int, lockFor time.Duration, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || u.IsDeleted {
		return ErrUserNotFound
	}

	u.FailedLoginAttempts++
	if u.FailedLoginAttempts >= threshold {
		until := now.Add(lockFor)
		u.LockedUntil = &until
		u.FailedLoginAttempts = 0
	}
	u.Version++
	return nil
}

func (r *mockRepository) RecordSuccessfulLogin(_ context.Context, id uuid.UUID, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || u.IsDeleted {
		return ErrUserNotFound
	}

	u.FailedLoginAttempts = 0
	u.LockedUntil = nil
	u.LastLogin = &now
	u.Version++
	return nil
}

// softDelete marks a user deleted directly in the store; tests use it to
// exercise the deleted-user paths.
func (r *mockRepository) softDelete(id uuid.UUID, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		u.SoftDelete(now)
	}
}

// setActive toggles is_active directly in the store.
func (r *mockRepository) setActive(id uuid.UUID, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		u.IsActive = active
	}
}
