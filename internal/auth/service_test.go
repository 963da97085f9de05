package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Register(t *testing.T) {
	tests := []struct {
		name    string
		input   RegisterInput
		setup   func(svc *Service)
		wantErr error
	}{
		{
			name: "successful registration",
			input: RegisterInput{
				Name:     "Test User",
				Email:    "test@example.com",
				Password: "testpass123",
				Role:     "manager",
				Phone:    "555-0100",
			},
		},
		{
			name: "duplicate email",
			input: RegisterInput{
				Name:     "Second User",
				Email:    "existing@example.com",
				Password: "testpass123",
			},
			setup: func(svc *Service) {
				_, err := svc.Register(context.Background(), RegisterInput{
					Name:     "First User",
					Email:    "existing@example.com",
					Password: "otherpass123",
				})
				require.NoError(t, err)
			},
			wantErr: ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			if tt.setup != nil {
				tt.setup(svc)
			}

			user, err := svc.Register(context.Background(), tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input.Email, user.Email)
			assert.True(t, user.IsActive)
			assert.False(t, user.IsSuperuser)
			assert.Equal(t, 0, user.FailedLoginAttempts)
			assert.Nil(t, user.LockedUntil)
			assert.NotNil(t, user.PasswordChangedAt)
			assert.NotNil(t, user.Preferences)
			assert.True(t, VerifyPassword(tt.input.Password, user.PasswordHash))
		})
	}
}

func TestService_Register_DefaultRole(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.Register(context.Background(), RegisterInput{
		Name:     "No Role",
		Email:    "norole@example.com",
		Password: "testpass123",
	})
	require.NoError(t, err)
	assert.Equal(t, "employee", user.Role)
}

func TestService_Login_RoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{
		Name:     "Round Trip",
		Email:    "roundtrip@example.com",
		Password: "testpass123",
		Role:     "manager",
	})
	require.NoError(t, err)

	result, err := svc.Login(ctx, "roundtrip@example.com", "testpass123")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.NotNil(t, result.User.LastLogin)

	// The token decodes back to the same user id and role.
	claims, err := svc.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID.String(), claims.Subject)
	assert.Equal(t, "manager", claims.Role)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever1")

	// Unknown email and wrong password are indistinguishable.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_WrongPassword_IncrementsCounter(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Name: "Counter", Email: "counter@example.com", Password: "rightpass1",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "counter@example.com", "wrongpass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.FailedLoginAttempts)
	assert.Nil(t, stored.LockedUntil)
}

func TestService_Login_LockoutScenario(t *testing.T) {
	svc, repo, clock := newTestServiceWithClock(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Name: "Lock Me", Email: "a@x.com", Password: "pw12345!",
	})
	require.NoError(t, err)

	// Five wrong passwords: each reports invalid credentials, the fifth
	// sets the lock and resets the counter to zero.
	for i := 0; i < 5; i++ {
		_, err := svc.Login(ctx, "a@x.com", "wrong-pw1")
		assert.ErrorIs(t, err, ErrInvalidCredentials, "attempt %d", i+1)
	}

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.FailedLoginAttempts, "lock carries the penalty, not the counter")
	require.NotNil(t, stored.LockedUntil)
	assert.Equal(t, clock.Now().Add(15*time.Minute), *stored.LockedUntil)

	// Sixth attempt with the CORRECT password is still refused.
	_, err = svc.Login(ctx, "a@x.com", "pw12345!")
	var locked *AccountLockedError
	require.ErrorAs(t, err, &locked)
	assert.Equal(t, *stored.LockedUntil, locked.Until)

	// Refused attempts during the window do not advance the counter.
	after, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, after.FailedLoginAttempts)

	// Once the window elapses the correct password works again.
	clock.Advance(15*time.Minute + time.Second)
	result, err := svc.Login(ctx, "a@x.com", "pw12345!")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestService_Login_SuccessResetsCounters(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Name: "Reset", Email: "reset@example.com", Password: "rightpass1",
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, _ = svc.Login(ctx, "reset@example.com", "wrongpass1")
	}
	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 3, stored.FailedLoginAttempts)

	_, err = svc.Login(ctx, "reset@example.com", "rightpass1")
	require.NoError(t, err)

	stored, err = repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.FailedLoginAttempts)
	assert.Nil(t, stored.LockedUntil)
	assert.NotNil(t, stored.LastLogin)
}

func TestService_Login_Deactivated(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Name: "Inactive", Email: "inactive@example.com", Password: "rightpass1",
	})
	require.NoError(t, err)
	repo.setActive(user.ID, false)

	// Correct password on a deactivated account: the password was verified
	// before the active check fires.
	_, err = svc.Login(ctx, "inactive@example.com", "rightpass1")
	assert.ErrorIs(t, err, ErrAccountDeactivated)

	// Wrong password still reads as invalid credentials, not deactivation.
	_, err = svc.Login(ctx, "inactive@example.com", "wrongpass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_AuthenticateToken(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Name: "Token User", Email: "token@example.com", Password: "rightpass1",
	})
	require.NoError(t, err)

	result, err := svc.Login(ctx, "token@example.com", "rightpass1")
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		got, err := svc.AuthenticateToken(ctx, result.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := svc.AuthenticateToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expiredCfg := newTestConfig()
		expiredCfg.TokenDuration = -time.Hour
		expiredSvc := NewService(expiredCfg, newTestLogger(t), repo)
		token, err := expiredSvc.GenerateToken(user)
		require.NoError(t, err)

		_, err = svc.AuthenticateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("deactivated after issuance", func(t *testing.T) {
		repo.setActive(user.ID, false)
		defer repo.setActive(user.ID, true)

		_, err := svc.AuthenticateToken(ctx, result.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("soft-deleted after issuance", func(t *testing.T) {
		repo.softDelete(user.ID, time.Now())

		_, err := svc.AuthenticateToken(ctx, result.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)

		// The row itself survives for audit.
		raw, err := repo.FindAnyByID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, raw.IsDeleted)
	})
}

func TestUser_Status(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	tests := []struct {
		name string
		user User
		want AccountStatus
	}{
		{"active", User{IsActive: true}, StatusActive},
		{"inactive", User{IsActive: false}, StatusInactive},
		{"locked", User{IsActive: true, LockedUntil: &future}, StatusLocked},
		{"lock expired", User{IsActive: true, LockedUntil: &past}, StatusActive},
		{"locked and inactive", User{IsActive: false, LockedUntil: &future}, StatusLocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.Status(now))
		})
	}
}
