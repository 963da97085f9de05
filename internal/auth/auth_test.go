package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/peopleops/corehr/internal/config"
)

func newTestLogger(t *testing.T) *zap.Logger {
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)
	return logger
}

func newTestConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret:         "test-secret-key",
		TokenDuration:     8 * time.Hour,
		MaxFailedAttempts: 5,
		LockoutDuration:   15 * time.Minute,
	}
}

func newTestService(t *testing.T) (*Service, *mockRepository) {
	repo := newMockRepository()
	return NewService(newTestConfig(), newTestLogger(t), repo), repo
}

// testClock lets tests step through lockout windows without sleeping.
type testClock struct {
	current time.Time
}

func newTestClock() *testClock {
	return &testClock{current: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	return c.current
}

func (c *testClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newTestServiceWithClock(t *testing.T) (*Service, *mockRepository, *testClock) {
	svc, repo := newTestService(t)
	clock := newTestClock()
	svc.now = clock.Now
	return svc, repo, clock
}
