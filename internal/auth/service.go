package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peopleops/corehr/internal/config"
)

const defaultRole = "employee"

// dummyHash keeps login timing flat when the email does not match any user:
// the password is verified against this hash before the lookup failure is
// reported.
var dummyHash = func() string {
	hash, err := HashPassword("dummy-password-for-timing")
	if err != nil {
		panic("auth: failed to generate dummy hash: " + err.Error())
	}
	return hash
}()

// Service owns the account security state machine: registration, credential
// verification, failed-attempt counting, timed lockout and token issuance.
type Service struct {
	config     *config.AuthConfig
	log        *zap.Logger
	repository Repository
	now        func() time.Time
}

// Claims is the signed claim set embedded in every access token. Subject
// carries the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Phone    string
}

type LoginResult struct {
	Token string
	User  *User
}

func NewService(config *config.AuthConfig, log *zap.Logger, repo Repository) *Service {
	return &Service{
		config:     config,
		log:        log,
		repository: repo,
		now:        time.Now,
	}
}

// Register creates a user with a freshly hashed password and zeroed security
// counters. The email must not belong to any non-deleted user.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	email := strings.ToLower(in.Email)
	if _, err := s.repository.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if err != ErrUserNotFound {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = defaultRole
	}

	now := s.now()
	user := &User{
		Name:                in.Name,
		Email:               email,
		PasswordHash:        hash,
		Role:                role,
		IsActive:            true,
		Phone:               in.Phone,
		Language:            "en",
		Timezone:            "UTC",
		FailedLoginAttempts: 0,
		PasswordChangedAt:   &now,
		Preferences:         map[string]any{},
	}

	if err := s.repository.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role))

	return user, nil
}

// Login evaluates the lockout/credential state for the given email and, on
// success, issues an access token. Counter and lockout mutations are
// persisted even when the call ultimately fails.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	now := s.now()

	user, err := s.repository.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if err == ErrUserNotFound {
			VerifyPassword(password, dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// Lockout wins before the password is even looked at, and a refused
	// attempt during the window does not advance the counter.
	if user.Status(now) == StatusLocked {
		return nil, &AccountLockedError{Until: *user.LockedUntil}
	}

	if !VerifyPassword(password, user.PasswordHash) {
		if err := s.repository.RecordFailedLogin(ctx, user.ID, s.config.MaxFailedAttempts, s.config.LockoutDuration, now); err != nil {
			s.log.Error("failed to record login failure",
				zap.String("user_id", user.ID.String()),
				zap.Error(err))
		}
		return nil, ErrInvalidCredentials
	}

	// Deactivation is checked only after the password verified.
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	if err := s.repository.RecordSuccessfulLogin(ctx, user.ID, now); err != nil {
		s.log.Error("failed to record login success",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
	}
	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	user.LastLogin = &now

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user}, nil
}

// AuthenticateToken verifies a bearer token and re-checks the live account
// state: a cryptographically valid token for a deleted or deactivated user
// is still rejected.
func (s *Service) AuthenticateToken(ctx context.Context, tokenString string) (*User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, ErrInvalidToken
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !user.IsActive {
		return nil, ErrInvalidToken
	}

	return user, nil
}

func (s *Service) GenerateToken(user *User) (string, error) {
	now := s.now()
	claims := &Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
