package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/peopleops/corehr/internal/apierror"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public profile; the password hash and security
// counters never leave the service.
type UserResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	IsSuperuser bool       `json:"is_superuser"`
	Phone       string     `json:"phone,omitempty"`
	Mobile      string     `json:"mobile,omitempty"`
	Language    string     `json:"language"`
	Timezone    string     `json:"timezone"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	User        UserResponse `json:"user"`
}

func newUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:          u.ID.String(),
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		Phone:       u.Phone,
		Mobile:      u.Mobile,
		Language:    u.Language,
		Timezone:    u.Timezone,
		LastLogin:   u.LastLogin,
		CreatedAt:   u.CreatedAt,
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid request body"))
		return
	}

	user, err := h.service.Register(c.Request.Context(), RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Phone:    req.Phone,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid request body"))
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: result.Token,
		TokenType:   "bearer",
		ExpiresIn:   int64(h.service.config.TokenDuration.Seconds()),
		User:        newUserResponse(result.User),
	})
}

// Me returns the profile of the user the middleware authenticated.
func (h *Handler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("authentication required"))
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// Logout is client-side only: no server state is invalidated, the caller
// discards its token.
func (h *Handler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var locked *AccountLockedError
	switch {
	case errors.Is(err, ErrEmailTaken):
		c.JSON(http.StatusBadRequest, apierror.New("email already registered"))
	case errors.Is(err, ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, apierror.New("invalid credentials"))
	case errors.As(err, &locked):
		c.JSON(http.StatusForbidden, apierror.New(locked.Error()))
	case errors.Is(err, ErrAccountDeactivated):
		c.JSON(http.StatusForbidden, apierror.New("account deactivated"))
	case errors.Is(err, ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, apierror.New("invalid token"))
	default:
		h.log.Error("auth request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierror.New("internal error"))
	}
}
