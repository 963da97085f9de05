package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/peopleops/corehr/internal/apierror"
)

// userContextKey stores the authenticated *User in the gin context.
const userContextKey = "auth.user"

type Middleware struct {
	service *Service
	log     *zap.Logger
}

func NewMiddleware(service *Service, log *zap.Logger) *Middleware {
	return &Middleware{
		service: service,
		log:     log,
	}
}

// RequireAuth validates the Bearer token on every protected route and loads
// the live user record, so tokens for deleted or deactivated accounts are
// rejected even while cryptographically valid.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("authentication required"))
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		user, err := m.service.AuthenticateToken(c.Request.Context(), token)
		if err != nil {
			m.log.Warn("token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("invalid token"))
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// SetCurrentUser stores a user on the context the way RequireAuth does.
// Handler tests in other packages use it in place of the middleware.
func SetCurrentUser(c *gin.Context, user *User) {
	c.Set(userContextKey, user)
}

// CurrentUser returns the user RequireAuth stored on the context, or nil on
// unprotected routes.
func CurrentUser(c *gin.Context) *User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := v.(*User)
	return user
}
