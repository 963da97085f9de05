package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	gin.SetMode(gin.TestMode)

	svc, _ := newTestService(t)
	h := NewHandler(svc, newTestLogger(t))
	mw := NewMiddleware(svc, newTestLogger(t))

	r := gin.New()
	g := r.Group("/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
	g.GET("/me", mw.RequireAuth(), h.Me)
	return r, svc
}

func doJSON(r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		wantStatus int
	}{
		{
			name: "valid registration",
			body: RegisterRequest{
				Name:     "Test User",
				Email:    "new@example.com",
				Password: "testpass123",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "short password",
			body: RegisterRequest{
				Name:     "Test User",
				Email:    "short@example.com",
				Password: "short",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "invalid email",
			body: RegisterRequest{
				Name:     "Test User",
				Email:    "not-an-email",
				Password: "testpass123",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing body",
			body:       nil,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRouter(t)
			w := doJSON(r, http.MethodPost, "/auth/register", tt.body, nil)

			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp UserResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.NotEmpty(t, resp.ID)
				assert.Equal(t, "employee", resp.Role)
				// The hash must never appear in the response body.
				assert.NotContains(t, w.Body.String(), "argon2id")
			}
		})
	}
}

func TestHandler_Register_DuplicateEmail(t *testing.T) {
	r, _ := newTestRouter(t)
	body := RegisterRequest{Name: "Dup", Email: "dup@example.com", Password: "testpass123"}

	first := doJSON(r, http.MethodPost, "/auth/register", body, nil)
	require.Equal(t, http.StatusCreated, first.Code)

	second := doJSON(r, http.MethodPost, "/auth/register", body, nil)
	assert.Equal(t, http.StatusBadRequest, second.Code)
	assert.Contains(t, second.Body.String(), "already registered")
}

func TestHandler_LoginAndMe(t *testing.T) {
	r, _ := newTestRouter(t)

	register := doJSON(r, http.MethodPost, "/auth/register", RegisterRequest{
		Name: "Flow", Email: "flow@example.com", Password: "testpass123",
	}, nil)
	require.Equal(t, http.StatusCreated, register.Code)

	login := doJSON(r, http.MethodPost, "/auth/login", LoginRequest{
		Email: "flow@example.com", Password: "testpass123",
	}, nil)
	require.Equal(t, http.StatusOK, login.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &resp))
	assert.Equal(t, "bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "flow@example.com", resp.User.Email)

	me := doJSON(r, http.MethodGet, "/auth/me", nil, map[string]string{
		"Authorization": "Bearer " + resp.AccessToken,
	})
	require.Equal(t, http.StatusOK, me.Code)

	var profile UserResponse
	require.NoError(t, json.Unmarshal(me.Body.Bytes(), &profile))
	assert.Equal(t, resp.User.ID, profile.ID)
}

func TestHandler_Login_WrongPassword(t *testing.T) {
	r, _ := newTestRouter(t)

	doJSON(r, http.MethodPost, "/auth/register", RegisterRequest{
		Name: "Wrong", Email: "wrong@example.com", Password: "testpass123",
	}, nil)

	login := doJSON(r, http.MethodPost, "/auth/login", LoginRequest{
		Email: "wrong@example.com", Password: "badpass123",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, login.Code)
	assert.Contains(t, login.Body.String(), "invalid credentials")
}

func TestHandler_Login_Locked(t *testing.T) {
	r, _ := newTestRouter(t)

	doJSON(r, http.MethodPost, "/auth/register", RegisterRequest{
		Name: "Locked", Email: "locked@example.com", Password: "testpass123",
	}, nil)

	for i := 0; i < 5; i++ {
		w := doJSON(r, http.MethodPost, "/auth/login", LoginRequest{
			Email: "locked@example.com", Password: fmt.Sprintf("badpass%03d", i),
		}, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}

	// Correct password, but the window is active.
	w := doJSON(r, http.MethodPost, "/auth/login", LoginRequest{
		Email: "locked@example.com", Password: "testpass123",
	}, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "account locked until")
}

func TestHandler_Me_Unauthorized(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"no header", nil},
		{"not bearer", map[string]string{"Authorization": "Basic abc"}},
		{"garbage token", map[string]string{"Authorization": "Bearer not.a.token"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRouter(t)
			w := doJSON(r, http.MethodGet, "/auth/me", nil, tt.headers)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestHandler_Logout(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(r, http.MethodPost, "/auth/logout", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Logged out")
}
