package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hobbyhive/internal/models"
	"hobbyhive/internal/services"
)

// fakeRegistration returns canned results so the handler's status mapping
// can be checked in isolation.
type fakeRegistration struct {
	registerErr error
	verifyErr   error
	loginUser   *models.User
	loginPair   *services.TokenPair
	loginErr    error
	logoutErr   error
	profile     *models.Profile
	profileErr  error
}

func (f *fakeRegistration) Register(ctx context.Context, name, username, email, password string) error {
	return f.registerErr
}

func (f *fakeRegistration) VerifyOTP(ctx context.Context, email, code string) (*models.User, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return &models.User{}, nil
}

func (f *fakeRegistration) Login(ctx context.Context, identifier, password string) (*models.User, *services.TokenPair, error) {
	if f.loginErr != nil {
		return nil, nil, f.loginErr
	}
	return f.loginUser, f.loginPair, nil
}

func (f *fakeRegistration) Logout(ctx context.Context, userID int64) error { return f.logoutErr }

func (f *fakeRegistration) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.profile, nil
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterHandler_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, http.StatusOK},
		{"missing fields", services.ErrFieldsRequired, http.StatusBadRequest},
		{"conflict", services.ErrUserExists, http.StatusConflict},
		{"delivery failed", services.ErrDeliveryFailed, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			h := NewUserHandler(&fakeRegistration{registerErr: tc.err})
			r.POST("/register", h.Register)

			w := doJSON(r, http.MethodPost, "/register",
				`{"name":"Ann","username":"ann1","email":"ann@x.com","password":"pw123!"}`)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestConfirmHandler_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, http.StatusOK},
		{"no pending", services.ErrPendingNotFound, http.StatusNotFound},
		{"invalid otp", services.ErrCodeInvalid, http.StatusBadRequest},
		{"expired otp", services.ErrCodeExpired, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			h := NewVerifyHandler(&fakeRegistration{verifyErr: tc.err})
			r.POST("/register/confirm", h.ConfirmUser)

			w := doJSON(r, http.MethodPost, "/register/confirm",
				`{"email":"ann@x.com","otp":"123456"}`)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestLoginHandler_SuccessSetsCookiesAndBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	fake := &fakeRegistration{
		loginUser: &models.User{ID: 1, Name: "Ann", Username: "ann1", Email: "ann@x.com", PasswordHash: "secret-hash"},
		loginPair: &services.TokenPair{AccessToken: "acc", RefreshToken: "ref"},
	}
	r := gin.New()
	h := NewAuthHandler(fake)
	r.POST("/login", h.Login)

	w := doJSON(r, http.MethodPost, "/login", `{"emailOrUsername":"ann1","password":"pw123!"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `"access_token":"acc"`)
	assert.Contains(t, body, `"refresh_token":"ref"`)
	assert.NotContains(t, body, "secret-hash", "password hash must never be serialized")

	cookies := w.Result().Cookies()
	names := map[string]bool{}
	for _, c := range cookies {
		names[c.Name] = true
	}
	assert.True(t, names["accessToken"])
	assert.True(t, names["refreshToken"])
}

func TestLoginHandler_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", services.ErrUserNotFound, http.StatusNotFound},
		{"bad credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"missing fields", services.ErrFieldsRequired, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			h := NewAuthHandler(&fakeRegistration{loginErr: tc.err})
			r.POST("/login", h.Login)

			w := doJSON(r, http.MethodPost, "/login", `{"emailOrUsername":"x","password":"y"}`)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestLogoutHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	h := NewAuthHandler(&fakeRegistration{})
	r.POST("/logout", func(c *gin.Context) {
		c.Set("user_id", int64(42)) // what the auth middleware would do
		h.Logout(c)
	})

	w := doJSON(r, http.MethodPost, "/logout", "")
	require.Equal(t, http.StatusOK, w.Code)

	// without an identity in context the handler refuses
	r2 := gin.New()
	r2.POST("/logout", h.Logout)
	w2 := doJSON(r2, http.MethodPost, "/logout", "")
	require.Equal(t, http.StatusUnauthorized, w2.Code)
}

func TestProfileHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	h := NewUserHandler(&fakeRegistration{profile: &models.Profile{Name: "Ann"}})
	r.GET("/profile", func(c *gin.Context) {
		c.Set("user_id", int64(1))
		h.GetProfile(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Ann"`)

	r2 := gin.New()
	h2 := NewUserHandler(&fakeRegistration{profileErr: services.ErrUserNotFound})
	r2.GET("/profile", func(c *gin.Context) {
		c.Set("user_id", int64(1))
		h2.GetProfile(c)
	})
	req2 := httptest.NewRequest(http.MethodGet, "/profile", nil)
	w2 := httptest.NewRecorder()
	r2.ServeHTTP(w2, req2)
	require.Equal(t, http.StatusNotFound, w2.Code)
}
