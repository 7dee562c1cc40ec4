package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskstack/taskstack/internal/application"
	"github.com/taskstack/taskstack/internal/interface/middleware"
	"github.com/taskstack/taskstack/pkg/helpers"
	"github.com/taskstack/taskstack/pkg/validation"
)

type authTestEnv struct {
	router *gin.Engine
	jwt    *helpers.JWTManager
}

func setupAuthTest(t *testing.T) *authTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	h := NewAuthHandler(application.NewAuthService(newStubUserRepo(), jwt, nil), newTestLogger())

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	auth := api.Group("/")
	auth.Use(middleware.Auth(jwt))
	auth.GET("/auth/me", h.Me)
	auth.GET("/auth/users", h.ListUsers)
	return &authTestEnv{router: r, jwt: jwt}
}

func (e *authTestEnv) post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_RegisterLoginRoundTrip(t *testing.T) {
	env := setupAuthTest(t)

	w := env.post(t, "/api/auth/register", gin.H{"name": "alice", "email": "alice@x.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var reg struct {
		Data struct {
			ID    int64  `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	assert.NotZero(t, reg.Data.ID)
	assert.Equal(t, "alice@x.com", reg.Data.Email)

	w = env.post(t, "/api/auth/login", gin.H{"email": "alice@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Data.Token)

	claims, err := env.jwt.ParseToken(login.Data.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.Data.ID, claims.UserID)
	assert.Equal(t, "alice@x.com", claims.Email)
}

func TestAuthHandler_DuplicateEmail(t *testing.T) {
	env := setupAuthTest(t)

	w := env.post(t, "/api/auth/register", gin.H{"name": "alice", "email": "alice@x.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.post(t, "/api/auth/register", gin.H{"name": "also alice", "email": "alice@x.com", "password": "secret2"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "duplicate_email")
}

func TestAuthHandler_LoginFailures(t *testing.T) {
	env := setupAuthTest(t)

	w := env.post(t, "/api/auth/register", gin.H{"name": "alice", "email": "alice@x.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)

	// Wrong password: 401, and no token in the body.
	w = env.post(t, "/api/auth/login", gin.H{"email": "alice@x.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), "token")

	// Unknown email: 400.
	w = env.post(t, "/api/auth/login", gin.H{"email": "ghost@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	env := setupAuthTest(t)

	for name, body := range map[string]gin.H{
		"missing name":    {"email": "a@x.com", "password": "secret1"},
		"bad email":       {"name": "a", "email": "nope", "password": "secret1"},
		"short password":  {"name": "a", "email": "a@x.com", "password": "tiny"},
		"missing payload": {},
	} {
		w := env.post(t, "/api/auth/register", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	env := setupAuthTest(t)

	w := env.post(t, "/api/auth/register", gin.H{"name": "alice", "email": "alice@x.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)
	var reg struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))

	token, _, err := env.jwt.GenerateToken(reg.Data.ID, "alice@x.com")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w2 := httptest.NewRecorder()
	env.router.ServeHTTP(w2, req)
	require.Equal(t, http.StatusOK, w2.Code, w2.Body.String())

	var me struct {
		Data struct {
			ID    int64  `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &me))
	assert.Equal(t, reg.Data.ID, me.Data.ID)
	assert.Equal(t, "alice", me.Data.Name)
	// The password hash never leaves the store.
	assert.NotContains(t, w2.Body.String(), "password")

	// A valid token for a deleted user resolves to 404, not 500.
	ghost, _, err := env.jwt.GenerateToken(9999, "ghost@x.com")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+ghost)
	w3 := httptest.NewRecorder()
	env.router.ServeHTTP(w3, req)
	assert.Equal(t, http.StatusNotFound, w3.Code)
	assert.Contains(t, w3.Body.String(), "user_not_found")
}

func TestAuthHandler_UsersRequiresAuth(t *testing.T) {
	env := setupAuthTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/users", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, _, err := env.jwt.GenerateToken(1, "alice@x.com")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/auth/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
