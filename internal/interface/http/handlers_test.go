package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/notegenius-api/internal/application"
	"github.com/oksasatya/notegenius-api/internal/interface/middleware"
	"github.com/oksasatya/notegenius-api/pkg/helpers"
	"github.com/oksasatya/notegenius-api/pkg/validation"
)

type server struct {
	engine *gin.Engine
	users  *memUsers
	notes  *memNotes
	audit  *auditSpy
	tokens *helpers.JWTManager
}

func newServer(t *testing.T, dev bool) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger, _ := test.NewNullLogger()
	s := &server{
		users:  newMemUsers(),
		notes:  newMemNotes(),
		audit:  &auditSpy{},
		tokens: helpers.NewJWTManager("test-secret"),
	}
	hasher := helpers.NewPasswordHasher(10)
	errs := Errors{Logger: logger, Dev: dev}

	authSvc := application.NewAuthService(s.users, hasher, s.tokens, nil, nil, logger, application.AuthConfig{
		SessionTTL:       time.Hour,
		ResetTTL:         time.Hour,
		ExposeResetToken: dev,
	})
	auth := NewAuthHandler(authSvc, s.audit, errs)
	users := NewUserHandler(application.NewUserService(s.users, hasher, nil, 0, logger), errs)
	notes := NewNoteHandler(application.NewNoteService(s.notes, nil, 0, logger), errs)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())

	ag := r.Group("/auth")
	ag.POST("/register", auth.Register)
	ag.POST("/login", auth.Login)
	ag.POST("/reset-password", auth.RequestReset)
	ag.POST("/reset-password/confirm", auth.ConfirmReset)
	ag.GET("/verify", auth.Verify)

	api := r.Group("/api")
	api.GET("", Welcome)
	api.GET("/users", users.List)
	api.POST("/users", users.Create)
	api.GET("/users/:id", users.Get)
	api.PUT("/users/:id", users.Update)
	api.DELETE("/users/:id", users.Delete)
	api.GET("/notes", notes.List)
	api.POST("/notes", notes.Create)
	api.GET("/notes/:id", notes.Get)
	api.PUT("/notes/:id", notes.Update)
	api.DELETE("/notes/:id", notes.Delete)

	s.engine = r
	return s
}

func (s *server) do(t *testing.T, method, path string, body any, header ...string) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	out := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func (s *server) register(t *testing.T, name, email, password string) map[string]any {
	t.Helper()
	code, body := s.do(t, http.MethodPost, "/auth/register", map[string]string{"name": name, "email": email, "password": password})
	require.Equal(t, http.StatusCreated, code, body)
	return body
}

// tamper flips the lowest bit of the token's final base64url character.
func tamper(tok string) string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	i := strings.IndexByte(alphabet, tok[len(tok)-1])
	return tok[:len(tok)-1] + string(alphabet[i^1])
}

func TestWelcome(t *testing.T) {
	s := newServer(t, false)

	code, body := s.do(t, http.MethodGet, "/api", nil)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Welcome to the User API!", body["message"])
	assert.NotEmpty(t, body["request_id"])
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	s := newServer(t, false)

	body := s.register(t, "Ada", "ada@example.com", "s3cret")
	assert.Equal(t, true, body["success"])
	registered, err := s.tokens.Verify(body["token"].(string))
	require.NoError(t, err)
	user := body["user"].(map[string]any)
	assert.Equal(t, "ada@example.com", user["email"])
	assert.Equal(t, "user", user["role"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "password_hash")

	code, body := s.do(t, http.MethodPost, "/auth/login", map[string]string{"email": "ada@example.com", "password": "s3cret"})
	require.Equal(t, http.StatusOK, code)
	claims, err := s.tokens.Verify(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, claims.UserID)
	assert.Equal(t, registered.Subject, claims.Subject)
	assert.Equal(t, user["id"], float64(claims.UserID))
	assert.Equal(t, "user", claims.Role)

	assert.Equal(t, []string{"register", "login"}, s.audit.actions())
}

func TestAuth_RegisterErrors(t *testing.T) {
	s := newServer(t, false)
	s.register(t, "Ada", "ada@example.com", "s3cret")

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"missing password", map[string]string{"name": "Bob", "email": "bob@example.com"}, http.StatusBadRequest},
		{"malformed json", `{"name":`, http.StatusBadRequest},
		{"wrong type", `{"name":1,"email":"b@example.com","password":"x"}`, http.StatusBadRequest},
		{"duplicate email", map[string]string{"name": "Other", "email": "ada@example.com", "password": "x"}, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := s.do(t, http.MethodPost, "/auth/register", tt.body)
			assert.Equal(t, tt.status, code)
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestAuth_LoginFailuresLookTheSame(t *testing.T) {
	s := newServer(t, false)
	s.register(t, "Ada", "ada@example.com", "s3cret")

	c1, b1 := s.do(t, http.MethodPost, "/auth/login", map[string]string{"email": "ada@example.com", "password": "wrong"})
	c2, b2 := s.do(t, http.MethodPost, "/auth/login", map[string]string{"email": "nobody@example.com", "password": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, c1)
	assert.Equal(t, c1, c2)
	assert.Equal(t, application.MsgInvalidCredentials, b1["message"])
	assert.Equal(t, b1["message"], b2["message"])
}

func TestAuth_ResetFlow(t *testing.T) {
	s := newServer(t, true)
	s.register(t, "Ada", "ada@example.com", "s3cret")

	code, body := s.do(t, http.MethodPost, "/auth/reset-password", map[string]string{"email": "ada@example.com"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, application.MsgResetRequested, body["message"])
	token, _ := body["dev_token"].(string)
	require.NotEmpty(t, token)

	code, body = s.do(t, http.MethodPost, "/auth/reset-password/confirm", map[string]string{"token": token, "newPassword": "n3w"})
	require.Equal(t, http.StatusOK, code, body)

	code, _ = s.do(t, http.MethodPost, "/auth/login", map[string]string{"email": "ada@example.com", "password": "n3w"})
	assert.Equal(t, http.StatusOK, code)

	code, body = s.do(t, http.MethodGet, "/auth/verify", nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, application.MsgInvalidToken, body["message"])
}

func TestAuth_ResetUnknownEmailHidesToken(t *testing.T) {
	s := newServer(t, false)
	s.register(t, "Ada", "ada@example.com", "s3cret")

	_, known := s.do(t, http.MethodPost, "/auth/reset-password", map[string]string{"email": "ada@example.com"})
	_, unknown := s.do(t, http.MethodPost, "/auth/reset-password", map[string]string{"email": "ghost@example.com"})

	assert.Equal(t, known["message"], unknown["message"])
	assert.NotContains(t, known, "dev_token")
	assert.NotContains(t, unknown, "dev_token")
}

func TestAuth_ConfirmResetErrors(t *testing.T) {
	s := newServer(t, false)
	session := s.register(t, "Ada", "ada@example.com", "s3cret")["token"].(string)

	ghost, _, err := s.tokens.Issue(helpers.TokenClaims{UserID: 99, Email: "g@example.com", Role: "user", Purpose: helpers.PurposePasswordReset}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		body   map[string]string
		status int
		msg    string
	}{
		{"missing fields", map[string]string{"token": "x"}, http.StatusBadRequest, ""},
		{"garbage token", map[string]string{"token": "not-a-jwt", "newPassword": "p"}, http.StatusUnauthorized, application.MsgInvalidToken},
		{"session token", map[string]string{"token": session, "newPassword": "p"}, http.StatusUnauthorized, application.MsgInvalidPurpose},
		{"user gone", map[string]string{"token": ghost, "newPassword": "p"}, http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := s.do(t, http.MethodPost, "/auth/reset-password/confirm", tt.body)
			assert.Equal(t, tt.status, code)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, body["message"])
			}
		})
	}
}

func TestAuth_Verify(t *testing.T) {
	s := newServer(t, false)
	token := s.register(t, "Ada", "ada@example.com", "s3cret")["token"].(string)

	code, body := s.do(t, http.MethodGet, "/auth/verify", nil, "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ada@example.com", body["user"].(map[string]any)["email"])

	code, body = s.do(t, http.MethodGet, "/auth/verify", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, application.MsgNoToken, body["message"])

	code, body = s.do(t, http.MethodGet, "/auth/verify", nil, "Authorization", "Bearer "+tamper(token))
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, application.MsgInvalidToken, body["message"])

	code, _ = s.do(t, http.MethodDelete, "/api/users/1", nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodGet, "/auth/verify", nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestUsers_CRUD(t *testing.T) {
	s := newServer(t, false)

	code, body := s.do(t, http.MethodPost, "/api/users", map[string]string{"name": "Ada", "email": "ada@example.com", "password": "pw"})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "User created successfully", body["message"])
	assert.NotEqual(t, "pw", s.users.byID[1].PasswordHash)

	code, _ = s.do(t, http.MethodPost, "/api/users", map[string]string{"name": "Ada", "email": "ada@example.com", "password": "pw"})
	assert.Equal(t, http.StatusConflict, code)

	code, body = s.do(t, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"], 1)

	code, _ = s.do(t, http.MethodPut, "/api/users/1", map[string]string{"name": "Ada L", "email": "ada@example.com"})
	assert.Equal(t, http.StatusOK, code)

	code, body = s.do(t, http.MethodGet, "/api/users/1", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Ada L", body["data"].(map[string]any)["name"])

	code, _ = s.do(t, http.MethodPut, "/api/users/1", map[string]string{"name": "Ada"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodDelete, "/api/users/1", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodDelete, "/api/users/1", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(t, http.MethodGet, "/api/users/abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestNotes_CRUD(t *testing.T) {
	s := newServer(t, false)
	note := map[string]any{"title": "T", "category": "c", "description": "d", "user_id": 1}

	code, body := s.do(t, http.MethodPost, "/api/notes", note)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, float64(1), body["data"].(map[string]any)["id"])

	code, body = s.do(t, http.MethodPost, "/api/notes", note)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Title already exists", body["message"])

	code, body = s.do(t, http.MethodPost, "/api/notes", map[string]any{"title": "T2"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, missingNoteFields, body["message"])
	assert.Contains(t, body["error"], "user_id")

	note["title"] = "T updated"
	code, _ = s.do(t, http.MethodPut, "/api/notes/1", note)
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodPut, "/api/notes/7", note)
	assert.Equal(t, http.StatusNotFound, code)

	code, body = s.do(t, http.MethodGet, "/api/notes/1", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "T updated", body["data"].(map[string]any)["title"])

	code, _ = s.do(t, http.MethodDelete, "/api/notes/1", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestStoreFailureHidesDetailOutsideDev(t *testing.T) {
	for _, dev := range []bool{false, true} {
		s := newServer(t, dev)
		s.notes.err = errors.New("connection refused")

		code, body := s.do(t, http.MethodGet, "/api/notes", nil)

		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "Failed to fetch notes", body["message"])
		if dev {
			assert.Contains(t, body["error"], "connection refused")
		} else {
			assert.NotContains(t, body, "error")
		}
	}
}
