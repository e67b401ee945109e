package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/blossom-focus/blossom-api/internal/constants"
	"github.com/blossom-focus/blossom-api/internal/database"
	"github.com/blossom-focus/blossom-api/internal/dto"
	"github.com/blossom-focus/blossom-api/internal/models"
	"github.com/blossom-focus/blossom-api/internal/repository"
	"github.com/blossom-focus/blossom-api/internal/services"
	"github.com/blossom-focus/blossom-api/internal/token"
)

// recordingMailer captures outgoing mail so tests can read the OTP.
type recordingMailer struct {
	sent []recordedMail
}

type recordedMail struct {
	To      string
	Subject string
	Body    string
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.sent = append(m.sent, recordedMail{To: to, Subject: subject, Body: body})
	return nil
}

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
	tokens      *token.Service
	mail        *recordingMailer
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Pet{},
		&models.FocusTime{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	tokens := token.NewService("test-secret", 20*time.Minute)
	mail := &recordingMailer{}
	authService := services.NewAuthService(userRepo, tokens, mail)
	oauthService := services.NewOAuthService(userRepo, tokens, "", "", "")
	handler := NewAuthHandler(authService, oauthService, "http://localhost:3000")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
		tokens:      tokens,
		mail:        mail,
	}
}

func newAuthRouter(env authTestEnv) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/signup", env.handler.Signup)
	r.POST("/api/auth/login", env.handler.Login)
	r.POST("/api/auth/verify-email", env.handler.VerifyEmail)
	r.GET("/api/auth/google/login", env.handler.GoogleLogin)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, url string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/signup", map[string]string{
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "Secret123!",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "newuser", response.Username)
	require.False(t, response.Verified)

	require.Len(t, env.mail.sent, 1)
	require.Equal(t, "newuser@example.com", env.mail.sent[0].To)
}

func TestAuthHandler_Signup_DuplicateUsername(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	payload := map[string]string{
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "Secret123!",
	}
	require.Equal(t, http.StatusCreated, postJSON(t, r, "/api/auth/signup", payload).Code)

	payload["email"] = "other@example.com"
	require.Equal(t, http.StatusConflict, postJSON(t, r, "/api/auth/signup", payload).Code)
}

func TestAuthHandler_SignupVerifyLogin(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/signup", map[string]string{
		"username": "amy",
		"email":    "amy@example.com",
		"password": "Secret123!",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	credentials := map[string]string{"username": "amy", "password": "Secret123!"}

	// Unverified accounts are told to verify, with a code the client can act on.
	w = postJSON(t, r, "/api/auth/login", credentials)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "ACCOUNT_UNVERIFIED")

	var stored models.User
	require.NoError(t, env.db.Where("username = ?", "amy").First(&stored).Error)
	require.NotNil(t, stored.VerificationToken)

	w = postJSON(t, r, "/api/auth/verify-email", map[string]string{
		"email":              "amy@example.com",
		"verification_token": *stored.VerificationToken,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/api/auth/login", credentials)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "bearer", response.TokenType)
	require.Equal(t, "amy", response.Username)

	subject, err := env.tokens.Resolve(response.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "amy", subject)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/login", map[string]string{
		"username": "nobody",
		"password": "whatever",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Username: "current-user",
		Email:    "current@example.com",
		Password: "Secret123!",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyUserID, user.ID)

	env.handler.GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.Username, response.Username)
}

func TestAuthHandler_GoogleLogin_NotConfigured(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/login", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
}
