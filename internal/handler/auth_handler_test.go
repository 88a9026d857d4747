package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/krishna45-ux/DC-Physics-3/internal/middleware"
	"github.com/krishna45-ux/DC-Physics-3/internal/models"
	"github.com/krishna45-ux/DC-Physics-3/internal/service"
	"github.com/krishna45-ux/DC-Physics-3/pkg/jobs"
)

type memStudentStore struct {
	byEmail map[string]*models.Student
}

func (m *memStudentStore) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	if s, ok := m.byEmail[email]; ok {
		return s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memStudentStore) FindByID(ctx context.Context, id string) (*models.Student, error) {
	for _, s := range m.byEmail {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memStudentStore) Create(ctx context.Context, student *models.Student) error {
	m.byEmail[student.Email] = student
	return nil
}

func (m *memStudentStore) MarkVerified(ctx context.Context, email string, ts time.Time) (bool, error) {
	s, ok := m.byEmail[email]
	if !ok {
		return false, nil
	}
	s.IsVerified = true
	return true, nil
}

func (m *memStudentStore) UpdateDetails(ctx context.Context, id, name string, classLevel int, ts time.Time) error {
	for _, s := range m.byEmail {
		if s.ID == id {
			s.Name = name
			level := classLevel
			s.ClassLevel = &level
		}
	}
	return nil
}

func (m *memStudentStore) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	for _, s := range m.byEmail {
		if s.ID == id {
			s.PasswordHash = passwordHash
		}
	}
	return nil
}

func (m *memStudentStore) UpdateSessionToken(ctx context.Context, id, token string, ts time.Time) error {
	for _, s := range m.byEmail {
		if s.ID == id {
			s.SessionToken = &token
			s.LastLogin = &ts
		}
	}
	return nil
}

func (m *memStudentStore) ClearSessionToken(ctx context.Context, id string, ts time.Time) error {
	for _, s := range m.byEmail {
		if s.ID == id {
			s.SessionToken = nil
		}
	}
	return nil
}

type memVerificationStore struct {
	codes map[string]*models.VerificationCode
}

func (m *memVerificationStore) Upsert(ctx context.Context, code *models.VerificationCode) error {
	m.codes[code.Email] = code
	return nil
}

func (m *memVerificationStore) FindByEmail(ctx context.Context, email string) (*models.VerificationCode, error) {
	if c, ok := m.codes[email]; ok {
		return c, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memVerificationStore) Delete(ctx context.Context, email string) error {
	delete(m.codes, email)
	return nil
}

type memTeacherStore struct{}

func (m *memTeacherStore) GetAuth(ctx context.Context) (*models.TeacherAuth, error) {
	return &models.TeacherAuth{ID: 1, Email: "teacher@example.com"}, nil
}

func (m *memTeacherStore) UpdateAuthPassword(ctx context.Context, passwordHash string, ts time.Time) error {
	return nil
}

func (m *memTeacherStore) GetProfile(ctx context.Context) (*models.TeacherProfile, error) {
	return &models.TeacherProfile{ID: 1, Name: "Mr. Sharma"}, nil
}

type memEntitlementStore struct{}

func (m *memEntitlementStore) ListPurchases(ctx context.Context, studentID string) ([]models.Purchase, error) {
	return nil, nil
}

func (m *memEntitlementStore) ListProgress(ctx context.Context, studentID string) ([]string, error) {
	return nil, nil
}

func (m *memEntitlementStore) ListQuizAttempts(ctx context.Context, studentID string) (map[string]models.QuizResult, error) {
	return map[string]models.QuizResult{}, nil
}

func (m *memEntitlementStore) ListBookmarks(ctx context.Context, studentID string) ([]models.Bookmark, error) {
	return nil, nil
}

type dropMailQueue struct{}

func (dropMailQueue) Enqueue(job jobs.Job) error { return nil }

type authTestEnv struct {
	router        *gin.Engine
	verifications *memVerificationStore
}

func newAuthTestEnv(t *testing.T) *authTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	verifications := &memVerificationStore{codes: map[string]*models.VerificationCode{}}
	authSvc := service.NewAuthService(
		&memStudentStore{byEmail: map[string]*models.Student{}},
		verifications,
		&memTeacherStore{},
		&memEntitlementStore{},
		dropMailQueue{},
		nil,
		zap.NewNop(),
		service.AuthServiceConfig{
			AccessTokenSecret: "test-secret",
			AccessTokenExpiry: time.Hour,
			Issuer:            "test",
		},
	)

	authHandler := NewAuthHandler(authSvc)
	router := gin.New()
	auth := router.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/verify", authHandler.VerifyEmail)
	auth.POST("/login", authHandler.Login)
	secured := auth.Group("")
	secured.Use(middleware.JWT(authSvc))
	secured.GET("/session", authHandler.Session)
	secured.GET("/me", authHandler.Me)
	secured.PUT("/me", authHandler.UpdateMe)
	secured.POST("/logout", authHandler.Logout)

	return &authTestEnv{router: router, verifications: verifications}
}

func (env *authTestEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *authTestEnv) registerAndVerify(t *testing.T, email string) {
	t.Helper()
	resp := env.do(http.MethodPost, "/auth/register", "", models.RegisterRequest{
		Name: "Asha", Email: email, Password: "password123",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	code := env.verifications.codes[email]
	require.NotNil(t, code)
	resp = env.do(http.MethodPost, "/auth/verify", "", models.VerifyEmailRequest{Email: email, Code: code.Code})
	require.Equal(t, http.StatusOK, resp.Code)
}

func (env *authTestEnv) login(t *testing.T, email string) string {
	t.Helper()
	resp := env.do(http.MethodPost, "/auth/login", "", models.LoginRequest{
		Email: email, Role: models.RoleStudent, Password: "password123",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope struct {
		Data models.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.AccessToken)
	return envelope.Data.AccessToken
}

func TestAuthFlowRegisterVerifyLogin(t *testing.T) {
	env := newAuthTestEnv(t)
	env.registerAndVerify(t, "asha@example.com")
	token := env.login(t, "asha@example.com")

	resp := env.do(http.MethodGet, "/auth/session", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"valid":true`)

	resp = env.do(http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"asha@example.com"`)
}

func TestAuthFlowUpdateProfile(t *testing.T) {
	env := newAuthTestEnv(t)
	env.registerAndVerify(t, "asha@example.com")
	token := env.login(t, "asha@example.com")

	resp := env.do(http.MethodPut, "/auth/me", token, models.UpdateDetailsRequest{
		Name: "Asha Verma", ClassLevel: 11,
	})
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"Asha Verma"`)
	require.Contains(t, resp.Body.String(), `"class_level":11`)

	resp = env.do(http.MethodPut, "/auth/me", token, models.UpdateDetailsRequest{
		Name: "Asha Verma", ClassLevel: 9,
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAuthFlowLoginBeforeVerification(t *testing.T) {
	env := newAuthTestEnv(t)
	resp := env.do(http.MethodPost, "/auth/register", "", models.RegisterRequest{
		Name: "Asha", Email: "asha@example.com", Password: "password123",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = env.do(http.MethodPost, "/auth/login", "", models.LoginRequest{
		Email: "asha@example.com", Role: models.RoleStudent, Password: "password123",
	})
	require.Equal(t, http.StatusForbidden, resp.Code)
	require.Contains(t, resp.Body.String(), "NOT_VERIFIED")
}

func TestAuthFlowSecondLoginEvictsFirstSession(t *testing.T) {
	env := newAuthTestEnv(t)
	env.registerAndVerify(t, "asha@example.com")

	first := env.login(t, "asha@example.com")
	second := env.login(t, "asha@example.com")

	resp := env.do(http.MethodGet, "/auth/session", first, nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.Contains(t, resp.Body.String(), "signed in elsewhere")

	resp = env.do(http.MethodGet, "/auth/session", second, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"valid":true`)
}

func TestAuthFlowLogoutEndsSession(t *testing.T) {
	env := newAuthTestEnv(t)
	env.registerAndVerify(t, "asha@example.com")
	token := env.login(t, "asha@example.com")

	resp := env.do(http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = env.do(http.MethodGet, "/auth/session", token, nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAuthRequiresBearerToken(t *testing.T) {
	env := newAuthTestEnv(t)

	resp := env.do(http.MethodGet, "/auth/session", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Basic %s", "abc"))
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
