package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
	appErrors "github.com/krishna45-ux/DC-Physics-3/pkg/errors"
	"github.com/krishna45-ux/DC-Physics-3/pkg/jobs"
)

type mockStudentRepo struct {
	byEmail map[string]*models.Student
}

func newMockStudentRepo(students ...*models.Student) *mockStudentRepo {
	repo := &mockStudentRepo{byEmail: map[string]*models.Student{}}
	for _, s := range students {
		repo.byEmail[s.Email] = s
	}
	return repo
}

func (m *mockStudentRepo) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	if s, ok := m.byEmail[email]; ok {
		return s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id string) (*models.Student, error) {
	for _, s := range m.byEmail {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	m.byEmail[student.Email] = student
	return nil
}

func (m *mockStudentRepo) MarkVerified(ctx context.Context, email string, ts time.Time) (bool, error) {
	s, ok := m.byEmail[email]
	if !ok {
		return false, nil
	}
	s.IsVerified = true
	return true, nil
}

func (m *mockStudentRepo) UpdateDetails(ctx context.Context, id, name string, classLevel int, ts time.Time) error {
	for _, s := range m.byEmail {
		if s.ID == id {
			s.Name = name
			level := classLevel
			s.ClassLevel = &level
		}
	}
	return nil
}

func (m *mockStudentRepo) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	for _, s := range m.byEmail {
		if s.ID == id {
			s.PasswordHash = passwordHash
		}
	}
	return nil
}

func (m *mockStudentRepo) UpdateSessionToken(ctx context.Context, id, token string, ts time.Time) error {
	for _, s := range m.byEmail {
		if s.ID == id {
			s.SessionToken = &token
			s.LastLogin = &ts
		}
	}
	return nil
}

func (m *mockStudentRepo) ClearSessionToken(ctx context.Context, id string, ts time.Time) error {
	for _, s := range m.byEmail {
		if s.ID == id {
			s.SessionToken = nil
		}
	}
	return nil
}

type mockVerificationRepo struct {
	codes map[string]*models.VerificationCode
}

func newMockVerificationRepo() *mockVerificationRepo {
	return &mockVerificationRepo{codes: map[string]*models.VerificationCode{}}
}

func (m *mockVerificationRepo) Upsert(ctx context.Context, code *models.VerificationCode) error {
	m.codes[code.Email] = code
	return nil
}

func (m *mockVerificationRepo) FindByEmail(ctx context.Context, email string) (*models.VerificationCode, error) {
	if c, ok := m.codes[email]; ok {
		return c, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockVerificationRepo) Delete(ctx context.Context, email string) error {
	delete(m.codes, email)
	return nil
}

type mockTeacherRepo struct {
	auth    *models.TeacherAuth
	profile *models.TeacherProfile
}

func (m *mockTeacherRepo) GetAuth(ctx context.Context) (*models.TeacherAuth, error) {
	return m.auth, nil
}

func (m *mockTeacherRepo) UpdateAuthPassword(ctx context.Context, passwordHash string, ts time.Time) error {
	m.auth.PasswordHash = passwordHash
	return nil
}

func (m *mockTeacherRepo) GetProfile(ctx context.Context) (*models.TeacherProfile, error) {
	return m.profile, nil
}

type mockEntitlementReader struct {
	purchases []models.Purchase
	progress  []string
	attempts  map[string]models.QuizResult
	bookmarks []models.Bookmark
}

func (m *mockEntitlementReader) ListPurchases(ctx context.Context, studentID string) ([]models.Purchase, error) {
	return m.purchases, nil
}

func (m *mockEntitlementReader) ListProgress(ctx context.Context, studentID string) ([]string, error) {
	return m.progress, nil
}

func (m *mockEntitlementReader) ListQuizAttempts(ctx context.Context, studentID string) (map[string]models.QuizResult, error) {
	if m.attempts == nil {
		return map[string]models.QuizResult{}, nil
	}
	return m.attempts, nil
}

func (m *mockEntitlementReader) ListBookmarks(ctx context.Context, studentID string) ([]models.Bookmark, error) {
	return m.bookmarks, nil
}

type mockMailQueue struct {
	jobs []jobs.Job
}

func (m *mockMailQueue) Enqueue(job jobs.Job) error {
	m.jobs = append(m.jobs, job)
	return nil
}

func newTestAuthService(students *mockStudentRepo, verifications *mockVerificationRepo, teachers *mockTeacherRepo, mail *mockMailQueue) *AuthService {
	if teachers == nil {
		teachers = &mockTeacherRepo{
			auth:    &models.TeacherAuth{ID: 1, Email: "teacher@example.com"},
			profile: &models.TeacherProfile{ID: 1, Name: "Mr. Sharma"},
		}
	}
	return NewAuthService(students, verifications, teachers, &mockEntitlementReader{}, mail, validator.New(), zap.NewNop(), AuthServiceConfig{
		AccessTokenSecret:   "secret",
		AccessTokenExpiry:   time.Hour,
		Issuer:              "test",
		VerificationCodeTTL: 10 * time.Minute,
		ResetPasswordLength: 8,
	})
}

func TestRegisterCreatesUnverifiedAccountAndSendsCode(t *testing.T) {
	students := newMockStudentRepo()
	verifications := newMockVerificationRepo()
	mail := &mockMailQueue{}
	svc := newTestAuthService(students, verifications, nil, mail)

	user, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.False(t, user.IsVerified)
	assert.Equal(t, models.RoleStudent, user.Role)

	stored := students.byEmail["asha@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "password123", stored.PasswordHash)

	code := verifications.codes["asha@example.com"]
	require.NotNil(t, code)
	assert.Len(t, code.Code, 6)
	assert.Len(t, mail.jobs, 1)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	students := newMockStudentRepo(&models.Student{ID: "s1", Email: "asha@example.com"})
	svc := newTestAuthService(students, newMockVerificationRepo(), nil, &mockMailQueue{})

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestVerifyEmailConsumesCode(t *testing.T) {
	students := newMockStudentRepo(&models.Student{ID: "s1", Email: "asha@example.com"})
	verifications := newMockVerificationRepo()
	verifications.codes["asha@example.com"] = &models.VerificationCode{
		Email:     "asha@example.com",
		Code:      "123456",
		ExpiresAt: time.Now().UTC().Add(5 * time.Minute),
	}
	svc := newTestAuthService(students, verifications, nil, &mockMailQueue{})

	err := svc.VerifyEmail(context.Background(), models.VerifyEmailRequest{Email: "asha@example.com", Code: "123456"})
	require.NoError(t, err)
	assert.True(t, students.byEmail["asha@example.com"].IsVerified)
	assert.Empty(t, verifications.codes)

	// The code is single-use.
	err = svc.VerifyEmail(context.Background(), models.VerifyEmailRequest{Email: "asha@example.com", Code: "123456"})
	require.Error(t, err)
}

func TestVerifyEmailExpiredCode(t *testing.T) {
	students := newMockStudentRepo(&models.Student{ID: "s1", Email: "asha@example.com"})
	verifications := newMockVerificationRepo()
	verifications.codes["asha@example.com"] = &models.VerificationCode{
		Email:     "asha@example.com",
		Code:      "123456",
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}
	svc := newTestAuthService(students, verifications, nil, &mockMailQueue{})

	err := svc.VerifyEmail(context.Background(), models.VerifyEmailRequest{Email: "asha@example.com", Code: "123456"})
	require.Error(t, err)
	assert.False(t, students.byEmail["asha@example.com"].IsVerified)
}

func TestVerifyEmailWrongCode(t *testing.T) {
	students := newMockStudentRepo(&models.Student{ID: "s1", Email: "asha@example.com"})
	verifications := newMockVerificationRepo()
	verifications.codes["asha@example.com"] = &models.VerificationCode{
		Email:     "asha@example.com",
		Code:      "123456",
		ExpiresAt: time.Now().UTC().Add(5 * time.Minute),
	}
	svc := newTestAuthService(students, verifications, nil, &mockMailQueue{})

	err := svc.VerifyEmail(context.Background(), models.VerifyEmailRequest{Email: "asha@example.com", Code: "654321"})
	require.Error(t, err)
	// A failed attempt does not consume the pending code.
	assert.NotEmpty(t, verifications.codes)
}

func TestLoginStudentSuccess(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	students := newMockStudentRepo(&models.Student{
		ID:           "s1",
		Name:         "Asha",
		Email:        "asha@example.com",
		PasswordHash: string(hash),
		IsVerified:   true,
	})
	svc := newTestAuthService(students, newMockVerificationRepo(), nil, &mockMailQueue{})

	res, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "asha@example.com",
		Role:     models.RoleStudent,
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	require.NotNil(t, students.byEmail["asha@example.com"].SessionToken)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "s1", claims.UserID)
	assert.Equal(t, *students.byEmail["asha@example.com"].SessionToken, claims.SessionToken)
}

func TestLoginSecondDeviceInvalidatesFirstSession(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	students := newMockStudentRepo(&models.Student{
		ID: "s1", Email: "asha@example.com", PasswordHash: string(hash), IsVerified: true,
	})
	svc := newTestAuthService(students, newMockVerificationRepo(), nil, &mockMailQueue{})
	req := models.LoginRequest{Email: "asha@example.com", Role: models.RoleStudent, Password: "password123"}

	first, err := svc.Login(context.Background(), req)
	require.NoError(t, err)
	firstClaims, err := svc.ValidateToken(first.AccessToken)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), req)
	require.NoError(t, err)

	valid, err := svc.ValidateSession(context.Background(), firstClaims.UserID, firstClaims.SessionToken)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestLoginUnverifiedReissuesCode(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	students := newMockStudentRepo(&models.Student{
		ID: "s1", Email: "asha@example.com", PasswordHash: string(hash), IsVerified: false,
	})
	verifications := newMockVerificationRepo()
	mail := &mockMailQueue{}
	svc := newTestAuthService(students, verifications, nil, mail)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email: "asha@example.com", Role: models.RoleStudent, Password: "password123",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotVerified.Code, appErrors.FromError(err).Code)
	assert.NotNil(t, verifications.codes["asha@example.com"])
	assert.Len(t, mail.jobs, 1)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestAuthService(newMockStudentRepo(), newMockVerificationRepo(), nil, &mockMailQueue{})

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email: "nobody@example.com", Role: models.RoleStudent, Password: "password123",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	students := newMockStudentRepo(&models.Student{
		ID: "s1", Email: "asha@example.com", PasswordHash: string(hash), IsVerified: true,
	})
	svc := newTestAuthService(students, newMockVerificationRepo(), nil, &mockMailQueue{})

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email: "asha@example.com", Role: models.RoleStudent, Password: "wrong-password",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginTeacher(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("teacherpass"), bcrypt.DefaultCost)
	teachers := &mockTeacherRepo{
		auth:    &models.TeacherAuth{ID: 1, Email: "teacher@example.com", PasswordHash: string(hash)},
		profile: &models.TeacherProfile{ID: 1, Name: "Mr. Sharma"},
	}
	svc := newTestAuthService(newMockStudentRepo(), newMockVerificationRepo(), teachers, &mockMailQueue{})

	res, err := svc.Login(context.Background(), models.LoginRequest{
		Email: "teacher@example.com", Role: models.RoleTeacher, Password: "teacherpass",
	})
	require.NoError(t, err)
	assert.Equal(t, models.TeacherID, res.User.ID)
	assert.Equal(t, "Mr. Sharma", res.User.Name)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Empty(t, claims.SessionToken)

	// Teachers are exempt from single-session checks.
	valid, err := svc.ValidateSession(context.Background(), claims.UserID, "")
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestLoginTeacherBadCredentials(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("teacherpass"), bcrypt.DefaultCost)
	teachers := &mockTeacherRepo{
		auth:    &models.TeacherAuth{ID: 1, Email: "teacher@example.com", PasswordHash: string(hash)},
		profile: &models.TeacherProfile{ID: 1, Name: "Mr. Sharma"},
	}
	svc := newTestAuthService(newMockStudentRepo(), newMockVerificationRepo(), teachers, &mockMailQueue{})

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email: "teacher@example.com", Role: models.RoleTeacher, Password: "nope-nope",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLogoutClearsSession(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	students := newMockStudentRepo(&models.Student{
		ID: "s1", Email: "asha@example.com", PasswordHash: string(hash), IsVerified: true,
	})
	svc := newTestAuthService(students, newMockVerificationRepo(), nil, &mockMailQueue{})

	res, err := svc.Login(context.Background(), models.LoginRequest{
		Email: "asha@example.com", Role: models.RoleStudent, Password: "password123",
	})
	require.NoError(t, err)
	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), claims))

	valid, err := svc.ValidateSession(context.Background(), claims.UserID, claims.SessionToken)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestChangePasswordWrongOldPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)
	students := newMockStudentRepo(&models.Student{ID: "s1", Email: "asha@example.com", PasswordHash: string(hash)})
	svc := newTestAuthService(students, newMockVerificationRepo(), nil, &mockMailQueue{})

	err := svc.ChangePassword(context.Background(), "s1", models.ChangePasswordRequest{
		OldPassword: "wrong", NewPassword: "newpassword",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestResetPasswordGeneratesAndEmails(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)
	students := newMockStudentRepo(&models.Student{ID: "s1", Email: "asha@example.com", PasswordHash: string(hash)})
	mail := &mockMailQueue{}
	svc := newTestAuthService(students, newMockVerificationRepo(), nil, mail)

	res, err := svc.ResetPassword(context.Background(), models.ResetPasswordRequest{Email: "asha@example.com"})
	require.NoError(t, err)
	assert.Len(t, res.NewPassword, 8)
	assert.Len(t, mail.jobs, 1)

	// The stored hash now matches the generated password.
	err = bcrypt.CompareHashAndPassword([]byte(students.byEmail["asha@example.com"].PasswordHash), []byte(res.NewPassword))
	assert.NoError(t, err)
}

func TestUpdateDetailsChangesNameAndClassLevel(t *testing.T) {
	students := newMockStudentRepo(&models.Student{ID: "s1", Name: "Asha", Email: "asha@example.com", IsVerified: true})
	svc := newTestAuthService(students, newMockVerificationRepo(), nil, &mockMailQueue{})

	user, err := svc.UpdateDetails(context.Background(), "s1", models.UpdateDetailsRequest{
		Name: "Asha Verma", ClassLevel: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", user.Name)
	require.NotNil(t, user.ClassLevel)
	assert.Equal(t, 12, *user.ClassLevel)

	stored := students.byEmail["asha@example.com"]
	assert.Equal(t, "Asha Verma", stored.Name)
	require.NotNil(t, stored.ClassLevel)
	assert.Equal(t, 12, *stored.ClassLevel)
}

func TestUpdateDetailsRejectsInvalidClassLevel(t *testing.T) {
	students := newMockStudentRepo(&models.Student{ID: "s1", Name: "Asha", Email: "asha@example.com"})
	svc := newTestAuthService(students, newMockVerificationRepo(), nil, &mockMailQueue{})

	_, err := svc.UpdateDetails(context.Background(), "s1", models.UpdateDetailsRequest{
		Name: "Asha", ClassLevel: 10,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUpdateDetailsTeacherForbidden(t *testing.T) {
	svc := newTestAuthService(newMockStudentRepo(), newMockVerificationRepo(), nil, &mockMailQueue{})

	_, err := svc.UpdateDetails(context.Background(), models.TeacherID, models.UpdateDetailsRequest{
		Name: "Mr. Sharma", ClassLevel: 11,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestUpdateDetailsUnknownStudent(t *testing.T) {
	svc := newTestAuthService(newMockStudentRepo(), newMockVerificationRepo(), nil, &mockMailQueue{})

	_, err := svc.UpdateDetails(context.Background(), "ghost", models.UpdateDetailsRequest{
		Name: "Nobody", ClassLevel: 11,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestResetPasswordUnknownEmail(t *testing.T) {
	svc := newTestAuthService(newMockStudentRepo(), newMockVerificationRepo(), nil, &mockMailQueue{})

	_, err := svc.ResetPassword(context.Background(), models.ResetPasswordRequest{Email: "nobody@example.com"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
