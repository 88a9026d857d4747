package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
	appErrors "github.com/krishna45-ux/DC-Physics-3/pkg/errors"
	"github.com/krishna45-ux/DC-Physics-3/pkg/jobs"
	"github.com/krishna45-ux/DC-Physics-3/pkg/mailer"
)

type authStudentRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	MarkVerified(ctx context.Context, email string, ts time.Time) (bool, error)
	UpdateDetails(ctx context.Context, id, name string, classLevel int, ts time.Time) error
	UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error
	UpdateSessionToken(ctx context.Context, id, token string, ts time.Time) error
	ClearSessionToken(ctx context.Context, id string, ts time.Time) error
}

type authVerificationRepository interface {
	Upsert(ctx context.Context, code *models.VerificationCode) error
	FindByEmail(ctx context.Context, email string) (*models.VerificationCode, error)
	Delete(ctx context.Context, email string) error
}

type authTeacherRepository interface {
	GetAuth(ctx context.Context) (*models.TeacherAuth, error)
	UpdateAuthPassword(ctx context.Context, passwordHash string, ts time.Time) error
	GetProfile(ctx context.Context) (*models.TeacherProfile, error)
}

type authEntitlementRepository interface {
	ListPurchases(ctx context.Context, studentID string) ([]models.Purchase, error)
	ListProgress(ctx context.Context, studentID string) ([]string, error)
	ListQuizAttempts(ctx context.Context, studentID string) (map[string]models.QuizResult, error)
	ListBookmarks(ctx context.Context, studentID string) ([]models.Bookmark, error)
}

type mailEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// AuthServiceConfig defines configuration for authentication flows.
type AuthServiceConfig struct {
	AccessTokenSecret   string
	AccessTokenExpiry   time.Duration
	Issuer              string
	VerificationCodeTTL time.Duration
	ResetPasswordLength int
}

// AuthService provides registration, verification, login and password
// management use cases. Students get an opaque session token on login that
// enforces a single active session; a second login overwrites the token and
// orphans the first session.
type AuthService struct {
	students      authStudentRepository
	verifications authVerificationRepository
	teachers      authTeacherRepository
	entitlements  authEntitlementRepository
	mail          mailEnqueuer
	validator     *validator.Validate
	logger        *zap.Logger
	config        AuthServiceConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(
	students authStudentRepository,
	verifications authVerificationRepository,
	teachers authTeacherRepository,
	entitlements authEntitlementRepository,
	mail mailEnqueuer,
	validate *validator.Validate,
	logger *zap.Logger,
	config AuthServiceConfig,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.VerificationCodeTTL <= 0 {
		config.VerificationCodeTTL = 10 * time.Minute
	}
	if config.ResetPasswordLength <= 0 {
		config.ResetPasswordLength = 8
	}
	return &AuthService{
		students:      students,
		verifications: verifications,
		teachers:      teachers,
		entitlements:  entitlements,
		mail:          mail,
		validator:     validate,
		logger:        logger,
		config:        config,
	}
}

// Register creates an unverified student account and issues a verification
// code to the given address.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	if _, err := s.students.FindByEmail(ctx, req.Email); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing account")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	student := &models.Student{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		IsVerified:   false,
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create account")
	}

	if _, err := s.SendVerificationCode(ctx, req.Email); err != nil {
		s.logger.Warn("failed to issue verification code after registration", zap.String("email", req.Email), zap.Error(err))
	}

	return emptyStudentUser(student), nil
}

// SendVerificationCode generates a fresh 6-digit code for the email,
// replacing any pending one, and enqueues delivery. The code is returned so
// flows that must deliver it through another channel can do so.
func (s *AuthService) SendVerificationCode(ctx context.Context, email string) (string, error) {
	code, err := generateNumericCode(6)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate code")
	}

	record := &models.VerificationCode{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().UTC().Add(s.config.VerificationCodeTTL),
	}
	if err := s.verifications.Upsert(ctx, record); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store verification code")
	}

	s.enqueueMail(mailer.Message{
		To:      email,
		Subject: "Verify your email",
		Body:    fmt.Sprintf("Your verification code is: %s\nIt expires in %d minutes.", code, int(s.config.VerificationCodeTTL.Minutes())),
	}, "verification_code")

	return code, nil
}

// VerifyEmail validates a pending code and marks the student verified.
// The code is consumed on success; expired or mismatched codes fail without
// revealing which condition was hit.
func (s *AuthService) VerifyEmail(ctx context.Context, req models.VerifyEmailRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid verification payload")
	}

	record, err := s.verifications.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrValidation, "invalid or expired verification code")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load verification code")
	}

	if record.Expired(time.Now().UTC()) || record.Code != req.Code {
		return appErrors.Clone(appErrors.ErrValidation, "invalid or expired verification code")
	}

	found, err := s.students.MarkVerified(ctx, req.Email, time.Now().UTC())
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark account verified")
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "account not found")
	}

	if err := s.verifications.Delete(ctx, req.Email); err != nil {
		s.logger.Warn("failed to consume verification code", zap.String("email", req.Email), zap.Error(err))
	}

	return nil
}

// Login authenticates a student or the teacher and returns an access token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	if req.Role == models.RoleTeacher {
		return s.loginTeacher(ctx, req)
	}
	return s.loginStudent(ctx, req)
}

func (s *AuthService) loginTeacher(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	auth, err := s.teachers.GetAuth(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher credentials")
	}

	if req.Email != auth.Email {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid teacher credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(auth.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid teacher credentials")
	}

	profile, err := s.teachers.GetProfile(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher profile")
	}

	user := models.User{
		ID:                  models.TeacherID,
		Name:                profile.Name,
		Email:               auth.Email,
		Role:                models.RoleTeacher,
		IsVerified:          true,
		PurchasedChapterIDs: []string{},
		PurchasedCourseIDs:  []string{},
		Progress:            map[string]bool{},
		QuizAttempts:        map[string]models.QuizResult{},
		Bookmarks:           []models.Bookmark{},
	}

	token, err := s.generateAccessToken(user, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	return &models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.AccessTokenExpiry.Seconds()),
		User:        user,
		IssuedAt:    time.Now().UTC(),
	}, nil
}

func (s *AuthService) loginStudent(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	student, err := s.students.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "account not found, please sign up")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch account")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "incorrect password")
	}

	if !student.IsVerified {
		// Re-issue a code so the client can drop straight into the
		// verification flow.
		if _, err := s.SendVerificationCode(ctx, student.Email); err != nil {
			s.logger.Warn("failed to re-issue verification code", zap.String("email", student.Email), zap.Error(err))
		}
		return nil, appErrors.ErrNotVerified
	}

	sessionToken := uuid.NewString()
	now := time.Now().UTC()
	if err := s.students.UpdateSessionToken(ctx, student.ID, sessionToken, now); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to start session")
	}
	student.SessionToken = &sessionToken
	student.LastLogin = &now

	user, err := s.hydrateStudent(ctx, student)
	if err != nil {
		return nil, err
	}

	token, err := s.generateAccessToken(*user, sessionToken)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	return &models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.AccessTokenExpiry.Seconds()),
		User:        *user,
		IssuedAt:    now,
	}, nil
}

// Logout clears the persisted session token so any other device's session
// check fails on its next poll.
func (s *AuthService) Logout(ctx context.Context, claims *models.JWTClaims) error {
	if claims.Role != models.RoleStudent {
		return nil
	}
	if err := s.students.ClearSessionToken(ctx, claims.UserID, time.Now().UTC()); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to end session")
	}
	return nil
}

// ValidateSession reports whether the given token is still the authoritative
// session for the user. Teachers are exempt from single-session enforcement.
func (s *AuthService) ValidateSession(ctx context.Context, userID, sessionToken string) (bool, error) {
	if userID == models.TeacherID {
		return true, nil
	}

	student, err := s.students.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load account")
	}

	if student.SessionToken == nil {
		return false, nil
	}
	return *student.SessionToken == sessionToken, nil
}

// ChangePassword changes the password for a student or the teacher.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid change password payload")
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	if userID == models.TeacherID {
		auth, err := s.teachers.GetAuth(ctx)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher credentials")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(auth.PasswordHash), []byte(req.OldPassword)); err != nil {
			return appErrors.Clone(appErrors.ErrForbidden, "incorrect old password")
		}
		if err := s.teachers.UpdateAuthPassword(ctx, string(newHash), time.Now().UTC()); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update password")
		}
		return nil
	}

	student, err := s.students.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load account")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(req.OldPassword)); err != nil {
		return appErrors.Clone(appErrors.ErrForbidden, "incorrect old password")
	}
	if err := s.students.UpdatePassword(ctx, student.ID, string(newHash), time.Now().UTC()); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update password")
	}
	return nil
}

// ResetPassword generates a random password for the matching student or
// teacher account and emails it. The new password is also returned so the
// caller can deliver it out-of-band.
func (s *AuthService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (*models.ResetPasswordResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reset payload")
	}

	newPassword, err := generatePassword(s.config.ResetPasswordLength)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate password")
	}
	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	student, err := s.students.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		if err := s.students.UpdatePassword(ctx, student.ID, string(newHash), time.Now().UTC()); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset password")
		}
	case errors.Is(err, sql.ErrNoRows):
		auth, authErr := s.teachers.GetAuth(ctx)
		if authErr != nil {
			return nil, appErrors.Wrap(authErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher credentials")
		}
		if auth.Email != req.Email {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "email address not found in our records")
		}
		if err := s.teachers.UpdateAuthPassword(ctx, string(newHash), time.Now().UTC()); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset password")
		}
	default:
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch account")
	}

	s.enqueueMail(mailer.Message{
		To:      req.Email,
		Subject: "Your password was reset",
		Body:    fmt.Sprintf("Your new password is: %s\nPlease change it after signing in.", newPassword),
	}, "password_reset")

	return &models.ResetPasswordResponse{
		Message:     "password reset successful",
		NewPassword: newPassword,
	}, nil
}

// CurrentUser returns the hydrated account snapshot for the given claims.
func (s *AuthService) CurrentUser(ctx context.Context, claims *models.JWTClaims) (*models.User, error) {
	if claims.Role == models.RoleTeacher {
		profile, err := s.teachers.GetProfile(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher profile")
		}
		return &models.User{
			ID:                  models.TeacherID,
			Name:                profile.Name,
			Email:               claims.Email,
			Role:                models.RoleTeacher,
			IsVerified:          true,
			PurchasedChapterIDs: []string{},
			PurchasedCourseIDs:  []string{},
			Progress:            map[string]bool{},
			QuizAttempts:        map[string]models.QuizResult{},
			Bookmarks:           []models.Bookmark{},
		}, nil
	}

	student, err := s.students.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load account")
	}
	return s.hydrateStudent(ctx, student)
}

// UpdateDetails edits a student's own name and class level and returns the
// refreshed account snapshot. Teachers manage their profile separately.
func (s *AuthService) UpdateDetails(ctx context.Context, userID string, req models.UpdateDetailsRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}
	if userID == models.TeacherID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "use the teacher profile endpoint")
	}

	student, err := s.students.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load account")
	}

	if err := s.students.UpdateDetails(ctx, student.ID, req.Name, req.ClassLevel, time.Now().UTC()); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update profile")
	}
	student.Name = req.Name
	classLevel := req.ClassLevel
	student.ClassLevel = &classLevel

	return s.hydrateStudent(ctx, student)
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

func (s *AuthService) hydrateStudent(ctx context.Context, student *models.Student) (*models.User, error) {
	purchases, err := s.entitlements.ListPurchases(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load purchases")
	}
	progress, err := s.entitlements.ListProgress(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load progress")
	}
	attempts, err := s.entitlements.ListQuizAttempts(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load quiz attempts")
	}
	bookmarks, err := s.entitlements.ListBookmarks(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bookmarks")
	}

	user := emptyStudentUser(student)
	for _, p := range purchases {
		switch p.ItemType {
		case models.PurchaseTypeChapter:
			user.PurchasedChapterIDs = append(user.PurchasedChapterIDs, p.ItemID)
		case models.PurchaseTypeCourse:
			user.PurchasedCourseIDs = append(user.PurchasedCourseIDs, p.ItemID)
		}
	}
	for _, topicID := range progress {
		user.Progress[topicID] = true
	}
	user.QuizAttempts = attempts
	if bookmarks != nil {
		user.Bookmarks = bookmarks
	}
	return user, nil
}

func (s *AuthService) generateAccessToken(user models.User, sessionToken string) (string, error) {
	issuedAt := time.Now().UTC()
	claims := &models.JWTClaims{
		UserID:       user.ID,
		Role:         user.Role,
		Email:        user.Email,
		Name:         user.Name,
		SessionToken: sessionToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.AccessTokenSecret))
}

func (s *AuthService) enqueueMail(msg mailer.Message, kind string) {
	if s.mail == nil {
		return
	}
	job := jobs.Job{ID: uuid.NewString(), Type: kind, Payload: msg}
	if err := s.mail.Enqueue(job); err != nil {
		s.logger.Warn("failed to enqueue email", zap.String("type", kind), zap.Error(err))
	}
}

func emptyStudentUser(student *models.Student) *models.User {
	return &models.User{
		ID:                  student.ID,
		Name:                student.Name,
		Email:               student.Email,
		Role:                models.RoleStudent,
		IsVerified:          student.IsVerified,
		ClassLevel:          student.ClassLevel,
		PurchasedChapterIDs: []string{},
		PurchasedCourseIDs:  []string{},
		Progress:            map[string]bool{},
		QuizAttempts:        map[string]models.QuizResult{},
		Bookmarks:           []models.Bookmark{},
		LastLogin:           student.LastLogin,
	}
}

func generateNumericCode(digits int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < digits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}

const passwordCharset = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generatePassword(length int) (string, error) {
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordCharset))))
		if err != nil {
			return "", err
		}
		out[i] = passwordCharset[n.Int64()]
	}
	return string(out), nil
}
