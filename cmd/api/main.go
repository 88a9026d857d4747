package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/krishna45-ux/DC-Physics-3/api/swagger"
	"github.com/krishna45-ux/DC-Physics-3/internal/handler"
	"github.com/krishna45-ux/DC-Physics-3/internal/middleware"
	"github.com/krishna45-ux/DC-Physics-3/internal/models"
	"github.com/krishna45-ux/DC-Physics-3/internal/repository"
	"github.com/krishna45-ux/DC-Physics-3/internal/service"
	"github.com/krishna45-ux/DC-Physics-3/pkg/cache"
	"github.com/krishna45-ux/DC-Physics-3/pkg/config"
	"github.com/krishna45-ux/DC-Physics-3/pkg/database"
	"github.com/krishna45-ux/DC-Physics-3/pkg/jobs"
	"github.com/krishna45-ux/DC-Physics-3/pkg/logger"
	"github.com/krishna45-ux/DC-Physics-3/pkg/mailer"
	corsmiddleware "github.com/krishna45-ux/DC-Physics-3/pkg/middleware/cors"
	reqidmiddleware "github.com/krishna45-ux/DC-Physics-3/pkg/middleware/requestid"
)

// @title DC Physics API
// @version 1.0.0
// @description Backend for the DC Physics e-learning platform
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Repositories.
	studentRepo := repository.NewStudentRepository(db)
	verificationRepo := repository.NewVerificationRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	entitlementRepo := repository.NewEntitlementRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)

	metricsSvc := service.NewMetricsService()

	var cacheRepo *repository.CacheRepository
	if cfg.Catalog.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			cacheRepo.Instrument(metricsSvc)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	if err := seedTeacherCredentials(ctx, cfg, teacherRepo, logr); err != nil {
		logr.Sugar().Fatalw("failed to seed teacher credentials", "error", err)
	}

	// Outbound mail runs on a worker pool so request handlers never block on
	// the transport.
	mail := mailer.New(cfg.Mail, logr)
	mailQueue := jobs.NewQueue("mail", func(ctx context.Context, job jobs.Job) error {
		msg, ok := job.Payload.(mailer.Message)
		if !ok {
			return fmt.Errorf("unexpected mail payload %T", job.Payload)
		}
		return mail.Send(ctx, msg)
	}, jobs.QueueConfig{Workers: cfg.Mail.Workers, Logger: logr})
	mailQueue.Start(ctx)
	defer mailQueue.Stop()

	validate := validator.New()

	// Services.
	authSvc := service.NewAuthService(studentRepo, verificationRepo, teacherRepo, entitlementRepo, mailQueue, validate, logr, service.AuthServiceConfig{
		AccessTokenSecret:   cfg.JWT.Secret,
		AccessTokenExpiry:   cfg.JWT.Expiration,
		Issuer:              cfg.JWT.Issuer,
		VerificationCodeTTL: cfg.Auth.VerificationCodeTTL,
		ResetPasswordLength: cfg.Auth.ResetPasswordLength,
	})

	catalogSvc := service.NewCatalogService(catalogRepo, cacheStoreOrNil(cacheRepo), cfg.Catalog.CacheTTL, validate, logr)
	entitlementSvc := service.NewEntitlementService(entitlementRepo, studentRepo, catalogRepo, validate, logr)
	quizSvc := service.NewQuizService(quizRepo, catalogRepo, validate, logr)
	noteSvc := service.NewNoteService(noteRepo, validate, logr)
	announcementSvc := service.NewAnnouncementService(announcementRepo, teacherRepo, cacheStoreOrNil(cacheRepo), cfg.Catalog.CacheTTL, validate, logr)
	teacherSvc := service.NewTeacherService(teacherRepo, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, nil, nil, metricsSvc, logr)
	tutorSvc := service.NewTutorService(service.TutorConfig{
		BaseURL: cfg.Tutor.BaseURL,
		APIKey:  cfg.Tutor.APIKey,
		Model:   cfg.Tutor.Model,
		Timeout: cfg.Tutor.Timeout,
	}, validate, logr)

	// Handlers.
	authHandler := handler.NewAuthHandler(authSvc)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	entitlementHandler := handler.NewEntitlementHandler(entitlementSvc)
	quizHandler := handler.NewQuizHandler(quizSvc)
	noteHandler := handler.NewNoteHandler(noteSvc)
	announcementHandler := handler.NewAnnouncementHandler(announcementSvc)
	teacherHandler := handler.NewTeacherHandler(teacherSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	tutorHandler := handler.NewTutorHandler(tutorSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/send-code", authHandler.SendCode)
	auth.POST("/verify", authHandler.VerifyEmail)
	auth.POST("/login", authHandler.Login)
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)
	auth.GET("/session", middleware.JWT(authSvc), authHandler.Session)
	auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
	auth.PUT("/me", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleStudent), authHandler.UpdateMe)
	auth.POST("/change-password", middleware.JWT(authSvc), authHandler.ChangePassword)

	catalog := api.Group("/catalog")
	catalog.GET("/chapters", catalogHandler.ListChapters)
	catalog.GET("/chapters/:chapterId", catalogHandler.GetChapter)
	catalog.GET("/courses", catalogHandler.ListCourses)
	catalog.PUT("/chapters/:chapterId/topics/:topicId/video",
		middleware.JWT(authSvc), middleware.RequireRoles(models.RoleTeacher), catalogHandler.UpdateTopicVideo)

	me := api.Group("/me", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleStudent))
	me.GET("/entitlements", entitlementHandler.Entitlements)
	me.POST("/purchases", entitlementHandler.Purchase)
	me.POST("/progress", entitlementHandler.MarkWatched)
	me.POST("/quiz-attempts", entitlementHandler.RecordQuizAttempt)
	me.POST("/bookmarks", entitlementHandler.AddBookmark)
	me.DELETE("/bookmarks/:id", entitlementHandler.DeleteBookmark)

	chapters := api.Group("/chapters")
	chapters.GET("/:chapterId/quiz", middleware.JWT(authSvc), quizHandler.GetByChapter)
	chapters.PUT("/:chapterId/quiz",
		middleware.JWT(authSvc), middleware.RequireRoles(models.RoleTeacher), quizHandler.Save)

	notes := api.Group("/notes")
	notes.GET("", middleware.JWT(authSvc), noteHandler.List)
	notes.POST("", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleTeacher), noteHandler.Create)
	notes.DELETE("/:id", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleTeacher), noteHandler.Delete)

	announcements := api.Group("/announcements")
	announcements.GET("", announcementHandler.List)
	announcements.POST("", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleTeacher), announcementHandler.Create)
	announcements.DELETE("/:id", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleTeacher), announcementHandler.Delete)

	teacher := api.Group("/teacher")
	teacher.GET("/profile", teacherHandler.Profile)
	teacher.PUT("/profile", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleTeacher), teacherHandler.UpdateProfile)

	students := api.Group("/students", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleTeacher))
	students.GET("", studentHandler.List)
	students.GET("/roster", studentHandler.Roster)
	students.GET("/roster/export", studentHandler.ExportRoster)

	tutor := api.Group("/tutor", middleware.JWT(authSvc))
	tutor.POST("/ask", tutorHandler.Ask)

	admin := api.Group("/admin", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleTeacher))
	admin.GET("/metrics", metricsHandler.Snapshot)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}

// seedTeacherCredentials installs the configured teacher login on first boot.
// An existing credential row wins; changing the env var later does not reset
// a password the teacher has since changed.
func seedTeacherCredentials(ctx context.Context, cfg *config.Config, teachers *repository.TeacherRepository, logr *zap.Logger) error {
	if cfg.Auth.TeacherEmail == "" || cfg.Auth.TeacherPassword == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Auth.TeacherPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := teachers.EnsureAuth(ctx, cfg.Auth.TeacherEmail, string(hash), time.Now().UTC()); err != nil {
		return err
	}
	logr.Sugar().Debugw("teacher credentials ensured", "email", cfg.Auth.TeacherEmail)
	return nil
}

// cacheStoreOrNil converts a possibly-nil *CacheRepository into the interface
// the services accept without producing a non-nil interface wrapping a nil
// pointer.
func cacheStoreOrNil(repo *repository.CacheRepository) service.CacheStore {
	if repo == nil {
		return nil
	}
	return repo
}
