package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/internal/config"
	httpx "github.com/mdanyllo/UpaonServicesBackPrototipo/internal/http"
	"github.com/mdanyllo/UpaonServicesBackPrototipo/internal/http/handlers"
	"github.com/mdanyllo/UpaonServicesBackPrototipo/internal/http/middleware"
	"github.com/mdanyllo/UpaonServicesBackPrototipo/internal/infrastructure/auth"
	"github.com/mdanyllo/UpaonServicesBackPrototipo/internal/infrastructure/database"
	"github.com/mdanyllo/UpaonServicesBackPrototipo/internal/infrastructure/notifications"
	"github.com/mdanyllo/UpaonServicesBackPrototipo/internal/infrastructure/payments"
	"github.com/mdanyllo/UpaonServicesBackPrototipo/internal/infrastructure/repositories"
	"github.com/mdanyllo/UpaonServicesBackPrototipo/internal/infrastructure/storage"
	"github.com/mdanyllo/UpaonServicesBackPrototipo/internal/scheduler"
	"github.com/mdanyllo/UpaonServicesBackPrototipo/internal/services"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}
	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return err
	}
	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return err
	}

	// Infrastructure services
	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	sender := notifications.NewSender(
		notifications.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		},
		notifications.TwilioConfig{
			AccountSID: cfg.TwilioSID,
			AuthToken:  cfg.TwilioToken,
			FromNumber: cfg.TwilioFrom,
		},
	)
	gateway, err := payments.NewMercadoPagoGateway(cfg.MPAccessToken, cfg.MPNotificationURL, cfg.MPDescriptor)
	if err != nil {
		return err
	}
	fileStorage, err := storage.NewCloudinaryStorage(cfg.CloudinaryName, cfg.CloudinaryKey, cfg.CloudinarySecret, cfg.CloudinaryFolder)
	if err != nil {
		return err
	}

	// Repositories
	userRepo := repositories.NewUserRepository(gdb)
	providerRepo := repositories.NewProviderRepository(gdb)
	reviewRepo := repositories.NewReviewRepository(gdb)
	paymentRepo := repositories.NewPaymentRepository(gdb)
	contactRepo := repositories.NewContactLogRepository(gdb)
	sessionRepo := repositories.NewSessionRepository(rdb, cfg.RefreshTTL)

	// Services
	verifySvc := services.NewVerificationService(sender, rdb, services.VerificationConfig{
		Length:       cfg.VerifyLength,
		TTL:          cfg.VerifyTTL,
		MaxAttempts:  cfg.VerifyMaxAttempts,
		ResendWindow: cfg.VerifyResendWindow,
	})
	authSvc := services.NewAuthService(userRepo, providerRepo, sessionRepo, passwordSvc, tokenSvc, verifySvc)
	reviewSvc := services.NewReviewService(reviewRepo, providerRepo)
	entitlementSvc := services.NewEntitlementService(providerRepo, userRepo, paymentRepo, sender)
	searchSvc := services.NewSearchService(providerRepo)
	paymentSvc := services.NewPaymentService(gateway, paymentRepo, providerRepo, entitlementSvc)
	statsSvc := services.NewStatsService(userRepo, providerRepo, contactRepo, paymentRepo)

	// Handlers
	authH := handlers.NewAuthHandlers(authSvc, userRepo, fileStorage)
	providerH := handlers.NewProviderHandlers(searchSvc, providerRepo, contactRepo, statsSvc)
	reviewH := handlers.NewReviewHandlers(reviewSvc)
	paymentH := handlers.NewPaymentHandlers(paymentSvc)
	adminH := handlers.NewAdminHandlers(statsSvc, userRepo, providerRepo)

	// Middleware
	jwtMW := middleware.NewAuthMW(tokenSvc, sessionRepo)
	casbinMW := middleware.NewCasbinMW(cas.E)

	r := httpx.BuildRouter(authH, providerH, reviewH, paymentH, adminH, jwtMW, casbinMW, cfg.CORSOrigins)

	policies, _ := cas.E.GetPolicy()
	if len(policies) == 0 {
		cas.E.AddPolicy("role_admin", "/admin/*", "(GET|POST|PUT|PATCH|DELETE)")
		_ = cas.E.SavePolicy()
		log.Println("casbin: seeded default policies")
	}

	// Daily entitlement sweep
	loc, err := time.LoadLocation(cfg.SweepTimezone)
	if err != nil {
		loc = time.Local
	}
	sweep := scheduler.NewSweepScheduler(entitlementSvc, cfg.SweepCron, loc)
	if err := sweep.Start(); err != nil {
		return err
	}
	defer sweep.Stop()

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
