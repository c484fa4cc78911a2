package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/estatehub-api/api/v1"
	"github.com/estatehub-api/config"
	"github.com/estatehub-api/database"
	"github.com/estatehub-api/lib/notify"
	"github.com/estatehub-api/lib/storage"
	"github.com/estatehub-api/repositories"
	"github.com/estatehub-api/services"
	"github.com/estatehub-api/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadEnv()
	utils.InitLogger("estatehub-api")
	cfg := config.Load()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg.DatabaseURL, cfg.DBLogLevel)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to migrate database")
	}

	if cfg.JWTSecret == "" {
		utils.Logger.Warn("JWT_SECRET is not set, admin login is disabled")
	}

	provider, err := storage.NewLocalProvider(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to initialise storage")
	}
	janitor := storage.NewJanitor(provider)

	sender := notify.NewTwilioSender(notify.TwilioOptions{
		AccountSID: cfg.TwilioAccountSID,
		AuthToken:  cfg.TwilioAuthToken,
		From:       cfg.TwilioFromNumber,
		To:         cfg.ReminderNotifyTo,
		Timeout:    cfg.NotifyTimeout,
	})
	if cfg.RemindersEnabled {
		if err := sender.Validate(); err != nil {
			utils.Logger.WithError(err).Warn("Reminders are enabled but the sender is not configured")
		}
	}

	propertyRepo := repositories.NewPropertyRepository(db)
	leadRepo := repositories.NewLeadRepository(db)
	reminderRepo := repositories.NewReminderRepository(db)

	reminderService := services.NewReminderService(reminderRepo, leadRepo, sender, services.ReminderOptions{
		Enabled:     cfg.RemindersEnabled,
		SendTimeout: cfg.NotifyTimeout,
	})

	deps := v1.Dependencies{
		DB:         db,
		Auth:       services.NewAuthService(repositories.NewUserRepository(db), cfg.JWTSecret, cfg.SessionTTL),
		Search:     services.NewSearchService(propertyRepo),
		Reminders:  reminderService,
		Properties: services.NewPropertyService(propertyRepo, janitor),
		Leads:      services.NewLeadService(leadRepo, propertyRepo),
		Gallery: services.NewGalleryService(
			repositories.NewCategoryRepository(db),
			repositories.NewGalleryRepository(db),
			janitor,
		),
		Storage: provider,

		SessionTTL:        cfg.SessionTTL,
		CookieSecure:      cfg.CookieSecure,
		CronSecret:        cfg.CronSecret,
		CronTrustedHeader: cfg.CronTrustedHeader,
		CronBudget:        cfg.CronBudget,
		UploadMaxBytes:    cfg.UploadMaxBytes,
		LeadRatePerMinute: cfg.LeadRatePerMinute,
	}

	if err := v1.RegisterValidators(); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to register validators")
	}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(utils.Logger.Writer()), gin.Recovery())

	// CORS configuration
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	} else {
		corsConfig.AllowOriginFunc = func(string) bool { return true }
	}
	router.Use(cors.New(corsConfig))

	router.Static(cfg.UploadBaseURL, provider.Root())
	v1.RegisterRoutes(router.Group("/api/v1"), deps)

	var reminderCron *services.ReminderCron
	if cfg.InternalCronSpec != "" {
		reminderCron, err = services.NewReminderCron(reminderService, cfg.InternalCronSpec, cfg.CronBudget)
		if err != nil {
			utils.Logger.WithError(err).Fatal("Failed to schedule reminder dispatch")
		}
		reminderCron.Start()
		utils.Logger.WithField("spec", cfg.InternalCronSpec).Info("In-process reminder dispatch scheduled")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.Logger.Infof("Starting estatehub-api on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.Logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if reminderCron != nil {
		<-reminderCron.Stop().Done()
	}
	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger.WithError(err).Error("Server shutdown failed")
	}
	janitor.Wait()
}
