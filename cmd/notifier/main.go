package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"shop_notifier/internal/app"
	"shop_notifier/internal/infra/config"
	idb "shop_notifier/internal/infra/database"
	"shop_notifier/internal/infra/logger"
	"shop_notifier/internal/infra/mailer"
	"shop_notifier/internal/infra/metrics"
	"shop_notifier/internal/infra/pdf"
	"shop_notifier/internal/infra/scheduler"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	log := logger.Get()
	mainLog := logger.Component("main")
	mainLog.Infof("Configuration loaded. LogLevel: %s, Environment: %s", cfg.LogLevel, cfg.Environment)

	// Database connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		mainLog.Fatalf("FATAL: Could not connect to database: %v", err)
	}
	defer db.Close()
	mainLog.Info("Database connection established successfully.")

	deliveryRepo := idb.NewPostgresDeliveryRepository(db)
	mainLog.Info("Delivery repository initialized.")

	// Mail transport
	smtpClient, err := mailer.NewSMTPClient(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	if err != nil {
		mainLog.Fatalf("FATAL: Could not create SMTP client: %v", err)
	}
	mainLog.Infof("SMTP client initialized for %s:%d.", cfg.SMTPHost, cfg.SMTPPort)

	// Core services
	dispatcher := app.NewBatchDispatcher(smtpClient, cfg.DispatchBatchSize, cfg.DispatchBatchDelay, log)
	cycleService := app.NewCycleService(
		deliveryRepo,
		dispatcher,
		pdf.NewRenderer(),
		app.DefaultClassifier(),
		cfg.MailFrom,
		cfg.MailFromName,
		log,
	)
	mainLog.Info("Cycle service initialized.")

	// Scheduler
	notifScheduler := scheduler.NewNotificationScheduler(cycleService, log, scheduler.FamilySpecs{
		Signup:         cfg.CronSpecSignup,
		OrderPlaced:    cfg.CronSpecOrderPlaced,
		OrderDelivered: cfg.CronSpecOrderDelivered,
		PlanRequest:    cfg.CronSpecPlanRequest,
		PromoLastDay:   cfg.CronSpecPromoLastDay,
	})
	if err := notifScheduler.Start(); err != nil {
		mainLog.Fatalf("FATAL: Could not start scheduler: %v", err)
	}

	// Metrics endpoint
	reg := prometheus.NewRegistry()
	metrics.MustRegister(reg)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	metricsSrv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
	go func() {
		mainLog.Infof("Metrics endpoint listening on %s", cfg.MetricsAddr)
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			mainLog.Errorf("Metrics server error: %v", err)
		}
	}()

	mainLog.Info("Application setup complete. Scheduler is running.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	mainLog.Info("Shutting down application...")
	notifScheduler.Stop()
	metricsSrv.Close()
	mainLog.Info("Application shut down gracefully.")
}
