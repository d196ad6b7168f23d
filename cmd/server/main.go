package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stockport/portfolio-engine/internal/clients/marketdata"
	"github.com/stockport/portfolio-engine/internal/config"
	"github.com/stockport/portfolio-engine/internal/database"
	"github.com/stockport/portfolio-engine/internal/events"
	"github.com/stockport/portfolio-engine/internal/modules/alerts"
	"github.com/stockport/portfolio-engine/internal/modules/analytics"
	"github.com/stockport/portfolio-engine/internal/modules/holdings"
	"github.com/stockport/portfolio-engine/internal/modules/insights"
	"github.com/stockport/portfolio-engine/internal/modules/trading"
	"github.com/stockport/portfolio-engine/internal/scheduler"
	"github.com/stockport/portfolio-engine/internal/server"
	"github.com/stockport/portfolio-engine/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting portfolio engine")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Ensure per-module schemas
	if err := initSchemas(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize schemas")
	}

	// Event bus
	eventManager := events.NewManager(log)

	// Simulated market data feed
	quotes := marketdata.NewClient(log)

	// Holdings ledger
	holdingsRepo := holdings.NewRepository(db.Conn(), log)
	ledger := holdings.NewService(holdingsRepo, eventManager, log)

	// Analytics
	historyRepo := analytics.NewRepository(db.Conn(), log)
	analyticsService := analytics.NewService(ledger, quotes, historyRepo, cfg.QuoteTimeout, log)
	analyticsHandler := analytics.NewHandler(analyticsService, log)

	// Insights
	insightsRepo := insights.NewRepository(db.Conn(), log)
	insightsService := insights.NewService(insightsRepo, analyticsService, eventManager, cfg.InsightCooldown, log)
	insightsHandler := insights.NewHandler(insightsService, log)

	// Trading
	tradingRepo := trading.NewRepository(db.Conn(), log)
	tradingService := trading.NewService(ledger, tradingRepo, quotes, eventManager, log)
	tradingHandler := trading.NewHandler(tradingService, log)

	// Each executed trade reshapes the portfolio, so rerun the rule scan
	eventManager.Subscribe(events.TradeExecuted, func(events.Event) {
		insightsService.Generate()
	})

	// Price alerts
	alertsRepo := alerts.NewRepository(db.Conn(), log)
	alertsService := alerts.NewService(alertsRepo, quotes, eventManager, log)
	alertsHandler := alerts.NewHandler(alertsService, log)

	// Background jobs
	sched := scheduler.New(log)
	refreshJob := scheduler.NewRefreshCycleJob(quotes, alertsService, eventManager, log)
	if err := sched.AddJob(cfg.RefreshSchedule, refreshJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register refresh cycle job")
	}
	snapshotJob := scheduler.NewSnapshotJob(analyticsService, log)
	if err := sched.AddJob("0 5 0 * * *", snapshotJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register snapshot job")
	}
	sched.Start()
	defer sched.Stop()

	// HTTP server
	srv := server.New(server.Config{
		Port:      cfg.Port,
		DevMode:   cfg.DevMode,
		Log:       log,
		DB:        db,
		Analytics: analyticsHandler,
		Insights:  insightsHandler,
		Trading:   tradingHandler,
		Alerts:    alertsHandler,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// initSchemas creates each module's tables
func initSchemas(db *database.DB) error {
	if err := holdings.InitSchema(db.Conn()); err != nil {
		return err
	}
	if err := analytics.InitSchema(db.Conn()); err != nil {
		return err
	}
	if err := insights.InitSchema(db.Conn()); err != nil {
		return err
	}
	if err := trading.InitSchema(db.Conn()); err != nil {
		return err
	}
	return alerts.InitSchema(db.Conn())
}
