package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/herdsim/internal/config"
	"github.com/mamadbah2/herdsim/internal/repository"
	"github.com/mamadbah2/herdsim/internal/repository/memory"
	"github.com/mamadbah2/herdsim/internal/repository/mongodb"
	"github.com/mamadbah2/herdsim/internal/repository/sheets"
	"github.com/mamadbah2/herdsim/internal/scheduler"
	"github.com/mamadbah2/herdsim/internal/server/handlers"
	"github.com/mamadbah2/herdsim/internal/server/router"
	"github.com/mamadbah2/herdsim/internal/service/ratecard"
	reportingsvc "github.com/mamadbah2/herdsim/internal/service/reporting"
	"github.com/mamadbah2/herdsim/internal/service/simulation"
	"github.com/mamadbah2/herdsim/pkg/clients/callback"
	"github.com/mamadbah2/herdsim/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	rates := rateCardProvider(cfg, baseLogger)

	var scenarios repository.ScenarioRepository
	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewScenarioRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		scenarios = mongoRepo
	} else {
		baseLogger.Warn("MONGODB_URI not set, scenarios are kept in memory")
		scenarios = memory.NewScenarioStore()
	}

	simulationSvc := simulation.NewService(rates,
		simulation.Limits{MaxUnits: cfg.Simulation.MaxUnits, MaxYears: cfg.Simulation.MaxYears},
		baseLogger.Named("svc.simulation"))
	reportingSvc := reportingsvc.NewService(simulationSvc, baseLogger.Named("svc.reporting"))

	handler := handlers.NewSimulationHandler(simulationSvc, scenarios, rates, baseLogger.Named("handlers.simulation"))
	engine := router.New(handler, baseLogger.Named("router"))

	if cfg.Callback.URL != "" {
		shell := callback.NewClient(cfg.Callback)
		sched, err := scheduler.NewScheduler(*cfg, reportingSvc, shell, baseLogger.Named("scheduler"))
		if err != nil {
			baseLogger.Fatal("failed to init scheduler", zap.Error(err))
		}
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	} else {
		baseLogger.Info("SHELL_CALLBACK_URL not set, projection digest disabled")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// rateCardProvider reads the rate card from Google Sheets when a sheet is
// configured and falls back to the static REVENUE_* settings otherwise, or
// when the sheet cannot be read at startup.
func rateCardProvider(cfg *config.Config, log *zap.Logger) ratecard.Provider {
	static := ratecard.Static(cfg.Revenue.RateCard())
	if cfg.Sheets.SpreadsheetID == "" {
		return static
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	sheetsRepo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, log.Named("repo.sheets"))
	if err != nil {
		log.Warn("sheets repository unavailable, using static rate card", zap.Error(err))
		return static
	}

	loader := ratecard.NewSheetLoader(sheetsRepo, cfg.Sheets.RateCardRange, cfg.Revenue.RateCard(), log.Named("svc.ratecard"))
	if _, err := loader.Load(ctx); err != nil {
		log.Warn("rate card sheet unreadable, using static rate card", zap.Error(err))
		return static
	}
	return loader
}
