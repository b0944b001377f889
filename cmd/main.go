package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	exportReportHandler "github.com/neohelios/occupancy-dashboard/internal/api/handlers/export_report"
	getFiltersHandler "github.com/neohelios/occupancy-dashboard/internal/api/handlers/get_filters"
	getReportHandler "github.com/neohelios/occupancy-dashboard/internal/api/handlers/get_report"
	getRoomDetailsHandler "github.com/neohelios/occupancy-dashboard/internal/api/handlers/get_room_details"
	"github.com/neohelios/occupancy-dashboard/internal/api/middleware"
	"github.com/neohelios/occupancy-dashboard/internal/config"
	"github.com/neohelios/occupancy-dashboard/internal/fleet"
	inventoryRepo "github.com/neohelios/occupancy-dashboard/internal/infra/storage/inventory"
	manifestRepo "github.com/neohelios/occupancy-dashboard/internal/infra/storage/manifest"
	scheduleRepo "github.com/neohelios/occupancy-dashboard/internal/infra/storage/schedule"
	exportService "github.com/neohelios/occupancy-dashboard/internal/service/export"
	buildReportUC "github.com/neohelios/occupancy-dashboard/internal/usecase/build_report"
	roomDetailsUC "github.com/neohelios/occupancy-dashboard/internal/usecase/room_details"
	"github.com/neohelios/occupancy-dashboard/pkg/dbmetrics"
	"github.com/neohelios/occupancy-dashboard/pkg/logger"
	"github.com/neohelios/occupancy-dashboard/pkg/metrics"
)

const poolStatsInterval = 15 * time.Second

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting occupancy-dashboard...")
	log.Info("Configuration loaded from config.toml")

	fleetCfg, err := fleet.Load(cfg.Fleet.File)
	if err != nil {
		log.Fatal("Failed to load fleet configuration: %v", err)
	}
	log.Info("Fleet configuration loaded: routes=%v", fleetCfg.RouteCodes())

	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// The scheduling and booking domains live in separate databases.
	schedulingDB, err := openDB(cfg.SchedulingDB)
	if err != nil {
		log.Fatal("Failed to connect to scheduling database: %v", err)
	}
	defer schedulingDB.Close()
	log.Info("Connected to scheduling database (host=%s, port=%d, db=%s)",
		cfg.SchedulingDB.Host, cfg.SchedulingDB.Port, cfg.SchedulingDB.DBName)

	bookingDB, err := openDB(cfg.BookingDB)
	if err != nil {
		log.Fatal("Failed to connect to booking database: %v", err)
	}
	defer bookingDB.Close()
	log.Info("Connected to booking database (host=%s, port=%d, db=%s)",
		cfg.BookingDB.Host, cfg.BookingDB.Port, cfg.BookingDB.DBName)

	var (
		scheduleRepository  *scheduleRepo.Repository
		inventoryRepository *inventoryRepo.Repository
		manifestRepository  *manifestRepo.Repository
	)
	if cfg.Metrics.Enabled {
		wrappedScheduling := dbmetrics.WrapWithPoolStats(schedulingDB, metricsCollector, "scheduling", poolStatsInterval, stopMetricsCh)
		wrappedBooking := dbmetrics.WrapWithPoolStats(bookingDB, metricsCollector, "booking", poolStatsInterval, stopMetricsCh)
		scheduleRepository = scheduleRepo.NewRepository(wrappedScheduling)
		inventoryRepository = inventoryRepo.NewRepository(wrappedBooking)
		manifestRepository = manifestRepo.NewRepository(wrappedBooking)
		log.Info("Database metrics collection started")
	} else {
		scheduleRepository = scheduleRepo.NewRepository(schedulingDB)
		inventoryRepository = inventoryRepo.NewRepository(bookingDB)
		manifestRepository = manifestRepo.NewRepository(bookingDB)
	}

	exportSvc := exportService.NewService(manifestRepository, log)

	buildReportUseCase := buildReportUC.New(scheduleRepository, inventoryRepository, fleetCfg, metricsCollector, log)
	roomDetailsUseCase := roomDetailsUC.New(inventoryRepository, fleetCfg, log)

	getReport := getReportHandler.NewHandler(buildReportUseCase, log)
	exportReport := exportReportHandler.NewHandler(buildReportUseCase, exportSvc, log)
	getRoomDetails := getRoomDetailsHandler.NewHandler(roomDetailsUseCase, log)
	getFilters := getFiltersHandler.NewHandler(scheduleRepository, fleetCfg, log)

	r := mux.NewRouter()
	r.Use(middleware.Logging(log))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/occupancy/report", getReport.Handle).Methods(http.MethodGet)
	api.HandleFunc("/occupancy/report/export", exportReport.Handle).Methods(http.MethodGet)
	api.HandleFunc("/occupancy/schedules/{scheduleId}/rooms", getRoomDetails.Handle).Methods(http.MethodGet)
	api.HandleFunc("/occupancy/filters", getFilters.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

func openDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
