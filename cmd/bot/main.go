package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/brandscope/visibility-bot/internal/config"
	"github.com/brandscope/visibility-bot/internal/metrics"
	"github.com/brandscope/visibility-bot/internal/models"
	"github.com/brandscope/visibility-bot/internal/notifications"
	"github.com/brandscope/visibility-bot/internal/pipeline"
	"github.com/brandscope/visibility-bot/internal/platforms"
	"github.com/brandscope/visibility-bot/internal/scheduler"
	"github.com/brandscope/visibility-bot/internal/storage"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting Brand Visibility Bot")

	// Initialize metrics
	collector, err := metrics.NewCollector()
	if err != nil {
		logrus.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize the AI platform registry and gateway
	registry := platforms.NewRegistry(cfg)
	gateway := platforms.NewGateway(registry, cfg.QueryTimeout, collector)
	logrus.Infof("Enabled platforms: %s", strings.Join(registry.EnabledNames(), ", "))

	// Initialize result storage
	store, err := storage.New(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize notification services
	notificationService := notifications.NewService(cfg)

	// Initialize the analysis pipeline
	pipelineService := pipeline.NewService(cfg, gateway, store, notificationService, collector)

	// Initialize scheduler
	schedulerService := scheduler.NewService(cfg, pipelineService, gateway, notificationService)

	// Start scheduler
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	// Set up HTTP server for health checks, status, and manual triggers
	router := mux.NewRouter()
	router.Use(collector.InstrumentHandler)

	// Health check endpoint
	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// Metrics endpoint
	router.Handle("/metrics", collector.Handler()).Methods("GET")

	// Last completed run summary
	router.HandleFunc("/status", statusHandler(pipelineService)).Methods("GET")

	// Platform reachability probe
	router.HandleFunc("/platforms", platformsHandler(gateway)).Methods("GET")

	// Stored result bundles
	router.HandleFunc("/results", resultsHandler(store)).Methods("GET")
	router.HandleFunc("/results/{name}", resultHandler(store)).Methods("GET")

	// Manual trigger endpoint using the configured default profile
	router.HandleFunc("/trigger", triggerHandler(pipelineService)).Methods("POST")

	// Ad-hoc analysis endpoint accepting a brand profile
	router.HandleFunc("/analyze", analyzeHandler(pipelineService)).Methods("POST")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server in a goroutine
	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","timestamp":"` + time.Now().Format(time.RFC3339) + `"}`))
}

func statusHandler(pipelineService *pipeline.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		summary := pipelineService.LastRun()
		if summary == nil {
			w.Write([]byte(`{"status":"waiting","message":"no completed analysis runs yet"}`))
			return
		}
		json.NewEncoder(w).Encode(summary)
	}
}

func platformsHandler(gateway *platforms.Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := gateway.Status(r.Context())

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	}
}

func resultsHandler(store storage.Interface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := store.List(r.Context(), "analysis-")
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list results: %v", err))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string][]string{"results": names})
	}
}

func resultHandler(store storage.Interface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]

		data, err := store.Retrieve(r.Context(), name)
		if err != nil {
			writeError(w, http.StatusNotFound, fmt.Sprintf("result %s not found", name))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}
}

func triggerHandler(pipelineService *pipeline.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile := pipelineService.DefaultProfile()
		if profile.BrandName == "" {
			writeError(w, http.StatusBadRequest, "BRAND_NAME is not configured")
			return
		}

		go runAnalysis(pipelineService, profile)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"message":"Analysis triggered successfully"}`))
	}
}

func analyzeHandler(pipelineService *pipeline.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var profile models.BrandProfile
		if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}

		go runAnalysis(pipelineService, profile)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{
			"message": fmt.Sprintf("Analysis started for %s", profile.BrandName),
		})
	}
}

// runAnalysis executes a pipeline run detached from the request that
// triggered it; failures surface in the logs.
func runAnalysis(pipelineService *pipeline.Service, profile models.BrandProfile) {
	if _, err := pipelineService.Run(context.Background(), profile); err != nil {
		logrus.Errorf("Manual analysis trigger failed: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
