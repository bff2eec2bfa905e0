package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/hairizuan-noorazman/script-storyboard/cmd/storyboard/handlers"
	"github.com/hairizuan-noorazman/script-storyboard/logger"
	"github.com/hairizuan-noorazman/script-storyboard/storyboard"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server with the generator form and JSON API",
	RunE:  runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// newRouter wires the handlers onto a mux router.
func newRouter(controller *storyboard.Controller, log logger.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(handlers.RequestIDMiddleware)
	router.Use(handlers.NewAccessLogMiddleware(log).Handler)

	router.HandleFunc("/health", handlers.NewHealthHandler(controller.Model())).Methods("GET")

	pageHandler := handlers.NewPageHandler(controller, log)
	router.HandleFunc("/", pageHandler.Show).Methods("GET")
	router.HandleFunc("/", pageHandler.Submit).Methods("POST")

	promptHandler := handlers.NewPromptHandler(controller, log)
	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	apiRouter.HandleFunc("/prompts", promptHandler.Generate).Methods("POST")

	return router
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.NewLogrusLogger(cfg.Log.Level)
	log.Info(ctx, "starting server", map[string]interface{}{
		"version": Version,
		"commit":  Commit,
		"date":    BuildDate,
	})

	generator, err := newGenerator(cfg.Generation)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}
	controller := storyboard.NewController(generator, log.WithField("component", "controller"))

	log.Info(ctx, "generator initialized", map[string]interface{}{
		"provider": cfg.Generation.Provider,
		"model":    generator.Model(),
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      newRouter(controller, log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info(ctx, "server listening", map[string]interface{}{
			"address": addr,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "shutting down server", nil)

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info(ctx, "server stopped", nil)
	return nil
}
