package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/caseflow/caseflow-backend/internal/casefile/engine"
	"github.com/caseflow/caseflow-backend/internal/casefile/events"
	"github.com/caseflow/caseflow-backend/internal/casefile/handler"
	"github.com/caseflow/caseflow-backend/internal/casefile/provider"
	"github.com/caseflow/caseflow-backend/internal/casefile/repository"
	"github.com/caseflow/caseflow-backend/internal/casefile/service"
	"github.com/caseflow/caseflow-backend/pkg/config"
	"github.com/caseflow/caseflow-backend/pkg/httputil"
	"github.com/caseflow/caseflow-backend/pkg/logger"
	"github.com/caseflow/caseflow-backend/pkg/messaging"
)

func main() {
	// Load configuration with validation (fails fast in production if required config is missing)
	cfg, err := config.LoadWithValidation("case-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("case-service", cfg.Server.Environment)
	log.Info().Msg("starting Case Service")

	// Resolve and construct the persistence backend
	backend, err := provider.New(&cfg.Backend, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize backend provider")
	}
	log.Info().Str("provider", string(backend.Kind())).Msg("backend provider resolved")

	// Connect to RabbitMQ if configured; event publishing is optional
	var publisher service.EventPublisher = service.NoopPublisher{}
	var rmq *messaging.RabbitMQ
	if cfg.RabbitMQ.Enabled() {
		rmq, err = messaging.New(&cfg.RabbitMQ, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		defer rmq.Close()

		eventPublisher, err := events.NewCaseEventPublisher(rmq, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create event publisher")
		}
		publisher = eventPublisher
	} else {
		log.Info().Msg("RabbitMQ not configured, event publishing disabled")
	}

	// Initialize repository and service
	caseRepo := repository.NewCaseRepository(backend, log)
	caseService := service.NewCaseService(engine.New(), caseRepo, publisher, log)

	// Initialize handlers
	caseHandler := handler.NewCaseHandler(caseService, log)
	fieldHandler := handler.NewFieldHandler(caseService, log)
	photoHandler := handler.NewPhotoHandler(caseService, log)
	reportHandler := handler.NewReportHandler(caseService, log)
	registryHandler := handler.NewRegistryHandler(log)

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			if origin == "http://localhost:3000" || origin == "http://localhost:5173" {
				return true
			}
			return false
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Extract acting user from the Authorization header
	r.Use(httputil.ActorMiddleware(cfg.Auth.JWTSecret))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := map[string]interface{}{
			"status":   "healthy",
			"service":  "case-service",
			"provider": string(backend.Kind()),
		}
		if rmq != nil {
			health["rabbitmq"] = rmq.Health()
		}
		if h, ok := backend.(interface {
			Health(ctx context.Context) map[string]string
		}); ok {
			health["database"] = h.Health(r.Context())
		}
		httputil.JSON(w, http.StatusOK, health)
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Registry
		r.Route("/registry", func(r chi.Router) {
			r.Get("/fields", registryHandler.ListFields)
			r.Get("/fields/{key}", registryHandler.GetField)
			r.Get("/fields/{key}/reuse", registryHandler.FieldReuse)
			r.Get("/sections", registryHandler.ListSections)
		})

		// Cases
		r.Route("/cases", func(r chi.Router) {
			r.Get("/", caseHandler.List)
			r.Post("/", caseHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", caseHandler.Get)
				r.Patch("/", caseHandler.UpdateMetadata)
				r.Delete("/", caseHandler.Delete)
				r.Put("/status", caseHandler.SetStatus)

				r.Get("/progress", caseHandler.Progress)
				r.Get("/alerts", caseHandler.Alerts)

				// Team and timeline
				r.Post("/team", caseHandler.AddTeamMember)
				r.Delete("/team/{memberId}", caseHandler.RemoveTeamMember)
				r.Post("/events", caseHandler.AddTimelineEvent)

				// Recognition fields
				r.Put("/fields", fieldHandler.SetValue)
				r.Post("/fields/{key}/confirm", fieldHandler.Confirm)
				r.Put("/fields/{key}", fieldHandler.Edit)

				// AI extractions
				r.Post("/extractions", fieldHandler.AddExtraction)
				r.Post("/extractions/{extractionId}/confirm", fieldHandler.ConfirmExtraction)
				r.Post("/extractions/{extractionId}/dismiss", fieldHandler.DismissExtraction)
				r.Put("/extractions/{extractionId}", fieldHandler.EditExtraction)

				// Recognition sections
				r.Post("/sections/{sectionId}/complete", fieldHandler.MarkSectionComplete)
				r.Delete("/sections/{sectionId}/complete", fieldHandler.UnmarkSectionComplete)

				// Photo evidence
				r.Post("/photos", photoHandler.Add)
				r.Post("/photos/{photoId}/category", photoHandler.ConfirmCategory)
				r.Put("/photos/{photoId}/tags", photoHandler.UpdateTags)
				r.Delete("/photos/{photoId}", photoHandler.Remove)

				// Photo report
				r.Put("/photo-report/selection", photoHandler.SetSelection)
				r.Put("/photo-report/photos/{photoId}/caption", photoHandler.SetCaption)
				r.Put("/photo-report/config", photoHandler.Configure)

				// Investigation report
				r.Put("/report/blocks/{blockId}", reportHandler.UpdateBlock)
				r.Post("/report/blocks/{blockId}/generated", reportHandler.SetBlockAIGenerated)
				r.Post("/report/blocks/{blockId}/confirm", reportHandler.ConfirmBlock)
				r.Post("/report/blocks/{blockId}/references", reportHandler.AddReferences)
				r.Delete("/report/blocks/{blockId}/references", reportHandler.RemoveReferences)
				r.Put("/report/signatures", reportHandler.UpdateSignatures)
				r.Post("/report/pdfs", reportHandler.RecordPDF)
			})
		})
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
