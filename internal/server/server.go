package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/aggregate"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/auth"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/chat"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/database"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/domain"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/handler"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/kvstore"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/logger"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/metrics"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/notify"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/repository"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/syncer"
)

type Server struct {
	httpServer  *http.Server
	dbPool      database.Pool
	authService auth.Service
	aggService  aggregate.Service
	chatClient  *chat.Client
	store       kvstore.Store
	scheduler   *notify.Scheduler
	invSync     *syncer.Inventory
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool,
	authService auth.Service, aggService aggregate.Service, chatClient *chat.Client,
	store kvstore.Store, scheduler *notify.Scheduler, invSync *syncer.Inventory) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(10 << 20)) // 10MB, image uploads included
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", handler.HandleSignUp(authService))
			r.Post("/signin", handler.HandleSignIn(authService))
			r.Post("/signout", handler.HandleSignOut(authService))
			r.Get("/session", handler.HandleSession(authService))
			r.Post("/resend-verification", handler.HandleResendVerification(authService))
		})

		// The four countable families mirror every save into the remote
		// store so /counts reflects what the user actually saved
		r.Route("/inventory", func(r chi.Router) {
			registerCollection(r, "/fertilizers", authService, store,
				func(s *repository.Stores) *repository.Collection[domain.FertilizerItem] { return s.Fertilizers },
				invSync.SyncFertilizers)
			registerCollection(r, "/seeds", authService, store,
				func(s *repository.Stores) *repository.Collection[domain.SeedItem] { return s.Seeds },
				invSync.SyncSeeds)
			registerCollection(r, "/packaging", authService, store,
				func(s *repository.Stores) *repository.Collection[domain.PackagingItem] { return s.Packaging },
				invSync.SyncPackaging)
			registerCollection(r, "/storage-locations", authService, store,
				func(s *repository.Stores) *repository.Collection[domain.StorageLocation] { return s.StorageLocations },
				invSync.SyncStorageLocations)
		})

		r.Route("/records", func(r chi.Router) {
			registerCollection(r, "/harvests", authService, store,
				func(s *repository.Stores) *repository.Collection[domain.Harvest] { return s.Harvests }, nil)
			registerCollection(r, "/sales", authService, store,
				func(s *repository.Stores) *repository.Collection[domain.Sale] { return s.Sales }, nil)
			registerCollection(r, "/usage", authService, store,
				func(s *repository.Stores) *repository.Collection[domain.UsageRecord] { return s.UsageRecords }, nil)
		})

		r.Route("/equipment", func(r chi.Router) {
			registerCollection(r, "/items", authService, store,
				func(s *repository.Stores) *repository.Collection[domain.Equipment] { return s.Equipment }, nil)
			registerCollection(r, "/maintenance-schedules", authService, store,
				func(s *repository.Stores) *repository.Collection[domain.MaintenanceSchedule] {
					return s.MaintenanceSchedules
				}, nil)
			registerCollection(r, "/maintenance-records", authService, store,
				func(s *repository.Stores) *repository.Collection[domain.MaintenanceRecord] {
					return s.MaintenanceRecords
				}, nil)
		})

		r.Get("/counts", handler.HandleCounts(authService, aggService))

		r.Route("/assistant", func(r chi.Router) {
			r.Post("/chat", handler.HandleAssistantChat(chatClient))
			r.Post("/image", handler.HandleAssistantImage(chatClient))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Post("/", handler.HandleScheduleNotification(scheduler))
			r.Delete("/{id}", handler.HandleCancelNotification(scheduler))
			r.Delete("/", handler.HandleCancelAllNotifications(scheduler))
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:      dbPool,
		authService: authService,
		aggService:  aggService,
		chatClient:  chatClient,
		store:       store,
		scheduler:   scheduler,
		invSync:     invSync,
	}
}

// registerCollection mounts the replace-all GET/PUT pair for one entity
// family. sync is nil for families that stay device-local.
func registerCollection[T any](r chi.Router, pattern string, authService auth.Service,
	store kvstore.Store, pick func(*repository.Stores) *repository.Collection[T],
	sync handler.SyncFunc[T]) {
	r.Get(pattern, handler.HandleGetCollection(authService, store, pick))
	r.Put(pattern, handler.HandleSaveCollection(authService, store, pick, sync))
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
