// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, rate
// limiting, CORS, and security headers.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Bearer-token auth on everything except login, register and health
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/jrcatalan/go-osca-backend/internal/config"
	"github.com/jrcatalan/go-osca-backend/internal/domain"
	"github.com/jrcatalan/go-osca-backend/internal/http/handlers"
	"github.com/jrcatalan/go-osca-backend/internal/http/middleware"
	"github.com/jrcatalan/go-osca-backend/internal/repo"
	"github.com/jrcatalan/go-osca-backend/internal/services"
	"github.com/jrcatalan/go-osca-backend/internal/sms"
	"github.com/jrcatalan/go-osca-backend/internal/storage"
)

// officialRepoShim adapts the repository free functions to the
// services.OfficialRepo interface expected by the OfficialService. This keeps
// services decoupled from the concrete repo package while reusing existing
// functions.
type officialRepoShim struct{}

func (officialRepoShim) Create(ctx context.Context, db *gorm.DB, o *domain.Official) error {
	return repo.CreateOfficial(ctx, db, o)
}

func (officialRepoShim) Get(ctx context.Context, db *gorm.DB, id uint) (*domain.Official, error) {
	return repo.GetOfficial(ctx, db, id)
}

func (officialRepoShim) Save(ctx context.Context, db *gorm.DB, o *domain.Official) error {
	return repo.SaveOfficial(ctx, db, o)
}

func (officialRepoShim) Delete(ctx context.Context, db *gorm.DB, id uint) error {
	return repo.DeleteOfficial(ctx, db, id)
}

func (officialRepoShim) CountByPosition(ctx context.Context, db *gorm.DB, position string, excludeID uint) (int64, error) {
	return repo.CountOfficialsByPosition(ctx, db, position, excludeID)
}

func (officialRepoShim) ListPage(ctx context.Context, db *gorm.DB, p repo.ListParams) ([]domain.Official, int64, error) {
	return repo.ListOfficialsPage(ctx, db, p)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting,
// CORS and security headers, health and metrics endpoints, and then mounts
// the versioned API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. CORS, gzip and security headers
//
// The token-bucket rate limiter is mounted on the API routes, not globally:
// the public auth endpoints get it keyed by client IP, the authenticated
// group gets it after RequireAuth so the bucket is keyed by actor email.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, store storage.Store, gateway sms.Gateway, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit; generous enough for photo uploads
	r.Use(limitBody(8 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Compress responses; metrics stays uncompressed for scrapers
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Stored photos are served directly when using the local backend
	if cfg.Storage.Backend == "local" {
		r.Static("/uploads", cfg.Storage.UploadDir)
	}

	// Dependency injection: services ← repo/db/store/gateway
	audit := services.NewAuditRecorder(db)
	officialSvc := services.NewOfficialService(db, officialRepoShim{}, store, audit)
	barangaySvc := services.NewBarangayService(db, audit)
	citizenSvc := services.NewCitizenService(db, store, audit)
	credSvc := services.NewCredentialService(db, audit)
	userSvc := services.NewUserService(db, audit, []byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	smsSvc := services.NewSmsService(db, gateway, audit)
	h := handlers.New(officialSvc, barangaySvc, citizenSvc, credSvc, userSvc, smsSvc, audit)

	api := groupWithPrefix(r, cfg.APIBasePath)

	// Token-bucket rate limiter. On the public session endpoints the actor is
	// not known yet, so those buckets key by IP; behind RequireAuth the key is
	// the actor email, so callers sharing a NAT do not share a bucket.
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByActorOrIP())

	// Public: session bootstrap only
	api.POST("/auth/register", rl.Handler(), h.Register)
	api.POST("/auth/login", rl.Handler(), h.Login)

	// Everything else requires a valid bearer token
	authed := api.Group("", middleware.RequireAuth(userSvc), rl.Handler())
	{
		authed.POST("/auth/logout", h.Logout)
		authed.GET("/users", h.ListUsers)

		// Federation officials
		authed.POST("/officials", h.CreateOfficial)
		authed.GET("/officials", h.ListOfficials)
		authed.GET("/officials/:id", h.GetOfficial)
		authed.PUT("/officials/:id", h.UpdateOfficial)
		authed.DELETE("/officials/:id", h.DeleteOfficial)

		// Barangays
		authed.POST("/barangays", h.CreateBarangay)
		authed.GET("/barangays", h.ListBarangays)
		authed.GET("/barangays/names", h.ListBarangayNames)
		authed.GET("/barangays/:id", h.GetBarangay)
		authed.PUT("/barangays/:id", h.UpdateBarangay)
		authed.DELETE("/barangays/:id", h.DeleteBarangay)

		// Senior citizens and the recycle bin
		authed.POST("/citizens", h.CreateCitizen)
		authed.GET("/citizens", h.ListCitizens)
		authed.GET("/citizens/recycle-bin", h.ListRecycleBin)
		authed.GET("/citizens/:id", h.GetCitizen)
		authed.PUT("/citizens/:id", h.UpdateCitizen)
		authed.DELETE("/citizens/:id", h.DeleteCitizen)
		authed.POST("/citizens/:id/restore", h.RestoreCitizen)
		authed.DELETE("/citizens/:id/purge", h.PurgeCitizen)

		// SMS gateway and broadcasts
		authed.GET("/sms/credentials", h.GetCredential)
		authed.PUT("/sms/credentials", h.SaveCredential)
		authed.POST("/sms/broadcast", h.Broadcast)
		authed.GET("/sms/logs", h.ListSmsLogs)

		// Audit trail
		authed.GET("/audit-logs", h.ListAuditLogs)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
