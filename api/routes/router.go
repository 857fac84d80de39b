// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"ticketly/internal/auth"
	"ticketly/internal/bookings"
	"ticketly/internal/cancellation"
	"ticketly/internal/checkin"
	"ticketly/internal/credentials"
	"ticketly/internal/events"
	"ticketly/internal/notifications"
	"ticketly/internal/seats"
	"ticketly/internal/shared/config"
	"ticketly/internal/shared/database"
	"ticketly/internal/tickets"
	"ticketly/internal/users"
	"ticketly/pkg/cache"
	"ticketly/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config      *config.Config
	db          *database.DB
	rateLimiter *ratelimit.RateLimiter
	notifier    *notifications.LifecycleNotifier

	// shared across feature groups
	userRepo   users.Repository
	eventRepo  events.Repository
	ticketRepo tickets.Repository
	seatLedger seats.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, rateLimiter *ratelimit.RateLimiter, notifier *notifications.LifecycleNotifier) *Router {
	return &Router{
		config:      cfg,
		db:          db,
		rateLimiter: rateLimiter,
		notifier:    notifier,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Shared repositories; the seat ledger is the single path for every
	// seat-counter mutation.
	pg := r.db.GetPostgreSQL()
	r.userRepo = users.NewRepository(pg)
	r.eventRepo = events.NewRepository(pg)
	r.ticketRepo = tickets.NewRepository(pg)

	var cacheService cache.Service
	if r.db.Redis != nil {
		cacheService = cache.NewService(r.db.GetRedis())
	}
	r.seatLedger = seats.NewService(seats.NewRepository(pg), cacheService, r.config.Redis.SeatStatsTTL)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupEventRoutes(api)
		r.setupSeatRoutes(api)
		r.setupBookingRoutes(api)
		r.setupCheckInRoutes(api)
		r.setupCancellationRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "ticketly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "ticketly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authService := auth.NewService(r.userRepo, r.config)
	authController := auth.NewController(authService)

	auth.SetupAuthRoutes(rg, authController, r.limiterFor(ratelimit.RateLimitTypeAuth))
}

// setupEventRoutes configures event management routes
func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventService := events.NewService(r.eventRepo)
	eventController := events.NewController(eventService)

	events.SetupEventRoutes(rg, eventController)
}

// setupSeatRoutes configures seat availability routes
func (r *Router) setupSeatRoutes(rg *gin.RouterGroup) {
	seatController := seats.NewController(r.seatLedger)

	seats.SetupSeatRoutes(rg, seatController)
}

// setupBookingRoutes configures ticket booking routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	renderer := credentials.NewRenderer(r.config.Credential.QROutputDir, r.config.Credential.QRSize)
	pdfGenerator := credentials.NewETicketGenerator(renderer)

	bookingService := bookings.NewService(
		r.seatLedger,
		r.ticketRepo,
		r.eventRepo,
		r.userRepo,
		r.notifier,
		renderer,
		pdfGenerator,
		r.config.Booking.Currency,
	)
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController, r.limiterFor(ratelimit.RateLimitTypeBooking))
}

// setupCheckInRoutes configures gate check-in routes
func (r *Router) setupCheckInRoutes(rg *gin.RouterGroup) {
	checkinService := checkin.NewService(r.ticketRepo, r.notifier)
	checkinController := checkin.NewController(checkinService)

	checkin.SetupCheckInRoutes(rg, checkinController, r.limiterFor(ratelimit.RateLimitTypeCheckIn))
}

// setupCancellationRoutes configures ticket cancellation routes
func (r *Router) setupCancellationRoutes(rg *gin.RouterGroup) {
	cancellationService := cancellation.NewService(
		r.ticketRepo,
		r.seatLedger,
		r.notifier,
		r.config.Booking.CancellationEmbargo,
	)
	cancellationController := cancellation.NewController(cancellationService)

	cancellation.SetupCancellationRoutes(rg, cancellationController)
}

func (r *Router) limiterFor(limitType ratelimit.RateLimitType) gin.HandlerFunc {
	if r.rateLimiter == nil {
		return nil
	}
	return ratelimit.ForType(r.rateLimiter, limitType)
}
