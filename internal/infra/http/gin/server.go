package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"stayhub/internal/infra/config"
	"stayhub/internal/infra/obs"
)

type Handlers struct {
	Auth           AuthHTTP
	Listing        ListingHTTP
	Booking        BookingHTTP
	Review         ReviewHTTP
	AuthMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(corsConfig(cfg)))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Auth != nil {
		api.POST("/users/signup", h.Auth.Signup)
		api.POST("/users/signin", h.Auth.Signin)
		api.POST("/users/signout", h.Auth.Signout)
		api.GET("/users/my-profile", h.Auth.Me)
		api.PATCH("/users/my-profile", h.Auth.UpdateMe)
	}
	if h.Listing != nil {
		api.GET("/listings", h.Listing.Search)
		api.POST("/listings", h.Listing.Create)
		api.GET("/listings/property-types", h.Listing.PropertyTypes)
		api.GET("/listings/search-stats", h.Listing.SearchStats)
		api.GET("/listings/my-created", h.Listing.Mine)
		api.GET("/listings/my-view-history", h.Listing.ViewHistory)
		api.GET("/listings/my-search-history", h.Listing.SearchHistory)
		api.GET("/listings/:id", h.Listing.Get)
		api.PUT("/listings/:id", h.Listing.Update)
		api.DELETE("/listings/:id", h.Listing.Deactivate)
		api.GET("/listings/:id/reserved-periods", h.Listing.ReservedPeriods)
		api.GET("/listings/:id/reserved-dates", h.Listing.ReservedDays)
	}
	if h.Booking != nil {
		api.GET("/bookings", h.Booking.Mine)
		api.POST("/bookings", h.Booking.Create)
		api.GET("/bookings/booking-statuses", h.Booking.Statuses)
		api.GET("/bookings/my-hosted", h.Booking.Host)
		api.GET("/bookings/:id", h.Booking.Get)
		api.POST("/bookings/:id/confirm", h.Booking.Confirm)
		api.POST("/bookings/:id/reject", h.Booking.Reject)
		api.POST("/bookings/:id/cancel", h.Booking.Cancel)
	}
	if h.Review != nil {
		api.GET("/listings/:id/reviews", h.Review.ListForListing)
		api.GET("/reviews", h.Review.Mine)
		api.POST("/reviews", h.Review.Create)
		api.DELETE("/reviews/:id", h.Review.Delete)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func corsConfig(cfg config.Config) cors.Config {
	origins := cfg.CORSOrigins
	allowCredentials := true
	if len(origins) == 0 {
		origins = []string{"*"}
		allowCredentials = false
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: allowCredentials,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Request-ID"},
		MaxAge:           12 * time.Hour,
	}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
