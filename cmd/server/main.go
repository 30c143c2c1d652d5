package main // Entry point package

import (
	"log"     // Logging library
	"strings" // Splitting the CORS origin list

	"github.com/joho/godotenv"    // Load .env files in development
	"github.com/labstack/echo/v4" // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/livingroombaithaks/baithak-booking/internal/config" // Internal config loader
	"github.com/livingroombaithaks/baithak-booking/internal/database"
	"github.com/livingroombaithaks/baithak-booking/internal/handler"
	"github.com/livingroombaithaks/baithak-booking/internal/queue"
	"github.com/livingroombaithaks/baithak-booking/internal/repository"
	"github.com/livingroombaithaks/baithak-booking/internal/router" // Internal router setup
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: without it the cache and rate limiter
	// simply stay off.
	rdb := config.NewRedisClient()

	eventRepo := repository.NewEventRepo(db)
	bookingRepo := repository.NewBookingRepo(db)

	eventHandler := handler.NewEventHandler(eventRepo)
	availabilityHandler := handler.NewAvailabilityHandler(eventRepo, bookingRepo)
	bookingHandler := handler.NewBookingHandler(eventRepo, bookingRepo)
	adminHandler := handler.NewAdminHandler(cfg.AdminPasswordHash, cfg.JWTSecret, cfg.AdminTokenTTLMin)

	e := echo.New() // Create Echo instance
	e.HideBanner = true

	// The booking page is served as a static site from a different
	// origin, so the API answers cross-origin requests.
	corsConfig := echomw.CORSConfig{AllowOrigins: []string{"*"}}
	if cfg.CORSOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.CORSOrigins, ",")
	}
	e.Use(echomw.CORSWithConfig(corsConfig))

	router.RegisterRoutes(e) // Register application routes
	router.RegisterPublic(e, eventHandler, availabilityHandler, rdb)
	router.RegisterBooking(e, bookingHandler, rdb)
	router.RegisterAdmin(e, adminHandler, bookingHandler, cfg.JWTSecret)

	// The notification consumer runs for the life of the process and
	// reconnects on its own; a missing broker must not block the API.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
