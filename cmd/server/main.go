package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/turfease/turf-booking/internal/config"
	"github.com/turfease/turf-booking/internal/database"
	"github.com/turfease/turf-booking/internal/handler"
	"github.com/turfease/turf-booking/internal/middleware"
	"github.com/turfease/turf-booking/internal/queue"
	"github.com/turfease/turf-booking/internal/repository"
	"github.com/turfease/turf-booking/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: rate limiting and caching turn into no-ops when
	// the client is nil.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and caching disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	turfs := repository.NewTurfRepo(db)
	bookings := repository.NewBookingRepo(db)
	reviews := repository.NewReviewRepo(db)
	notifications := repository.NewNotificationRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	publicH := handler.NewPublicHandler(turfs, bookings, reviews)
	customerH := handler.NewCustomerHandler(turfs, bookings, notifications)
	ownerH := handler.NewOwnerHandler(turfs, bookings, notifications)
	reviewH := handler.NewReviewHandler(reviews, bookings, turfs)
	notifH := handler.NewNotificationHandler(notifications)
	adminH := handler.NewAdminHandler(users, turfs, bookings, notifications)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))
	cache := middleware.CacheGET(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, cache)
	router.RegisterCustomer(e, customerH, reviewH, notifH, cfg.JWTSecret)
	router.RegisterOwner(e, ownerH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	// Consume booking.confirmed in the background; the loop reconnects on
	// broker failures and never takes the API down.
	go func() {
		if err := queue.StartBookingConsumer(notifications); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
