package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/hirostaff/reservations/internal/cache"
	"github.com/hirostaff/reservations/internal/config"
	"github.com/hirostaff/reservations/internal/database"
	"github.com/hirostaff/reservations/internal/handler"
	"github.com/hirostaff/reservations/internal/queue"
	"github.com/hirostaff/reservations/internal/repository"
	"github.com/hirostaff/reservations/internal/router"
	queue_publisher "github.com/hirostaff/reservations/internal/service"
	"github.com/hirostaff/reservations/internal/timeslot"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; dates cache and login throttle disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	reservations := repository.NewReservationRepo(db)

	slots := timeslot.Generate(cfg.SlotStartHour, cfg.SlotStartMin,
		cfg.SlotEndHour, cfg.SlotEndMin, cfg.SlotStepMin)
	if len(slots) == 0 {
		log.Fatalf("empty slot window: start=%02d:%02d end=%02d:%02d step=%d",
			cfg.SlotStartHour, cfg.SlotStartMin, cfg.SlotEndHour, cfg.SlotEndMin, cfg.SlotStepMin)
	}

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	resHandler := handler.NewReservationHandler(reservations, slots,
		cache.NewDates(rdb, 30*time.Second))
	resHandler.PastDatesUnselectable = cfg.PastDatesUnselectable
	resHandler.Publish = queue_publisher.PublishReservationChanged

	// Audit consumer runs for the life of the process, reconnecting on
	// broker failures.
	go func() {
		if err := queue.StartAuditConsumer(); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret, rdb, cfg.LoginMaxAttempts, cfg.LoginWindow)
	router.RegisterReservations(e, resHandler, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, %d slots %s-%s)",
		addr, cfg.Env, len(slots), slots[0], slots[len(slots)-1])
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
