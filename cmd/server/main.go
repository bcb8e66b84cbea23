package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/medstay/hospital-bed-reservation/internal/config"
	"github.com/medstay/hospital-bed-reservation/internal/database"
	"github.com/medstay/hospital-bed-reservation/internal/handler"
	"github.com/medstay/hospital-bed-reservation/internal/middleware"
	"github.com/medstay/hospital-bed-reservation/internal/queue"
	"github.com/medstay/hospital-bed-reservation/internal/repository"
	"github.com/medstay/hospital-bed-reservation/internal/router"
	"github.com/medstay/hospital-bed-reservation/internal/snapshot"
	"github.com/medstay/hospital-bed-reservation/internal/store"
)

func main() {
	// Load a local .env if present; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := config.Load()

	// MySQL holds accounts and refresh tokens only.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	defer db.Close()

	// Redis backs snapshot persistence, the rate limiter and the response
	// cache.  A nil client degrades all three gracefully.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable: snapshots, rate limiting and caching disabled")
	}

	// The inventory store is the single source of truth for hospitals,
	// wards, beds and bookings.  Restore the last snapshot when one
	// exists, otherwise start from the seed catalogue.
	inv := store.New()
	var snaps *snapshot.Store
	if rdb != nil {
		snaps = snapshot.NewStore(snapshot.NewRedisKV(rdb), cfg.SnapshotPrefix)
	}
	if snaps != nil {
		if snap, ok, err := snaps.Load(context.Background()); err != nil {
			log.Fatalf("snapshot load: %v", err)
		} else if ok {
			if err := inv.Restore(snap); err != nil {
				log.Fatalf("snapshot restore: %v", err)
			}
			log.Printf("inventory restored from snapshot")
		} else {
			inv.Seed()
			log.Printf("inventory seeded")
		}
		// From here on every mutation overwrites the persisted snapshot.
		inv.SetSaver(snaps)
		if err := snaps.Save(inv.Snapshot()); err != nil {
			log.Printf("initial snapshot save failed: %v", err)
		}
	} else {
		inv.Seed()
		log.Printf("inventory seeded (memory only)")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	publicHandler := handler.NewPublicHandler(inv)
	patientHandler := handler.NewPatientHandler(inv)
	adminHandler := handler.NewAdminHandler(inv)

	e := echo.New()

	// The rate limiter covers the whole API; the response cache fronts
	// only the public browse group.
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterPatient(e, patientHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)

	// Background consumer turns bed.reserved events into the booking log.
	go func() {
		if err := queue.StartBedReservedConsumer(); err != nil {
			log.Printf("bed consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
