package main

import (
	"context"
	"fmt"

	"networth-backend/internal/app"
	"networth-backend/internal/config"
	"networth-backend/internal/portfolio"
	"networth-backend/internal/scheduler"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config load: " + err.Error())
	}

	fiberApp, db, rdb, portfolioService, err := app.CreateApp(cfg)
	if err != nil {
		panic("app create: " + err.Error())
	}

	// Verify connections before printing startup logs
	sqlDB, err := db.DB()
	if err != nil {
		panic("database: get DB: " + err.Error())
	}
	if err := sqlDB.Ping(); err != nil {
		panic("database connection failed: " + err.Error())
	}
	fmt.Println("Database connected")
	if rdb != nil {
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			panic("Redis connection failed: " + err.Error())
		}
		fmt.Println("Redis connected (quote cache)")
	}

	// Background jobs: periodic price refresh + snapshot, history pruning
	sched := scheduler.New(log.Logger)
	if cfg.RefreshSchedule != "" {
		if err := sched.AddJob(cfg.RefreshSchedule, &portfolio.RefreshJob{Service: portfolioService}); err != nil {
			panic("refresh job: " + err.Error())
		}
	}
	if cfg.SnapshotRetention > 0 {
		if err := sched.AddJob("@daily", &portfolio.PruneJob{Service: portfolioService, Keep: cfg.SnapshotRetention}); err != nil {
			panic("prune job: " + err.Error())
		}
	}
	sched.Start()
	defer sched.Stop()

	fmt.Printf("Server running at http://localhost:%s\n", cfg.Port)
	fmt.Printf("Health check: http://localhost:%s/health/json\n", cfg.Port)
	fmt.Println("---")

	if err := fiberApp.Listen(":" + cfg.Port); err != nil {
		panic(err)
	}
}
