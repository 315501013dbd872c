package main

import (
	"context"
	"time"

	"travelshare/config"
	"travelshare/routes"
	"travelshare/store"
	"travelshare/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase()
	defer db.Close()

	s := store.New(db)
	r := routes.SetupRouter(s)

	// Background maintenance: notification expiry + follow graph repair
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.RunMaintenance(ctx, time.Duration(cfg.SweepIntervalHours)*time.Hour)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
