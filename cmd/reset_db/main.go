package main

import (
	"context"
	"os"

	"taxifleet/config"
	"taxifleet/pkg/logger"
	"taxifleet/storage/postgres"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	pg, err := postgres.New(context.Background(), cfg, log)
	if err != nil {
		log.Error("failed to connect to postgres", logger.Error(err))
		os.Exit(1)
	}
	defer pg.Close()

	// Drivers go too, so run createsuperuser afterwards.
	_, err = pg.GetPool().Exec(context.Background(),
		"TRUNCATE TABLE car_drivers, cars, drivers, manufacturers RESTART IDENTITY CASCADE")
	if err != nil {
		log.Error("failed to truncate tables", logger.Error(err))
		os.Exit(1)
	}
	log.Info("truncated car_drivers, cars, drivers and manufacturers")
}
