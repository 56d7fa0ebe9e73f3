package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"taxifleet/pkg/logger"
	"taxifleet/pkg/models"
	"taxifleet/storage"
)

type FleetService interface {
	Stats(ctx context.Context) (*models.Stats, error)
	Ping(ctx context.Context) error
}

type fleetService struct {
	stg storage.IStorage
	log logger.ILogger
}

func NewFleetService(stg storage.IStorage, log logger.ILogger) FleetService {
	return &fleetService{stg: stg, log: log}
}

// Stats counts the three tables concurrently.
func (s *fleetService) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.Drivers, err = s.stg.Driver().Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Cars, err = s.stg.Car().Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Manufacturers, err = s.stg.Manufacturer().Count(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error("failed to count fleet", logger.Error(err))
		return nil, err
	}
	return &stats, nil
}

func (s *fleetService) Ping(ctx context.Context) error {
	return s.stg.Ping(ctx)
}
