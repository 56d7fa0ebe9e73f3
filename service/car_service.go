package service

import (
	"context"
	"errors"

	"taxifleet/pkg/logger"
	"taxifleet/pkg/metrics"
	"taxifleet/pkg/models"
	"taxifleet/pkg/notify"
	"taxifleet/storage"
)

// CarService also resolves the manufacturer and driver choices of car forms.
type CarService interface {
	List(ctx context.Context, search, page string) ([]*models.Car, Page, error)
	Get(ctx context.Context, id int64) (*models.Car, error)
	Create(ctx context.Context, req *models.CreateCar) (*models.Car, error)
	Update(ctx context.Context, req *models.UpdateCar) (*models.Car, error)
	Delete(ctx context.Context, id int64) error
	ToggleDriver(ctx context.Context, carID, driverID int64) (bool, error)
	ManufacturerExists(ctx context.Context, id int64) (bool, error)
	DriverExists(ctx context.Context, id int64) (bool, error)
}

type carService struct {
	stg           storage.ICarStorage
	manufacturers storage.IManufacturerStorage
	drivers       storage.IDriverStorage
	pageSize      int
	log           logger.ILogger
	metrics       *metrics.Metrics
	notifier      notify.INotifier
}

func NewCarService(stg storage.IStorage, pageSize int, log logger.ILogger, m *metrics.Metrics, n notify.INotifier) CarService {
	return &carService{
		stg:           stg.Car(),
		manufacturers: stg.Manufacturer(),
		drivers:       stg.Driver(),
		pageSize:      pageSize,
		log:           log,
		metrics:       m,
		notifier:      n,
	}
}

func (s *carService) List(ctx context.Context, search, page string) ([]*models.Car, Page, error) {
	return paginate(ctx, search, page, s.pageSize, func(ctx context.Context, req models.ListRequest) ([]*models.Car, int, error) {
		list, err := s.stg.GetList(ctx, req)
		if err != nil {
			return nil, 0, err
		}
		return list.Cars, list.Count, nil
	})
}

func (s *carService) Get(ctx context.Context, id int64) (*models.Car, error) {
	return s.stg.GetByID(ctx, id)
}

func (s *carService) Create(ctx context.Context, req *models.CreateCar) (*models.Car, error) {
	c, err := s.stg.Create(ctx, req)
	if err != nil {
		s.log.Error("failed to create car", logger.String("model", req.Model), logger.Error(err))
		return nil, err
	}
	s.metrics.IncrementEntity("car", "created")
	s.log.Info("car created", logger.Int64("id", c.ID), logger.String("model", c.Model))
	return c, nil
}

func (s *carService) Update(ctx context.Context, req *models.UpdateCar) (*models.Car, error) {
	c, err := s.stg.Update(ctx, req)
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementEntity("car", "updated")
	return c, nil
}

func (s *carService) Delete(ctx context.Context, id int64) error {
	c, err := s.stg.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.stg.Delete(ctx, id); err != nil {
		return err
	}
	s.metrics.IncrementEntity("car", "deleted")
	s.log.Info("car deleted", logger.Int64("id", id))
	s.notifier.Notify("Car %s (%s) deleted", c.Model, c.Manufacturer.Name)
	return nil
}

// ToggleDriver assigns the driver to the car, or unassigns an assigned one.
// It reports whether the driver is assigned afterwards.
func (s *carService) ToggleDriver(ctx context.Context, carID, driverID int64) (bool, error) {
	c, err := s.stg.GetByID(ctx, carID)
	if err != nil {
		return false, err
	}
	if c.HasDriver(driverID) {
		if err := s.stg.RemoveDriver(ctx, carID, driverID); err != nil {
			return false, err
		}
		s.log.Info("driver unassigned", logger.Int64("car_id", carID), logger.Int64("driver_id", driverID))
		return false, nil
	}
	if err := s.stg.AddDriver(ctx, carID, driverID); err != nil {
		return false, err
	}
	s.log.Info("driver assigned", logger.Int64("car_id", carID), logger.Int64("driver_id", driverID))
	return true, nil
}

func (s *carService) ManufacturerExists(ctx context.Context, id int64) (bool, error) {
	_, err := s.manufacturers.GetByID(ctx, id)
	return found(err)
}

func (s *carService) DriverExists(ctx context.Context, id int64) (bool, error) {
	_, err := s.drivers.GetByID(ctx, id)
	return found(err)
}

func found(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, storage.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
