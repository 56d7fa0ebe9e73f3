package service

import (
	"context"

	"taxifleet/pkg/logger"
	"taxifleet/pkg/metrics"
	"taxifleet/pkg/models"
	"taxifleet/pkg/notify"
	"taxifleet/storage"
)

// DriverService also answers the uniqueness lookups of the driver forms.
type DriverService interface {
	List(ctx context.Context, search, page string) ([]*models.Driver, Page, error)
	All(ctx context.Context) ([]*models.Driver, error)
	Get(ctx context.Context, id int64) (*models.Driver, error)
	Register(ctx context.Context, req *models.CreateDriver) (*models.Driver, error)
	Update(ctx context.Context, req *models.UpdateDriver) (*models.Driver, error)
	Delete(ctx context.Context, id int64) error
	UsernameExists(ctx context.Context, username string) (bool, error)
	LicenseNumberExists(ctx context.Context, licenseNumber string, excludeID int64) (bool, error)
}

type driverService struct {
	stg      storage.IDriverStorage
	pageSize int
	log      logger.ILogger
	metrics  *metrics.Metrics
	notifier notify.INotifier
}

func NewDriverService(stg storage.IStorage, pageSize int, log logger.ILogger, m *metrics.Metrics, n notify.INotifier) DriverService {
	return &driverService{
		stg:      stg.Driver(),
		pageSize: pageSize,
		log:      log,
		metrics:  m,
		notifier: n,
	}
}

func (s *driverService) List(ctx context.Context, search, page string) ([]*models.Driver, Page, error) {
	return paginate(ctx, search, page, s.pageSize, func(ctx context.Context, req models.ListRequest) ([]*models.Driver, int, error) {
		list, err := s.stg.GetList(ctx, req)
		if err != nil {
			return nil, 0, err
		}
		return list.Drivers, list.Count, nil
	})
}

func (s *driverService) All(ctx context.Context) ([]*models.Driver, error) {
	return s.stg.GetAll(ctx)
}

func (s *driverService) Get(ctx context.Context, id int64) (*models.Driver, error) {
	return s.stg.GetByID(ctx, id)
}

// Register stores a driver whose password is already hashed.
func (s *driverService) Register(ctx context.Context, req *models.CreateDriver) (*models.Driver, error) {
	d, err := s.stg.Create(ctx, req)
	if err != nil {
		s.log.Warning("failed to register driver", logger.String("username", req.Username), logger.Error(err))
		return nil, err
	}
	s.metrics.IncrementEntity("driver", "created")
	s.log.Info("driver registered", logger.Int64("id", d.ID), logger.String("username", d.Username))
	s.notifier.Notify("New driver registered: %s, license %s", d, d.LicenseNumber)
	return d, nil
}

func (s *driverService) Update(ctx context.Context, req *models.UpdateDriver) (*models.Driver, error) {
	d, err := s.stg.Update(ctx, req)
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementEntity("driver", "updated")
	return d, nil
}

func (s *driverService) Delete(ctx context.Context, id int64) error {
	if err := s.stg.Delete(ctx, id); err != nil {
		return err
	}
	s.metrics.IncrementEntity("driver", "deleted")
	s.log.Info("driver deleted", logger.Int64("id", id))
	return nil
}

func (s *driverService) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.stg.UsernameExists(ctx, username)
}

func (s *driverService) LicenseNumberExists(ctx context.Context, licenseNumber string, excludeID int64) (bool, error) {
	return s.stg.LicenseNumberExists(ctx, licenseNumber, excludeID)
}
