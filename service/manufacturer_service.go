package service

import (
	"context"

	"taxifleet/pkg/logger"
	"taxifleet/pkg/metrics"
	"taxifleet/pkg/models"
	"taxifleet/pkg/notify"
	"taxifleet/storage"
)

type ManufacturerService interface {
	List(ctx context.Context, search, page string) ([]*models.Manufacturer, Page, error)
	All(ctx context.Context) ([]*models.Manufacturer, error)
	Get(ctx context.Context, id int64) (*models.Manufacturer, error)
	Create(ctx context.Context, req *models.CreateManufacturer) (*models.Manufacturer, error)
	Update(ctx context.Context, req *models.UpdateManufacturer) (*models.Manufacturer, error)
	Delete(ctx context.Context, id int64) error
}

type manufacturerService struct {
	stg      storage.IManufacturerStorage
	pageSize int
	log      logger.ILogger
	metrics  *metrics.Metrics
	notifier notify.INotifier
}

func NewManufacturerService(stg storage.IStorage, pageSize int, log logger.ILogger, m *metrics.Metrics, n notify.INotifier) ManufacturerService {
	return &manufacturerService{
		stg:      stg.Manufacturer(),
		pageSize: pageSize,
		log:      log,
		metrics:  m,
		notifier: n,
	}
}

func (s *manufacturerService) List(ctx context.Context, search, page string) ([]*models.Manufacturer, Page, error) {
	return paginate(ctx, search, page, s.pageSize, func(ctx context.Context, req models.ListRequest) ([]*models.Manufacturer, int, error) {
		list, err := s.stg.GetList(ctx, req)
		if err != nil {
			return nil, 0, err
		}
		return list.Manufacturers, list.Count, nil
	})
}

func (s *manufacturerService) All(ctx context.Context) ([]*models.Manufacturer, error) {
	return s.stg.GetAll(ctx)
}

func (s *manufacturerService) Get(ctx context.Context, id int64) (*models.Manufacturer, error) {
	return s.stg.GetByID(ctx, id)
}

func (s *manufacturerService) Create(ctx context.Context, req *models.CreateManufacturer) (*models.Manufacturer, error) {
	m, err := s.stg.Create(ctx, req)
	if err != nil {
		s.log.Error("failed to create manufacturer", logger.Error(err))
		return nil, err
	}
	s.metrics.IncrementEntity("manufacturer", "created")
	s.log.Info("manufacturer created", logger.Int64("id", m.ID), logger.String("name", m.Name))
	return m, nil
}

func (s *manufacturerService) Update(ctx context.Context, req *models.UpdateManufacturer) (*models.Manufacturer, error) {
	m, err := s.stg.Update(ctx, req)
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementEntity("manufacturer", "updated")
	return m, nil
}

// Delete removes the manufacturer together with its cars.
func (s *manufacturerService) Delete(ctx context.Context, id int64) error {
	m, err := s.stg.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.stg.Delete(ctx, id); err != nil {
		s.log.Error("failed to delete manufacturer", logger.Int64("id", id), logger.Error(err))
		return err
	}
	s.metrics.IncrementEntity("manufacturer", "deleted")
	s.log.Info("manufacturer deleted", logger.Int64("id", id), logger.Int("cars", len(m.Cars)))
	if len(m.Cars) > 0 {
		s.notifier.Notify("Manufacturer %s deleted with %d car(s)", m, len(m.Cars))
	}
	return nil
}
