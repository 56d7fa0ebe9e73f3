package service

import (
	"taxifleet/config"
	"taxifleet/pkg/logger"
	"taxifleet/pkg/metrics"
	"taxifleet/pkg/notify"
	"taxifleet/pkg/session"
	"taxifleet/storage"
)

type IServiceManager interface {
	Manufacturer() ManufacturerService
	Driver() DriverService
	Car() CarService
	Auth() AuthService
	Fleet() FleetService
}

type service struct {
	manufacturerService ManufacturerService
	driverService       DriverService
	carService          CarService
	authService         AuthService
	fleetService        FleetService
}

func New(cfg config.Config, stg storage.IStorage, sessions storage.ISessionStorage, log logger.ILogger, m *metrics.Metrics, n notify.INotifier) IServiceManager {
	tokens := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)

	return &service{
		manufacturerService: NewManufacturerService(stg, cfg.PageSize, log, m, n),
		driverService:       NewDriverService(stg, cfg.PageSize, log, m, n),
		carService:          NewCarService(stg, cfg.PageSize, log, m, n),
		authService:         NewAuthService(stg, sessions, tokens, log, m),
		fleetService:        NewFleetService(stg, log),
	}
}

func (s *service) Manufacturer() ManufacturerService {
	return s.manufacturerService
}

func (s *service) Driver() DriverService {
	return s.driverService
}

func (s *service) Car() CarService {
	return s.carService
}

func (s *service) Auth() AuthService {
	return s.authService
}

func (s *service) Fleet() FleetService {
	return s.fleetService
}
