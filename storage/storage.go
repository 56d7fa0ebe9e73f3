package storage

import (
	"context"

	"taxifleet/pkg/models"
)

type IStorage interface {
	Manufacturer() IManufacturerStorage
	Driver() IDriverStorage
	Car() ICarStorage
	Ping(ctx context.Context) error
	Close()
}

type IManufacturerStorage interface {
	Create(ctx context.Context, req *models.CreateManufacturer) (*models.Manufacturer, error)
	Update(ctx context.Context, req *models.UpdateManufacturer) (*models.Manufacturer, error)
	GetByID(ctx context.Context, id int64) (*models.Manufacturer, error)
	GetList(ctx context.Context, req models.ListRequest) (*models.ManufacturerList, error)
	GetAll(ctx context.Context) ([]*models.Manufacturer, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

type IDriverStorage interface {
	Create(ctx context.Context, req *models.CreateDriver) (*models.Driver, error)
	Update(ctx context.Context, req *models.UpdateDriver) (*models.Driver, error)
	GetByID(ctx context.Context, id int64) (*models.Driver, error)
	GetByUsername(ctx context.Context, username string) (*models.Driver, error)
	GetList(ctx context.Context, req models.ListRequest) (*models.DriverList, error)
	GetAll(ctx context.Context) ([]*models.Driver, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	LicenseNumberExists(ctx context.Context, licenseNumber string, excludeID int64) (bool, error)
	SetLastLogin(ctx context.Context, id int64) error
}

type ICarStorage interface {
	Create(ctx context.Context, req *models.CreateCar) (*models.Car, error)
	Update(ctx context.Context, req *models.UpdateCar) (*models.Car, error)
	GetByID(ctx context.Context, id int64) (*models.Car, error)
	GetList(ctx context.Context, req models.ListRequest) (*models.CarList, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	AddDriver(ctx context.Context, carID, driverID int64) error
	RemoveDriver(ctx context.Context, carID, driverID int64) error
}

// ISessionStorage keeps login sessions server-side so they can be revoked.
type ISessionStorage interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Touch(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}
