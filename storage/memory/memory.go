// Package memory is an in-process implementation of storage.IStorage. It
// enforces the same unique and foreign key rules as the Postgres schema and is
// used by tests and by STORAGE=memory runs.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"taxifleet/pkg/models"
	"taxifleet/storage"
)

type carDriver struct {
	carID    int64
	driverID int64
}

type Store struct {
	mu sync.RWMutex

	manufacturers map[int64]models.Manufacturer
	drivers       map[int64]models.Driver
	cars          map[int64]models.Car
	carDrivers    map[carDriver]struct{}

	nextManufacturerID int64
	nextDriverID       int64
	nextCarID          int64

	now func() time.Time
}

func New() *Store {
	return &Store{
		manufacturers: make(map[int64]models.Manufacturer),
		drivers:       make(map[int64]models.Driver),
		cars:          make(map[int64]models.Car),
		carDrivers:    make(map[carDriver]struct{}),
		now:           time.Now,
	}
}

func (s *Store) Manufacturer() storage.IManufacturerStorage { return &manufacturerRepo{s} }
func (s *Store) Driver() storage.IDriverStorage             { return &driverRepo{s} }
func (s *Store) Car() storage.ICarStorage                   { return &carRepo{s} }

func (s *Store) Ping(context.Context) error { return nil }
func (s *Store) Close()                     {}

func containsFold(value, search string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(search))
}

func paginate(n int, req models.ListRequest) (int, int) {
	start := min(max(req.Offset, 0), n)
	end := n
	if req.Limit > 0 {
		end = min(start+req.Limit, n)
	}
	return start, end
}

// driversOf and carsOf expect s.mu to be held.
func (s *Store) driversOf(carID int64) []*models.Driver {
	var out []*models.Driver
	for pair := range s.carDrivers {
		if pair.carID == carID {
			d := s.drivers[pair.driverID]
			out = append(out, &d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Username != out[j].Username {
			return out[i].Username < out[j].Username
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) carsOf(driverID int64) []*models.Car {
	var out []*models.Car
	for pair := range s.carDrivers {
		if pair.driverID == driverID {
			c := s.withManufacturer(s.cars[pair.carID])
			out = append(out, &c)
		}
	}
	sortCars(out)
	return out
}

func (s *Store) withManufacturer(c models.Car) models.Car {
	c.Manufacturer = s.manufacturers[c.ManufacturerID]
	c.Manufacturer.Cars = nil
	return c
}

func (s *Store) driverCount(carID int64) int {
	n := 0
	for pair := range s.carDrivers {
		if pair.carID == carID {
			n++
		}
	}
	return n
}

func (s *Store) carCount(driverID int64) int {
	n := 0
	for pair := range s.carDrivers {
		if pair.driverID == driverID {
			n++
		}
	}
	return n
}

func sortCars(cars []*models.Car) {
	sort.Slice(cars, func(i, j int) bool {
		if cars[i].Model != cars[j].Model {
			return cars[i].Model < cars[j].Model
		}
		return cars[i].ID < cars[j].ID
	})
}

func (s *Store) deleteCarLocked(id int64) {
	delete(s.cars, id)
	for pair := range s.carDrivers {
		if pair.carID == id {
			delete(s.carDrivers, pair)
		}
	}
}

func (s *Store) setDriversLocked(carID int64, driverIDs []int64) error {
	for _, id := range driverIDs {
		if _, ok := s.drivers[id]; !ok {
			return &storage.ConstraintError{Kind: storage.ErrProtected, Constraint: storage.ConstraintCarDriversDriver}
		}
	}
	for pair := range s.carDrivers {
		if pair.carID == carID {
			delete(s.carDrivers, pair)
		}
	}
	for _, id := range driverIDs {
		s.carDrivers[carDriver{carID: carID, driverID: id}] = struct{}{}
	}
	return nil
}
