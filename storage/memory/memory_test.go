package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"taxifleet/pkg/models"
	"taxifleet/storage"
)

type StoreSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func (s *StoreSuite) SetupTest() {
	s.store = New()
	s.ctx = context.Background()
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) manufacturer(name, country string) *models.Manufacturer {
	m, err := s.store.Manufacturer().Create(s.ctx, &models.CreateManufacturer{Name: name, Country: country})
	s.Require().NoError(err)
	return m
}

func (s *StoreSuite) driver(username, license string) *models.Driver {
	d, err := s.store.Driver().Create(s.ctx, &models.CreateDriver{
		Username:      username,
		Password:      "hash",
		LicenseNumber: license,
	})
	s.Require().NoError(err)
	return d
}

func (s *StoreSuite) car(model string, manufacturerID int64, driverIDs ...int64) *models.Car {
	c, err := s.store.Car().Create(s.ctx, &models.CreateCar{Model: model, ManufacturerID: manufacturerID, DriverIDs: driverIDs})
	s.Require().NoError(err)
	return c
}

func (s *StoreSuite) TestManufacturerListFiltersAndOrders() {
	s.manufacturer("Honda", "Japan")
	s.manufacturer("Ford", "USA")
	s.manufacturer("ford-otosan", "Turkey")

	s.Run("no search returns all ordered by name", func() {
		list, err := s.store.Manufacturer().GetList(s.ctx, models.ListRequest{})
		s.Require().NoError(err)
		s.Equal(3, list.Count)
		s.Equal("Ford", list.Manufacturers[0].Name)
		s.Equal("Honda", list.Manufacturers[1].Name)
		s.Equal("ford-otosan", list.Manufacturers[2].Name)
	})

	s.Run("search is case-insensitive substring", func() {
		list, err := s.store.Manufacturer().GetList(s.ctx, models.ListRequest{Search: "FORD"})
		s.Require().NoError(err)
		s.Equal(2, list.Count)
		for _, m := range list.Manufacturers {
			s.NotEqual("Honda", m.Name)
		}
	})

	s.Run("non-matching search is empty", func() {
		list, err := s.store.Manufacturer().GetList(s.ctx, models.ListRequest{Search: "Tesla"})
		s.Require().NoError(err)
		s.Zero(list.Count)
		s.Empty(list.Manufacturers)
	})

	s.Run("limit and offset page the result", func() {
		list, err := s.store.Manufacturer().GetList(s.ctx, models.ListRequest{Limit: 2, Offset: 2})
		s.Require().NoError(err)
		s.Equal(3, list.Count)
		s.Require().Len(list.Manufacturers, 1)
		s.Equal("ford-otosan", list.Manufacturers[0].Name)
	})
}

func (s *StoreSuite) TestDriverUniqueness() {
	s.driver("alice", "ABC12345")

	s.Run("duplicate username", func() {
		_, err := s.store.Driver().Create(s.ctx, &models.CreateDriver{Username: "alice", LicenseNumber: "XYZ00001"})
		s.Require().ErrorIs(err, storage.ErrConflict)
		s.Equal(storage.ConstraintDriverUsername, storage.Constraint(err))
	})

	s.Run("duplicate license number", func() {
		_, err := s.store.Driver().Create(s.ctx, &models.CreateDriver{Username: "bob", LicenseNumber: "ABC12345"})
		s.Require().ErrorIs(err, storage.ErrConflict)
		s.Equal(storage.ConstraintDriverLicense, storage.Constraint(err))
	})

	s.Run("update may keep its own license", func() {
		d, err := s.store.Driver().GetByUsername(s.ctx, "alice")
		s.Require().NoError(err)
		_, err = s.store.Driver().Update(s.ctx, &models.UpdateDriver{ID: d.ID, LicenseNumber: "ABC12345", IsActive: true})
		s.Require().NoError(err)

		exists, err := s.store.Driver().LicenseNumberExists(s.ctx, "ABC12345", d.ID)
		s.Require().NoError(err)
		s.False(exists)
	})
}

func (s *StoreSuite) TestCarDriversRelation() {
	m := s.manufacturer("Audi", "Germany")
	alice := s.driver("alice", "ABC12345")
	bob := s.driver("bob", "BOB12345")

	c := s.car("A6", m.ID, bob.ID, alice.ID, alice.ID)
	s.Equal(2, c.DriverCount)
	s.Equal("alice", c.Drivers[0].Username)
	s.Equal("Audi", c.Manufacturer.Name)

	s.Run("driver detail lists cars", func() {
		d, err := s.store.Driver().GetByID(s.ctx, alice.ID)
		s.Require().NoError(err)
		s.Require().Len(d.Cars, 1)
		s.Equal("A6", d.Cars[0].Model)
		s.Equal("Audi", d.Cars[0].Manufacturer.Name)
	})

	s.Run("list carries counts", func() {
		cars, err := s.store.Car().GetList(s.ctx, models.ListRequest{})
		s.Require().NoError(err)
		s.Equal(2, cars.Cars[0].DriverCount)

		drivers, err := s.store.Driver().GetList(s.ctx, models.ListRequest{})
		s.Require().NoError(err)
		s.Equal(1, drivers.Drivers[0].CarCount)
	})

	s.Run("remove and re-add driver", func() {
		s.Require().NoError(s.store.Car().RemoveDriver(s.ctx, c.ID, bob.ID))
		got, err := s.store.Car().GetByID(s.ctx, c.ID)
		s.Require().NoError(err)
		s.False(got.HasDriver(bob.ID))

		s.Require().NoError(s.store.Car().AddDriver(s.ctx, c.ID, bob.ID))
		s.Require().NoError(s.store.Car().AddDriver(s.ctx, c.ID, bob.ID))
		got, err = s.store.Car().GetByID(s.ctx, c.ID)
		s.Require().NoError(err)
		s.Equal(2, got.DriverCount)
	})

	s.Run("unknown driver is rejected", func() {
		_, err := s.store.Car().Create(s.ctx, &models.CreateCar{Model: "Q7", ManufacturerID: m.ID, DriverIDs: []int64{999}})
		s.Require().ErrorIs(err, storage.ErrProtected)
	})

	s.Run("unknown manufacturer is rejected", func() {
		_, err := s.store.Car().Create(s.ctx, &models.CreateCar{Model: "Q7", ManufacturerID: 999})
		s.Require().ErrorIs(err, storage.ErrProtected)
		s.Equal(storage.ConstraintCarManufacturer, storage.Constraint(err))
	})
}

func (s *StoreSuite) TestManufacturerDeleteCascades() {
	m := s.manufacturer("BMW", "Germany")
	d := s.driver("alice", "ABC12345")
	c := s.car("X5", m.ID, d.ID)

	s.Require().NoError(s.store.Manufacturer().Delete(s.ctx, m.ID))

	_, err := s.store.Car().GetByID(s.ctx, c.ID)
	s.Require().ErrorIs(err, storage.ErrNotFound)

	got, err := s.store.Driver().GetByID(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Empty(got.Cars)

	s.Require().ErrorIs(s.store.Manufacturer().Delete(s.ctx, m.ID), storage.ErrNotFound)
}

func (s *StoreSuite) TestNotFound() {
	_, err := s.store.Manufacturer().GetByID(s.ctx, 42)
	s.ErrorIs(err, storage.ErrNotFound)

	_, err = s.store.Driver().GetByID(s.ctx, 42)
	s.ErrorIs(err, storage.ErrNotFound)

	_, err = s.store.Car().Update(s.ctx, &models.UpdateCar{ID: 42, Model: "X"})
	s.ErrorIs(err, storage.ErrNotFound)

	_, err = s.store.Manufacturer().Update(s.ctx, &models.UpdateManufacturer{ID: 42, Name: "X"})
	s.ErrorIs(err, storage.ErrNotFound)
}
