//go:build integration

package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"taxifleet/pkg/logger"
	"taxifleet/pkg/models"
	"taxifleet/storage"
)

type PostgresSuite struct {
	suite.Suite
	ctx       context.Context
	container *tcpostgres.PostgresContainer
	store     *Store
}

func TestPostgresSuite(t *testing.T) {
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := tcpostgres.Run(s.ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("taxifleet"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	url, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)
	s.Require().NoError(Migrate(url, "../../migrations/postgres", logger.NewNop()))

	pool, err := pgxpool.New(s.ctx, url)
	s.Require().NoError(err)
	s.store = NewFromPool(pool, logger.NewNop())
}

func (s *PostgresSuite) TearDownSuite() {
	if s.store != nil {
		s.store.Close()
	}
	s.NoError(testcontainers.TerminateContainer(s.container))
}

func (s *PostgresSuite) SetupTest() {
	_, err := s.store.GetPool().Exec(s.ctx,
		"TRUNCATE TABLE car_drivers, cars, drivers, manufacturers RESTART IDENTITY CASCADE")
	s.Require().NoError(err)
}

func (s *PostgresSuite) driver(username, license string) *models.Driver {
	d, err := s.store.Driver().Create(s.ctx, &models.CreateDriver{Username: username, Password: "hash", LicenseNumber: license})
	s.Require().NoError(err)
	return d
}

func (s *PostgresSuite) TestSearchIsCaseInsensitiveAndEscaped() {
	for _, name := range []string{"Ford", "ford-otosan", "Honda", "100%_Motors"} {
		_, err := s.store.Manufacturer().Create(s.ctx, &models.CreateManufacturer{Name: name, Country: "X"})
		s.Require().NoError(err)
	}

	list, err := s.store.Manufacturer().GetList(s.ctx, models.ListRequest{Search: "FORD"})
	s.Require().NoError(err)
	s.Equal(2, list.Count)
	s.Equal("Ford", list.Manufacturers[0].Name)

	list, err = s.store.Manufacturer().GetList(s.ctx, models.ListRequest{Search: "%_"})
	s.Require().NoError(err)
	s.Require().Equal(1, list.Count)
	s.Equal("100%_Motors", list.Manufacturers[0].Name)

	list, err = s.store.Manufacturer().GetList(s.ctx, models.ListRequest{Limit: 2, Offset: 2})
	s.Require().NoError(err)
	s.Equal(4, list.Count)
	s.Len(list.Manufacturers, 2)
}

func (s *PostgresSuite) TestDriverConstraints() {
	s.driver("alice", "ABC12345")

	_, err := s.store.Driver().Create(s.ctx, &models.CreateDriver{Username: "alice", LicenseNumber: "XYZ00001"})
	s.ErrorIs(err, storage.ErrConflict)
	s.Equal(storage.ConstraintDriverUsername, storage.Constraint(err))

	_, err = s.store.Driver().Create(s.ctx, &models.CreateDriver{Username: "bob", LicenseNumber: "ABC12345"})
	s.ErrorIs(err, storage.ErrConflict)
	s.Equal(storage.ConstraintDriverLicense, storage.Constraint(err))

	_, err = s.store.Driver().Create(s.ctx, &models.CreateDriver{Username: "carol", LicenseNumber: "LO123456"})
	s.ErrorIs(err, storage.ErrConflict)
}

func (s *PostgresSuite) TestCarDriversAndCascade() {
	m, err := s.store.Manufacturer().Create(s.ctx, &models.CreateManufacturer{Name: "Audi", Country: "Germany"})
	s.Require().NoError(err)
	alice := s.driver("alice", "ABC12345")
	bob := s.driver("bob", "BOB12345")

	c, err := s.store.Car().Create(s.ctx, &models.CreateCar{Model: "A6", ManufacturerID: m.ID, DriverIDs: []int64{bob.ID, alice.ID}})
	s.Require().NoError(err)
	s.Equal(2, c.DriverCount)
	s.Equal("Audi", c.Manufacturer.Name)

	d, err := s.store.Driver().GetByID(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Require().Len(d.Cars, 1)
	s.Equal("A6", d.Cars[0].Model)

	s.Require().NoError(s.store.Car().RemoveDriver(s.ctx, c.ID, bob.ID))
	s.Require().NoError(s.store.Car().AddDriver(s.ctx, c.ID, alice.ID))
	got, err := s.store.Car().GetByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(1, got.DriverCount)

	_, err = s.store.Car().Create(s.ctx, &models.CreateCar{Model: "Q7", ManufacturerID: 999})
	s.ErrorIs(err, storage.ErrProtected)
	s.Equal(storage.ConstraintCarManufacturer, storage.Constraint(err))

	s.Require().NoError(s.store.Manufacturer().Delete(s.ctx, m.ID))
	_, err = s.store.Car().GetByID(s.ctx, c.ID)
	s.ErrorIs(err, storage.ErrNotFound)

	n, err := s.store.Car().Count(s.ctx)
	s.Require().NoError(err)
	s.Zero(n)
}
