package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"taxifleet/config"
	"taxifleet/pkg/logger"
	"taxifleet/pkg/metrics"
	"taxifleet/pkg/models"
	"taxifleet/pkg/notify"
	"taxifleet/pkg/password"
	"taxifleet/storage"
	"taxifleet/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memory.Store
	sessions *memory.SessionStore
	svc      IServiceManager
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.New()
	s.sessions = memory.NewSessionStore()
	cfg := config.Config{SessionSecret: "test-secret", SessionTTL: time.Hour, PageSize: 2}
	s.svc = New(cfg, s.store, s.sessions, logger.NewNop(), metrics.New(), notify.Nop{})
}

func (s *ServiceSuite) driver(username, raw, license string) *models.Driver {
	hash, err := password.Hash(raw)
	s.Require().NoError(err)
	d, err := s.svc.Driver().Register(s.ctx, &models.CreateDriver{
		Username:      username,
		Password:      hash,
		LicenseNumber: license,
	})
	s.Require().NoError(err)
	return d
}

func (s *ServiceSuite) TestListUsesPageSize() {
	for _, name := range []string{"Audi", "BMW", "Ford"} {
		_, err := s.svc.Manufacturer().Create(s.ctx, &models.CreateManufacturer{Name: name, Country: "X"})
		s.Require().NoError(err)
	}

	items, page, err := s.svc.Manufacturer().List(s.ctx, "", "last")
	s.Require().NoError(err)
	s.Equal(2, page.Number)
	s.Require().Len(items, 1)
	s.Equal("Ford", items[0].Name)

	_, _, err = s.svc.Manufacturer().List(s.ctx, "", "3")
	s.ErrorIs(err, ErrInvalidPage)

	items, page, err = s.svc.Manufacturer().List(s.ctx, "tesla", "")
	s.Require().NoError(err)
	s.Empty(items)
	s.Equal(1, page.NumPages)
}

func (s *ServiceSuite) TestLoginAuthenticateLogout() {
	d := s.driver("admin", "StrongPassword123!", "ADM12345")

	_, err := s.svc.Auth().Login(s.ctx, "admin", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
	_, err = s.svc.Auth().Login(s.ctx, "nobody", "StrongPassword123!")
	s.ErrorIs(err, ErrInvalidCredentials)

	login, err := s.svc.Auth().Login(s.ctx, "admin", "StrongPassword123!")
	s.Require().NoError(err)
	s.Equal(d.ID, login.Driver.ID)

	got, sess, err := s.svc.Auth().Authenticate(s.ctx, login.Token)
	s.Require().NoError(err)
	s.Equal("admin", got.Username)
	s.Equal(login.SessionID, sess.ID)
	s.NotNil(got.LastLogin)

	visits, err := s.svc.Auth().Visit(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(1, visits)
	visits, err = s.svc.Auth().Visit(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(2, visits)

	s.Require().NoError(s.svc.Auth().Logout(s.ctx, login.Token))
	_, _, err = s.svc.Auth().Authenticate(s.ctx, login.Token)
	s.ErrorIs(err, ErrUnauthenticated)

	_, _, err = s.svc.Auth().Authenticate(s.ctx, "garbage")
	s.ErrorIs(err, ErrUnauthenticated)
}

func (s *ServiceSuite) TestInactiveDriverCannotLogin() {
	d := s.driver("sleepy", "StrongPassword123!", "SLP12345")
	_, err := s.svc.Driver().Update(s.ctx, &models.UpdateDriver{ID: d.ID, LicenseNumber: d.LicenseNumber, IsActive: false})
	s.Require().NoError(err)

	_, err = s.svc.Auth().Login(s.ctx, "sleepy", "StrongPassword123!")
	s.ErrorIs(err, ErrInactive)
}

func (s *ServiceSuite) TestToggleDriver() {
	m, err := s.svc.Manufacturer().Create(s.ctx, &models.CreateManufacturer{Name: "Audi", Country: "Germany"})
	s.Require().NoError(err)
	c, err := s.svc.Car().Create(s.ctx, &models.CreateCar{Model: "A6", ManufacturerID: m.ID})
	s.Require().NoError(err)
	d := s.driver("alice", "StrongPassword123!", "ALC12345")

	assigned, err := s.svc.Car().ToggleDriver(s.ctx, c.ID, d.ID)
	s.Require().NoError(err)
	s.True(assigned)

	assigned, err = s.svc.Car().ToggleDriver(s.ctx, c.ID, d.ID)
	s.Require().NoError(err)
	s.False(assigned)

	_, err = s.svc.Car().ToggleDriver(s.ctx, 999, d.ID)
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *ServiceSuite) TestStatsAndLookups() {
	m, err := s.svc.Manufacturer().Create(s.ctx, &models.CreateManufacturer{Name: "Audi", Country: "Germany"})
	s.Require().NoError(err)
	_, err = s.svc.Car().Create(s.ctx, &models.CreateCar{Model: "A6", ManufacturerID: m.ID})
	s.Require().NoError(err)
	d := s.driver("alice", "StrongPassword123!", "ALC12345")

	stats, err := s.svc.Fleet().Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.Stats{Drivers: 1, Cars: 1, Manufacturers: 1}, *stats)

	ok, err := s.svc.Car().ManufacturerExists(s.ctx, m.ID)
	s.Require().NoError(err)
	s.True(ok)
	ok, err = s.svc.Car().DriverExists(s.ctx, d.ID+100)
	s.Require().NoError(err)
	s.False(ok)

	taken, err := s.svc.Driver().LicenseNumberExists(s.ctx, "ALC12345", 0)
	s.Require().NoError(err)
	s.True(taken)
}

func (s *ServiceSuite) TestManufacturerDeleteCascades() {
	m, err := s.svc.Manufacturer().Create(s.ctx, &models.CreateManufacturer{Name: "Audi", Country: "Germany"})
	s.Require().NoError(err)
	c, err := s.svc.Car().Create(s.ctx, &models.CreateCar{Model: "A6", ManufacturerID: m.ID})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Manufacturer().Delete(s.ctx, m.ID))
	_, err = s.svc.Car().Get(s.ctx, c.ID)
	s.ErrorIs(err, storage.ErrNotFound)
	s.ErrorIs(s.svc.Manufacturer().Delete(s.ctx, m.ID), storage.ErrNotFound)
}
