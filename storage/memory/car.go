package memory

import (
	"context"

	"taxifleet/pkg/models"
	"taxifleet/storage"
)

type carRepo struct {
	s *Store
}

func (r *carRepo) checkManufacturerLocked(id int64) error {
	if _, ok := r.s.manufacturers[id]; !ok {
		return &storage.ConstraintError{Kind: storage.ErrProtected, Constraint: storage.ConstraintCarManufacturer}
	}
	return nil
}

func (r *carRepo) Create(_ context.Context, req *models.CreateCar) (*models.Car, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkManufacturerLocked(req.ManufacturerID); err != nil {
		return nil, err
	}

	id := r.s.nextCarID + 1
	if err := r.s.setDriversLocked(id, req.DriverIDs); err != nil {
		return nil, err
	}
	r.s.nextCarID = id
	r.s.cars[id] = models.Car{ID: id, Model: req.Model, ManufacturerID: req.ManufacturerID}
	return r.getLocked(id)
}

func (r *carRepo) Update(_ context.Context, req *models.UpdateCar) (*models.Car, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cars[req.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	if err := r.checkManufacturerLocked(req.ManufacturerID); err != nil {
		return nil, err
	}
	if err := r.s.setDriversLocked(req.ID, req.DriverIDs); err != nil {
		return nil, err
	}
	r.s.cars[req.ID] = models.Car{ID: req.ID, Model: req.Model, ManufacturerID: req.ManufacturerID}
	return r.getLocked(req.ID)
}

func (r *carRepo) getLocked(id int64) (*models.Car, error) {
	c, ok := r.s.cars[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	c = r.s.withManufacturer(c)
	c.Drivers = r.s.driversOf(id)
	c.DriverCount = len(c.Drivers)
	return &c, nil
}

func (r *carRepo) GetByID(_ context.Context, id int64) (*models.Car, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.getLocked(id)
}

func (r *carRepo) GetList(_ context.Context, req models.ListRequest) (*models.CarList, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*models.Car
	for _, c := range r.s.cars {
		if containsFold(c.Model, req.Search) {
			c = r.s.withManufacturer(c)
			c.DriverCount = r.s.driverCount(c.ID)
			matched = append(matched, &c)
		}
	}
	sortCars(matched)

	start, end := paginate(len(matched), req)
	return &models.CarList{Cars: matched[start:end], Count: len(matched)}, nil
}

func (r *carRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cars[id]; !ok {
		return storage.ErrNotFound
	}
	r.s.deleteCarLocked(id)
	return nil
}

func (r *carRepo) Count(context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.cars), nil
}

func (r *carRepo) AddDriver(_ context.Context, carID, driverID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cars[carID]; !ok {
		return &storage.ConstraintError{Kind: storage.ErrProtected, Constraint: storage.ConstraintCarDriversCar}
	}
	if _, ok := r.s.drivers[driverID]; !ok {
		return &storage.ConstraintError{Kind: storage.ErrProtected, Constraint: storage.ConstraintCarDriversDriver}
	}
	r.s.carDrivers[carDriver{carID: carID, driverID: driverID}] = struct{}{}
	return nil
}

func (r *carRepo) RemoveDriver(_ context.Context, carID, driverID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.carDrivers, carDriver{carID: carID, driverID: driverID})
	return nil
}
