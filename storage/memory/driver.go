package memory

import (
	"context"
	"sort"

	"taxifleet/pkg/models"
	"taxifleet/storage"
)

type driverRepo struct {
	s *Store
}

// uniqueLocked reports the first unique constraint a driver with these values
// would violate, ignoring the row with excludeID.
func (r *driverRepo) uniqueLocked(username, license string, excludeID int64) string {
	for _, d := range r.s.drivers {
		if d.ID != excludeID && username != "" && d.Username == username {
			return storage.ConstraintDriverUsername
		}
	}
	for _, d := range r.s.drivers {
		if d.ID != excludeID && d.LicenseNumber == license {
			return storage.ConstraintDriverLicense
		}
	}
	return ""
}

func (r *driverRepo) Create(_ context.Context, req *models.CreateDriver) (*models.Driver, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if c := r.uniqueLocked(req.Username, req.LicenseNumber, 0); c != "" {
		return nil, &storage.ConstraintError{Kind: storage.ErrConflict, Constraint: c}
	}

	r.s.nextDriverID++
	d := models.Driver{
		ID:            r.s.nextDriverID,
		Username:      req.Username,
		Password:      req.Password,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		LicenseNumber: req.LicenseNumber,
		IsStaff:       req.IsStaff,
		IsSuperuser:   req.IsSuperuser,
		IsActive:      true,
		DateJoined:    r.s.now(),
	}
	r.s.drivers[d.ID] = d
	return &d, nil
}

func (r *driverRepo) Update(_ context.Context, req *models.UpdateDriver) (*models.Driver, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.drivers[req.ID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if c := r.uniqueLocked("", req.LicenseNumber, req.ID); c != "" {
		return nil, &storage.ConstraintError{Kind: storage.ErrConflict, Constraint: c}
	}

	d.FirstName = req.FirstName
	d.LastName = req.LastName
	d.Email = req.Email
	d.LicenseNumber = req.LicenseNumber
	d.IsStaff = req.IsStaff
	d.IsActive = req.IsActive
	r.s.drivers[d.ID] = d
	return &d, nil
}

func (r *driverRepo) GetByID(_ context.Context, id int64) (*models.Driver, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.drivers[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	d.Cars = r.s.carsOf(id)
	d.CarCount = len(d.Cars)
	return &d, nil
}

func (r *driverRepo) GetByUsername(_ context.Context, username string) (*models.Driver, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, d := range r.s.drivers {
		if d.Username == username {
			return &d, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (r *driverRepo) GetList(_ context.Context, req models.ListRequest) (*models.DriverList, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*models.Driver
	for _, d := range r.s.drivers {
		if containsFold(d.Username, req.Search) {
			d.CarCount = r.s.carCount(d.ID)
			matched = append(matched, &d)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Username != matched[j].Username {
			return matched[i].Username < matched[j].Username
		}
		return matched[i].ID < matched[j].ID
	})

	start, end := paginate(len(matched), req)
	return &models.DriverList{Drivers: matched[start:end], Count: len(matched)}, nil
}

func (r *driverRepo) GetAll(ctx context.Context) ([]*models.Driver, error) {
	list, err := r.GetList(ctx, models.ListRequest{})
	if err != nil {
		return nil, err
	}
	return list.Drivers, nil
}

func (r *driverRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.drivers[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.s.drivers, id)
	for pair := range r.s.carDrivers {
		if pair.driverID == id {
			delete(r.s.carDrivers, pair)
		}
	}
	return nil
}

func (r *driverRepo) Count(context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.drivers), nil
}

func (r *driverRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, d := range r.s.drivers {
		if d.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *driverRepo) LicenseNumberExists(_ context.Context, licenseNumber string, excludeID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, d := range r.s.drivers {
		if d.ID != excludeID && d.LicenseNumber == licenseNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *driverRepo) SetLastLogin(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.drivers[id]
	if !ok {
		return storage.ErrNotFound
	}
	now := r.s.now()
	d.LastLogin = &now
	r.s.drivers[id] = d
	return nil
}
