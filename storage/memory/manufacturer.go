package memory

import (
	"context"
	"sort"

	"taxifleet/pkg/models"
	"taxifleet/storage"
)

type manufacturerRepo struct {
	s *Store
}

func (r *manufacturerRepo) Create(_ context.Context, req *models.CreateManufacturer) (*models.Manufacturer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextManufacturerID++
	m := models.Manufacturer{ID: r.s.nextManufacturerID, Name: req.Name, Country: req.Country}
	r.s.manufacturers[m.ID] = m
	return &m, nil
}

func (r *manufacturerRepo) Update(_ context.Context, req *models.UpdateManufacturer) (*models.Manufacturer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.manufacturers[req.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	m := models.Manufacturer{ID: req.ID, Name: req.Name, Country: req.Country}
	r.s.manufacturers[m.ID] = m
	return &m, nil
}

func (r *manufacturerRepo) GetByID(_ context.Context, id int64) (*models.Manufacturer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.manufacturers[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	for _, c := range r.s.cars {
		if c.ManufacturerID == id {
			c = r.s.withManufacturer(c)
			c.DriverCount = r.s.driverCount(c.ID)
			m.Cars = append(m.Cars, &c)
		}
	}
	sortCars(m.Cars)
	return &m, nil
}

func (r *manufacturerRepo) GetList(_ context.Context, req models.ListRequest) (*models.ManufacturerList, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*models.Manufacturer
	for _, m := range r.s.manufacturers {
		if containsFold(m.Name, req.Search) {
			matched = append(matched, &m)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Name != matched[j].Name {
			return matched[i].Name < matched[j].Name
		}
		return matched[i].ID < matched[j].ID
	})

	start, end := paginate(len(matched), req)
	return &models.ManufacturerList{Manufacturers: matched[start:end], Count: len(matched)}, nil
}

func (r *manufacturerRepo) GetAll(ctx context.Context) ([]*models.Manufacturer, error) {
	list, err := r.GetList(ctx, models.ListRequest{})
	if err != nil {
		return nil, err
	}
	return list.Manufacturers, nil
}

func (r *manufacturerRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.manufacturers[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.s.manufacturers, id)
	for carID, c := range r.s.cars {
		if c.ManufacturerID == id {
			r.s.deleteCarLocked(carID)
		}
	}
	return nil
}

func (r *manufacturerRepo) Count(context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.manufacturers), nil
}
