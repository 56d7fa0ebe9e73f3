package forms

import (
	"context"
	"strings"

	"github.com/spf13/cast"

	"taxifleet/pkg/models"
)

// CarLookup resolves the manufacturer and driver choices of a car form.
type CarLookup interface {
	ManufacturerExists(ctx context.Context, id int64) (bool, error)
	DriverExists(ctx context.Context, id int64) (bool, error)
}

// CarForm keeps the raw submitted ids so an invalid choice can be re-rendered.
type CarForm struct {
	Model        string   `form:"model" binding:"required,max=255"`
	Manufacturer string   `form:"manufacturer" binding:"required"`
	Drivers      []string `form:"drivers"`

	manufacturerID int64
	driverIDs      []int64
}

func CarFormFrom(c *models.Car) CarForm {
	f := CarForm{
		Model:        c.Model,
		Manufacturer: cast.ToString(c.ManufacturerID),
	}
	for _, d := range c.Drivers {
		f.Drivers = append(f.Drivers, cast.ToString(d.ID))
	}
	return f
}

// Selected reports whether the driver id is among the submitted drivers.
func (f CarForm) Selected(driverID int64) bool {
	id := cast.ToString(driverID)
	for _, d := range f.Drivers {
		if d == id {
			return true
		}
	}
	return false
}

func (f *CarForm) Validate(ctx context.Context, lookup CarLookup) (FieldErrors, error) {
	f.Model = strings.TrimSpace(f.Model)
	f.Manufacturer = strings.TrimSpace(f.Manufacturer)

	errs := FieldErrors{}
	validate(f, errs)

	if !errs.Has("manufacturer") {
		id, err := cast.ToInt64E(f.Manufacturer)
		ok := err == nil && id > 0
		if ok {
			if ok, err = lookup.ManufacturerExists(ctx, id); err != nil {
				return nil, err
			}
		}
		if !ok {
			errs.Add("manufacturer", MsgInvalidChoice)
		} else {
			f.manufacturerID = id
		}
	}

	f.driverIDs = f.driverIDs[:0]
	seen := make(map[int64]struct{}, len(f.Drivers))
	for _, raw := range f.Drivers {
		id, err := cast.ToInt64E(strings.TrimSpace(raw))
		ok := err == nil && id > 0
		if ok {
			if ok, err = lookup.DriverExists(ctx, id); err != nil {
				return nil, err
			}
		}
		if !ok {
			errs.Add("drivers", MsgInvalidChoice)
			break
		}
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			f.driverIDs = append(f.driverIDs, id)
		}
	}
	return errs, nil
}

func (f CarForm) Create() *models.CreateCar {
	return &models.CreateCar{Model: f.Model, ManufacturerID: f.manufacturerID, DriverIDs: f.driverIDs}
}

func (f CarForm) Update(id int64) *models.UpdateCar {
	return &models.UpdateCar{ID: id, Model: f.Model, ManufacturerID: f.manufacturerID, DriverIDs: f.driverIDs}
}
