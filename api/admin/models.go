package admin

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"taxifleet/api/web"
	"taxifleet/pkg/forms"
	"taxifleet/pkg/models"
	"taxifleet/service"
)

func (a *Admin) manufacturerModel() *model {
	svc := a.svc.Manufacturer()
	return &model{
		name:    "manufacturer",
		verbose: "manufacturer",
		plural:  "Manufacturers",
		columns: []string{"Name", "Country"},
		list: func(ctx context.Context, q, page string) ([][]string, []int64, service.Page, error) {
			items, p, err := svc.List(ctx, q, page)
			if err != nil {
				return nil, nil, p, err
			}
			cells := make([][]string, len(items))
			ids := make([]int64, len(items))
			for i, m := range items {
				cells[i] = []string{m.Name, m.Country}
				ids[i] = m.ID
			}
			return cells, ids, p, nil
		},
		object: func(ctx context.Context, id int64) (fmt.Stringer, error) {
			return svc.Get(ctx, id)
		},
		save: func(c *gin.Context, id int64) (bool, []web.Field, forms.FieldErrors, error) {
			ctx := c.Request.Context()
			var form forms.ManufacturerForm
			errs := forms.FieldErrors{}
			if id != 0 {
				m, err := svc.Get(ctx, id)
				if err != nil {
					return false, nil, nil, err
				}
				form = forms.ManufacturerFormFrom(m)
			}
			if c.Request.Method == http.MethodPost {
				form = forms.ManufacturerForm{}
				if !a.bind(c, &form) {
					return false, nil, nil, nil
				}
				if errs = form.Validate(); errs.Valid() {
					var err error
					if id == 0 {
						_, err = svc.Create(ctx, form.Create())
					} else {
						_, err = svc.Update(ctx, form.Update(id))
					}
					return err == nil, nil, errs, err
				}
			}
			return false, web.ManufacturerFields(form, errs), errs, nil
		},
		delete: svc.Delete,
	}
}

func (a *Admin) carModel() *model {
	svc := a.svc.Car()
	return &model{
		name:    "car",
		verbose: "car",
		plural:  "Cars",
		columns: []string{"Model", "Manufacturer", "Drivers"},
		list: func(ctx context.Context, q, page string) ([][]string, []int64, service.Page, error) {
			items, p, err := svc.List(ctx, q, page)
			if err != nil {
				return nil, nil, p, err
			}
			cells := make([][]string, len(items))
			ids := make([]int64, len(items))
			for i, car := range items {
				cells[i] = []string{car.Model, car.Manufacturer.String(), cast.ToString(car.DriverCount)}
				ids[i] = car.ID
			}
			return cells, ids, p, nil
		},
		object: func(ctx context.Context, id int64) (fmt.Stringer, error) {
			return svc.Get(ctx, id)
		},
		save: func(c *gin.Context, id int64) (bool, []web.Field, forms.FieldErrors, error) {
			ctx := c.Request.Context()
			var form forms.CarForm
			errs := forms.FieldErrors{}
			if id != 0 {
				car, err := svc.Get(ctx, id)
				if err != nil {
					return false, nil, nil, err
				}
				form = forms.CarFormFrom(car)
			}
			if c.Request.Method == http.MethodPost {
				form = forms.CarForm{}
				if !a.bind(c, &form) {
					return false, nil, nil, nil
				}
				var err error
				if errs, err = form.Validate(ctx, svc); err != nil {
					return false, nil, nil, err
				}
				if errs.Valid() {
					if id == 0 {
						_, err = svc.Create(ctx, form.Create())
					} else {
						_, err = svc.Update(ctx, form.Update(id))
					}
					if err == nil {
						return true, nil, errs, nil
					}
					if !forms.AddConstraintError(err, errs) {
						return false, nil, nil, err
					}
				}
			}
			manufacturers, err := a.svc.Manufacturer().All(ctx)
			if err != nil {
				return false, nil, nil, err
			}
			drivers, err := a.svc.Driver().All(ctx)
			if err != nil {
				return false, nil, nil, err
			}
			return false, web.CarFields(form, manufacturers, drivers, errs), errs, nil
		},
		delete: svc.Delete,
	}
}

func (a *Admin) driverModel() *model {
	svc := a.svc.Driver()
	return &model{
		name:    "driver",
		verbose: "driver",
		plural:  "Drivers",
		columns: []string{"Username", "Email address", "First name", "Last name", "License number", "Staff status"},
		list: func(ctx context.Context, q, page string) ([][]string, []int64, service.Page, error) {
			items, p, err := svc.List(ctx, q, page)
			if err != nil {
				return nil, nil, p, err
			}
			cells := make([][]string, len(items))
			ids := make([]int64, len(items))
			for i, d := range items {
				cells[i] = []string{d.Username, d.Email, d.FirstName, d.LastName, d.LicenseNumber, yesNo(d.IsStaff)}
				ids[i] = d.ID
			}
			return cells, ids, p, nil
		},
		object: func(ctx context.Context, id int64) (fmt.Stringer, error) {
			return svc.Get(ctx, id)
		},
		save: func(c *gin.Context, id int64) (bool, []web.Field, forms.FieldErrors, error) {
			if id == 0 {
				return a.addDriver(c, svc)
			}
			return a.changeDriver(c, svc, id)
		},
		delete: svc.Delete,
	}
}

func (a *Admin) addDriver(c *gin.Context, svc service.DriverService) (bool, []web.Field, forms.FieldErrors, error) {
	ctx := c.Request.Context()
	var form forms.DriverCreationForm
	errs := forms.FieldErrors{}

	if c.Request.Method == http.MethodPost {
		if !a.bind(c, &form) {
			return false, nil, nil, nil
		}
		var err error
		if errs, err = form.Validate(ctx, svc); err != nil {
			return false, nil, nil, err
		}
		if errs.Valid() {
			var row *models.CreateDriver
			if row, err = form.Create(); err != nil {
				return false, nil, nil, err
			}
			if _, err = svc.Register(ctx, row); err == nil {
				return true, nil, errs, nil
			}
			if !forms.AddConstraintError(err, errs) {
				return false, nil, nil, err
			}
		}
	}
	return false, web.DriverCreationFields(form, errs, true), errs, nil
}

func (a *Admin) changeDriver(c *gin.Context, svc service.DriverService, id int64) (bool, []web.Field, forms.FieldErrors, error) {
	ctx := c.Request.Context()
	d, err := svc.Get(ctx, id)
	if err != nil {
		return false, nil, nil, err
	}
	form := forms.DriverUpdateFormFrom(d)
	errs := forms.FieldErrors{}

	if c.Request.Method == http.MethodPost {
		form = forms.DriverUpdateForm{}
		if !a.bind(c, &form) {
			return false, nil, nil, nil
		}
		if errs, err = form.Validate(ctx, svc, id); err != nil {
			return false, nil, nil, err
		}
		if errs.Valid() {
			if _, err = svc.Update(ctx, form.Update(id)); err == nil {
				return true, nil, errs, nil
			}
			if !forms.AddConstraintError(err, errs) {
				return false, nil, nil, err
			}
		}
	}
	return false, web.DriverUpdateFields(form, errs, true), errs, nil
}
