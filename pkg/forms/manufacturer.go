package forms

import (
	"strings"

	"taxifleet/pkg/models"
)

type ManufacturerForm struct {
	Name    string `form:"name" binding:"required,max=255"`
	Country string `form:"country" binding:"required,max=255"`
}

func ManufacturerFormFrom(m *models.Manufacturer) ManufacturerForm {
	return ManufacturerForm{Name: m.Name, Country: m.Country}
}

func (f *ManufacturerForm) Validate() FieldErrors {
	f.Name = strings.TrimSpace(f.Name)
	f.Country = strings.TrimSpace(f.Country)

	errs := FieldErrors{}
	validate(f, errs)
	return errs
}

func (f ManufacturerForm) Create() *models.CreateManufacturer {
	return &models.CreateManufacturer{Name: f.Name, Country: f.Country}
}

func (f ManufacturerForm) Update(id int64) *models.UpdateManufacturer {
	return &models.UpdateManufacturer{ID: id, Name: f.Name, Country: f.Country}
}
