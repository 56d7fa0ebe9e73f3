package web

import (
	"github.com/spf13/cast"

	"taxifleet/pkg/forms"
	"taxifleet/pkg/models"
)

// Field is one input of a rendered form.
type Field struct {
	Name     string
	Label    string
	Type     string // text, email, password, checkbox, select, multiselect
	Value    string
	Checked  bool
	Required bool
	Help     string
	Choices  []Choice
	Errors   []string
}

type Choice struct {
	Value    string
	Label    string
	Selected bool
}

func ManufacturerFields(f forms.ManufacturerForm, errs forms.FieldErrors) []Field {
	return []Field{
		{Name: "name", Label: "Name", Type: "text", Value: f.Name, Required: true, Errors: errs.Get("name")},
		{Name: "country", Label: "Country", Type: "text", Value: f.Country, Required: true, Errors: errs.Get("country")},
	}
}

func CarFields(f forms.CarForm, manufacturers []*models.Manufacturer, drivers []*models.Driver, errs forms.FieldErrors) []Field {
	manufacturer := Field{Name: "manufacturer", Label: "Manufacturer", Type: "select", Required: true, Errors: errs.Get("manufacturer")}
	for _, m := range manufacturers {
		id := cast.ToString(m.ID)
		manufacturer.Choices = append(manufacturer.Choices, Choice{Value: id, Label: m.String(), Selected: id == f.Manufacturer})
	}

	driverField := Field{Name: "drivers", Label: "Drivers", Type: "multiselect", Errors: errs.Get("drivers")}
	for _, d := range drivers {
		driverField.Choices = append(driverField.Choices, Choice{Value: cast.ToString(d.ID), Label: d.String(), Selected: f.Selected(d.ID)})
	}

	return []Field{
		{Name: "model", Label: "Model", Type: "text", Value: f.Model, Required: true, Errors: errs.Get("model")},
		manufacturer,
		driverField,
	}
}

// DriverCreationFields never echoes the submitted passwords. withFlags adds
// the staff checkbox used by the admin panel.
func DriverCreationFields(f forms.DriverCreationForm, errs forms.FieldErrors, withFlags bool) []Field {
	fields := []Field{
		{Name: "username", Label: "Username", Type: "text", Value: f.Username, Required: true,
			Help: "Required. 150 characters or fewer. Letters, digits and @/./+/-/_ only.", Errors: errs.Get("username")},
		{Name: "password1", Label: "Password", Type: "password", Required: true, Errors: errs.Get("password1")},
		{Name: "password2", Label: "Password confirmation", Type: "password", Required: true,
			Help: "Enter the same password as before, for verification.", Errors: errs.Get("password2")},
		{Name: "first_name", Label: "First name", Type: "text", Value: f.FirstName, Errors: errs.Get("first_name")},
		{Name: "last_name", Label: "Last name", Type: "text", Value: f.LastName, Errors: errs.Get("last_name")},
		{Name: "email", Label: "Email address", Type: "email", Value: f.Email, Errors: errs.Get("email")},
		licenseField(f.LicenseNumber, errs),
	}
	if withFlags {
		fields = append(fields, Field{Name: "is_staff", Label: "Staff status", Type: "checkbox", Checked: f.IsStaff})
	}
	return fields
}

func DriverUpdateFields(f forms.DriverUpdateForm, errs forms.FieldErrors, withFlags bool) []Field {
	fields := []Field{
		{Name: "first_name", Label: "First name", Type: "text", Value: f.FirstName, Errors: errs.Get("first_name")},
		{Name: "last_name", Label: "Last name", Type: "text", Value: f.LastName, Errors: errs.Get("last_name")},
		{Name: "email", Label: "Email address", Type: "email", Value: f.Email, Errors: errs.Get("email")},
		licenseField(f.LicenseNumber, errs),
	}
	if withFlags {
		fields = append(fields,
			Field{Name: "is_staff", Label: "Staff status", Type: "checkbox", Checked: f.IsStaff},
			Field{Name: "is_active", Label: "Active", Type: "checkbox", Checked: f.IsActive},
		)
	}
	return fields
}

func licenseField(value string, errs forms.FieldErrors) Field {
	return Field{
		Name:     "license_number",
		Label:    "License number",
		Type:     "text",
		Value:    value,
		Required: true,
		Help:     "Three uppercase letters followed by five digits, e.g. ABC12345.",
		Errors:   errs.Get("license_number"),
	}
}
