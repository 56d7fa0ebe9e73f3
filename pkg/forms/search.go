package forms

import "strings"

// Search forms always validate; an empty value means no filter.

type ManufacturerSearch struct {
	Name string `form:"name"`
}

func (f ManufacturerSearch) Query() string { return strings.TrimSpace(f.Name) }

type DriverSearch struct {
	Username string `form:"username"`
}

func (f DriverSearch) Query() string { return strings.TrimSpace(f.Username) }

type CarSearch struct {
	Model string `form:"model"`
}

func (f CarSearch) Query() string { return strings.TrimSpace(f.Model) }
