package models

type Manufacturer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`

	// Cars is filled on detail lookups only.
	Cars []*Car `json:"cars,omitempty"`
}

func (m Manufacturer) String() string {
	return m.Name + " " + m.Country
}

type CreateManufacturer struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

type UpdateManufacturer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}
