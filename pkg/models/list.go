package models

// ListRequest narrows a list query: Search is a case-insensitive substring of
// the entity's display field. Limit <= 0 means no limit.
type ListRequest struct {
	Search string
	Limit  int
	Offset int
}

type ManufacturerList struct {
	Manufacturers []*Manufacturer `json:"manufacturers"`
	Count         int             `json:"count"`
}

type DriverList struct {
	Drivers []*Driver `json:"drivers"`
	Count   int       `json:"count"`
}

type CarList struct {
	Cars  []*Car `json:"cars"`
	Count int    `json:"count"`
}

type Stats struct {
	Drivers       int `json:"num_drivers"`
	Cars          int `json:"num_cars"`
	Manufacturers int `json:"num_manufacturers"`
}
