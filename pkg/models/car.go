package models

type Car struct {
	ID             int64  `json:"id"`
	Model          string `json:"model"`
	ManufacturerID int64  `json:"manufacturer_id"`

	// Manufacturer is always joined; Drivers only on detail lookups.
	Manufacturer Manufacturer `json:"manufacturer"`
	DriverCount  int          `json:"driver_count"`
	Drivers      []*Driver    `json:"drivers,omitempty"`
}

func (c Car) String() string {
	return c.Model
}

// HasDriver reports whether the driver is among the loaded Drivers.
func (c Car) HasDriver(driverID int64) bool {
	for _, d := range c.Drivers {
		if d.ID == driverID {
			return true
		}
	}
	return false
}

type CreateCar struct {
	Model          string  `json:"model"`
	ManufacturerID int64   `json:"manufacturer_id"`
	DriverIDs      []int64 `json:"driver_ids"`
}

type UpdateCar struct {
	ID             int64   `json:"id"`
	Model          string  `json:"model"`
	ManufacturerID int64   `json:"manufacturer_id"`
	DriverIDs      []int64 `json:"driver_ids"`
}
