package storage

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("conflict")
	ErrProtected = errors.New("protected by a foreign key")
)

const (
	ConstraintDriverUsername   = "drivers_username_key"
	ConstraintDriverLicense    = "drivers_license_number_key"
	ConstraintCarManufacturer  = "cars_manufacturer_id_fkey"
	ConstraintCarDriversCar    = "car_drivers_car_id_fkey"
	ConstraintCarDriversDriver = "car_drivers_driver_id_fkey"
)

// ConstraintError ties ErrConflict or ErrProtected to the violated constraint,
// so callers can report the offending field.
type ConstraintError struct {
	Kind       error
	Constraint string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Constraint)
}

func (e *ConstraintError) Unwrap() error {
	return e.Kind
}

// Constraint returns the violated constraint name, or "" if err carries none.
func Constraint(err error) string {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Constraint
	}
	return ""
}
