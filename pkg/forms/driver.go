package forms

import (
	"context"
	"strings"

	"taxifleet/pkg/models"
	"taxifleet/pkg/password"
)

// DriverLookup answers the uniqueness questions the driver forms ask.
type DriverLookup interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
	LicenseNumberExists(ctx context.Context, licenseNumber string, excludeID int64) (bool, error)
}

// DriverCreationForm is the registration form with a license number.
type DriverCreationForm struct {
	Username      string `form:"username" binding:"required,max=150,username"`
	Password1     string `form:"password1" binding:"required"`
	Password2     string `form:"password2" binding:"required"`
	FirstName     string `form:"first_name" binding:"max=150"`
	LastName      string `form:"last_name" binding:"max=150"`
	Email         string `form:"email" binding:"omitempty,email,max=254"`
	LicenseNumber string `form:"license_number" binding:"required,len=8,license_number"`
	IsStaff       bool   `form:"is_staff"`
}

// Validate returns field errors; a nil error with invalid fields is the usual
// failure. The error result is reserved for lookup failures.
func (f *DriverCreationForm) Validate(ctx context.Context, lookup DriverLookup) (FieldErrors, error) {
	f.Username = strings.TrimSpace(f.Username)
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.LicenseNumber = strings.TrimSpace(f.LicenseNumber)

	errs := FieldErrors{}
	validate(f, errs)
	normalizeLicenseErrors(errs)

	if !errs.Has("username") {
		taken, err := lookup.UsernameExists(ctx, f.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("username", MsgUsernameTaken)
		}
	}
	if !errs.Has("license_number") {
		taken, err := lookup.LicenseNumberExists(ctx, f.LicenseNumber, 0)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("license_number", MsgLicenseTaken)
		}
	}

	if f.Password1 != "" && f.Password2 != "" {
		if f.Password1 != f.Password2 {
			errs.Add("password2", MsgPasswordMatch)
		} else {
			for _, err := range password.Validate(f.Password2, f.Username, f.FirstName, f.LastName, f.Email) {
				errs.Add("password2", err.Error())
			}
		}
	}
	return errs, nil
}

// Create hashes the password and returns the row to insert.
func (f DriverCreationForm) Create() (*models.CreateDriver, error) {
	hash, err := password.Hash(f.Password1)
	if err != nil {
		return nil, err
	}
	return &models.CreateDriver{
		Username:      f.Username,
		Password:      hash,
		FirstName:     f.FirstName,
		LastName:      f.LastName,
		Email:         f.Email,
		LicenseNumber: f.LicenseNumber,
		IsStaff:       f.IsStaff,
	}, nil
}

type DriverUpdateForm struct {
	FirstName     string `form:"first_name" binding:"max=150"`
	LastName      string `form:"last_name" binding:"max=150"`
	Email         string `form:"email" binding:"omitempty,email,max=254"`
	LicenseNumber string `form:"license_number" binding:"required,len=8,license_number"`
	IsStaff       bool   `form:"is_staff"`
	IsActive      bool   `form:"is_active"`
}

func DriverUpdateFormFrom(d *models.Driver) DriverUpdateForm {
	return DriverUpdateForm{
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Email:         d.Email,
		LicenseNumber: d.LicenseNumber,
		IsStaff:       d.IsStaff,
		IsActive:      d.IsActive,
	}
}

func (f *DriverUpdateForm) Validate(ctx context.Context, lookup DriverLookup, id int64) (FieldErrors, error) {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.LicenseNumber = strings.TrimSpace(f.LicenseNumber)

	errs := FieldErrors{}
	validate(f, errs)
	normalizeLicenseErrors(errs)

	if !errs.Has("license_number") {
		taken, err := lookup.LicenseNumberExists(ctx, f.LicenseNumber, id)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("license_number", MsgLicenseTaken)
		}
	}
	return errs, nil
}

func (f DriverUpdateForm) Update(id int64) *models.UpdateDriver {
	return &models.UpdateDriver{
		ID:            id,
		FirstName:     f.FirstName,
		LastName:      f.LastName,
		Email:         f.Email,
		LicenseNumber: f.LicenseNumber,
		IsStaff:       f.IsStaff,
		IsActive:      f.IsActive,
	}
}

// normalizeLicenseErrors reports every format failure of a non-empty license
// number with the single license message.
func normalizeLicenseErrors(errs FieldErrors) {
	msgs := errs["license_number"]
	if len(msgs) == 0 || msgs[0] == MsgRequired {
		return
	}
	errs["license_number"] = []string{MsgLicenseNumber}
}
