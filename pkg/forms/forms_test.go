package forms

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDrivers struct {
	usernames map[string]bool
	licenses  map[string]int64
	err       error
}

func (f fakeDrivers) UsernameExists(_ context.Context, username string) (bool, error) {
	return f.usernames[username], f.err
}

func (f fakeDrivers) LicenseNumberExists(_ context.Context, license string, excludeID int64) (bool, error) {
	id, ok := f.licenses[license]
	return ok && id != excludeID, f.err
}

func validCreation() DriverCreationForm {
	return DriverCreationForm{
		Username:      "new_user",
		Password1:     "StrongPassword123!",
		Password2:     "StrongPassword123!",
		FirstName:     "Test first",
		LastName:      "Test last",
		LicenseNumber: "LOL12345",
	}
}

func TestValidLicenseNumber(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"LOL12345", true},
		{"ABC00000", true},
		{"LO123456", false},
		{"lol12345", false},
		{"LOL1234", false},
		{"LOL123456", false},
		{"ЖЖЖ12345", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidLicenseNumber(tt.value))
		})
	}
}

func TestDriverCreationFormValid(t *testing.T) {
	f := validCreation()
	errs, err := f.Validate(context.Background(), fakeDrivers{})
	require.NoError(t, err)
	assert.True(t, errs.Valid(), errs)

	row, err := f.Create()
	require.NoError(t, err)
	assert.Equal(t, "new_user", row.Username)
	assert.Equal(t, "LOL12345", row.LicenseNumber)
	assert.NotEqual(t, f.Password1, row.Password)
}

func TestDriverCreationFormErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *DriverCreationForm)
		lookup fakeDrivers
		field  string
		msg    string
	}{
		{
			name:   "bad license format",
			mutate: func(f *DriverCreationForm) { f.LicenseNumber = "LO123456" },
			field:  "license_number",
			msg:    MsgLicenseNumber,
		},
		{
			name:   "short license",
			mutate: func(f *DriverCreationForm) { f.LicenseNumber = "LOL1" },
			field:  "license_number",
			msg:    MsgLicenseNumber,
		},
		{
			name:   "missing license",
			mutate: func(f *DriverCreationForm) { f.LicenseNumber = "" },
			field:  "license_number",
			msg:    MsgRequired,
		},
		{
			name:   "taken license",
			lookup: fakeDrivers{licenses: map[string]int64{"LOL12345": 7}},
			field:  "license_number",
			msg:    MsgLicenseTaken,
		},
		{
			name:   "taken username",
			lookup: fakeDrivers{usernames: map[string]bool{"new_user": true}},
			field:  "username",
			msg:    MsgUsernameTaken,
		},
		{
			name:   "bad username characters",
			mutate: func(f *DriverCreationForm) { f.Username = "new user!" },
			field:  "username",
			msg:    MsgUsername,
		},
		{
			name:   "password mismatch",
			mutate: func(f *DriverCreationForm) { f.Password2 = "StrongPassword123?" },
			field:  "password2",
			msg:    MsgPasswordMatch,
		},
		{
			name: "numeric password",
			mutate: func(f *DriverCreationForm) {
				f.Password1, f.Password2 = "90817263", "90817263"
			},
			field: "password2",
			msg:   "This password is entirely numeric.",
		},
		{
			name: "short password",
			mutate: func(f *DriverCreationForm) {
				f.Password1, f.Password2 = "Xy7!", "Xy7!"
			},
			field: "password2",
			msg:   "This password is too short. It must contain at least 8 characters.",
		},
		{
			name:   "missing password",
			mutate: func(f *DriverCreationForm) { f.Password1 = "" },
			field:  "password1",
			msg:    MsgRequired,
		},
		{
			name:   "bad email",
			mutate: func(f *DriverCreationForm) { f.Email = "not-an-email" },
			field:  "email",
			msg:    MsgEmail,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validCreation()
			if tt.mutate != nil {
				tt.mutate(&f)
			}
			errs, err := f.Validate(context.Background(), tt.lookup)
			require.NoError(t, err)
			assert.Contains(t, errs.Get(tt.field), tt.msg)
		})
	}
}

func TestDriverCreationFormLookupError(t *testing.T) {
	f := validCreation()
	_, err := f.Validate(context.Background(), fakeDrivers{err: errors.New("db down")})
	assert.Error(t, err)
}

func TestDriverUpdateFormExcludesSelf(t *testing.T) {
	lookup := fakeDrivers{licenses: map[string]int64{"LOL12345": 3}}

	f := DriverUpdateForm{LicenseNumber: "LOL12345"}
	errs, err := f.Validate(context.Background(), lookup, 3)
	require.NoError(t, err)
	assert.True(t, errs.Valid(), errs)

	errs, err = f.Validate(context.Background(), lookup, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{MsgLicenseTaken}, errs.Get("license_number"))
}

func TestManufacturerForm(t *testing.T) {
	f := ManufacturerForm{Name: "  Mazda ", Country: "Japan"}
	assert.True(t, f.Validate().Valid())
	assert.Equal(t, "Mazda", f.Create().Name)

	f = ManufacturerForm{Name: "", Country: "Japan"}
	errs := f.Validate()
	assert.Equal(t, []string{MsgRequired}, errs.Get("name"))
	assert.False(t, errs.Has("country"))
}

type fakeCars struct {
	manufacturers map[int64]bool
	drivers       map[int64]bool
}

func (f fakeCars) ManufacturerExists(_ context.Context, id int64) (bool, error) {
	return f.manufacturers[id], nil
}

func (f fakeCars) DriverExists(_ context.Context, id int64) (bool, error) {
	return f.drivers[id], nil
}

func TestCarForm(t *testing.T) {
	lookup := fakeCars{
		manufacturers: map[int64]bool{1: true},
		drivers:       map[int64]bool{2: true, 3: true},
	}

	t.Run("valid with duplicate drivers", func(t *testing.T) {
		f := CarForm{Model: "X5", Manufacturer: "1", Drivers: []string{"2", "3", "2"}}
		errs, err := f.Validate(context.Background(), lookup)
		require.NoError(t, err)
		require.True(t, errs.Valid(), errs)

		row := f.Update(9)
		assert.Equal(t, int64(9), row.ID)
		assert.Equal(t, int64(1), row.ManufacturerID)
		assert.Equal(t, []int64{2, 3}, row.DriverIDs)
		assert.True(t, f.Selected(3))
		assert.False(t, f.Selected(4))
	})

	t.Run("unknown manufacturer", func(t *testing.T) {
		f := CarForm{Model: "X5", Manufacturer: "5"}
		errs, err := f.Validate(context.Background(), lookup)
		require.NoError(t, err)
		assert.Equal(t, []string{MsgInvalidChoice}, errs.Get("manufacturer"))
	})

	t.Run("garbage driver id", func(t *testing.T) {
		f := CarForm{Model: "X5", Manufacturer: "1", Drivers: []string{"abc"}}
		errs, err := f.Validate(context.Background(), lookup)
		require.NoError(t, err)
		assert.Equal(t, []string{MsgInvalidChoice}, errs.Get("drivers"))
	})

	t.Run("missing fields", func(t *testing.T) {
		f := CarForm{}
		errs, err := f.Validate(context.Background(), lookup)
		require.NoError(t, err)
		assert.Equal(t, []string{MsgRequired}, errs.Get("model"))
		assert.Equal(t, []string{MsgRequired}, errs.Get("manufacturer"))
	})
}

func TestBind(t *testing.T) {
	values := url.Values{
		"model":        {"A6"},
		"manufacturer": {"4"},
		"drivers":      {"1", "2"},
	}
	var f CarForm
	require.NoError(t, Bind(values, &f))
	assert.Equal(t, "A6", f.Model)
	assert.Equal(t, "4", f.Manufacturer)
	assert.Equal(t, []string{"1", "2"}, f.Drivers)

	var s DriverSearch
	require.NoError(t, Bind(url.Values{"username": {"cho"}, "page": {"2"}}, &s))
	assert.Equal(t, "cho", s.Query())
}

func TestLoginForm(t *testing.T) {
	f := LoginForm{Username: " admin "}
	errs := f.Validate()
	assert.Equal(t, "admin", f.Username)
	assert.Equal(t, []string{MsgRequired}, errs.Get("password"))
}

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/cars/?page=2", SafeNext("/cars/?page=2", "/"))
	assert.Equal(t, "/", SafeNext("https://evil.example", "/"))
	assert.Equal(t, "/", SafeNext("//evil.example", "/"))
	assert.Equal(t, "/", SafeNext("", "/"))
}
