package models

import (
	"strings"
	"time"
)

type Driver struct {
	ID            int64      `json:"id"`
	Username      string     `json:"username"`
	Password      string     `json:"-"` // bcrypt hash
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Email         string     `json:"email"`
	LicenseNumber string     `json:"license_number"`
	IsStaff       bool       `json:"is_staff"`
	IsSuperuser   bool       `json:"is_superuser"`
	IsActive      bool       `json:"is_active"`
	DateJoined    time.Time  `json:"date_joined"`
	LastLogin     *time.Time `json:"last_login"`

	// CarCount is filled on list queries, Cars on detail lookups.
	CarCount int    `json:"car_count"`
	Cars     []*Car `json:"cars,omitempty"`
}

func (d Driver) String() string {
	return d.Username + " (" + d.FirstName + " " + d.LastName + ")"
}

func (d Driver) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

type CreateDriver struct {
	Username      string `json:"username"`
	Password      string `json:"-"` // already hashed
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	LicenseNumber string `json:"license_number"`
	IsStaff       bool   `json:"is_staff"`
	IsSuperuser   bool   `json:"is_superuser"`
}

type UpdateDriver struct {
	ID            int64  `json:"id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	LicenseNumber string `json:"license_number"`
	IsStaff       bool   `json:"is_staff"`
	IsActive      bool   `json:"is_active"`
}
