package models

import "time"

type Session struct {
	ID        string    `json:"id"`
	DriverID  int64     `json:"driver_id"`
	Visits    int       `json:"visits"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
