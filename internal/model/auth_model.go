package model

import "time"

// Admin represents an entry in the admins table.
type Admin struct {
	AdminID      int64      `json:"adminid"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}
