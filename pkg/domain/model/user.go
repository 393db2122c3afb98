package model

import (
	"time"

	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
)

// User is the identity fabricated at login. It is never persisted.
type User struct {
	ID           types.UserID `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone,omitempty"`
	Role         types.Role   `json:"role"`
	Region       string       `json:"region"`
	Municipality string       `json:"municipality,omitempty"`
	Verified     bool         `json:"verified"`
	CreatedAt    time.Time    `json:"created_at"`
	LastAccess   time.Time    `json:"last_access"`
}

// NewUser creates a new User with a random ID
func NewUser(name, email, phone string, role types.Role, region string) *User {
	now := time.Now()
	return &User{
		ID:         types.NewUserID(),
		Name:       name,
		Email:      email,
		Phone:      phone,
		Role:       role,
		Region:     region,
		CreatedAt:  now,
		LastAccess: now,
	}
}

// UserLocation is a one-shot device geolocation fix
type UserLocation struct {
	Coordinate
	Accuracy  float64   `json:"accuracy,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
