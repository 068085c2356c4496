package user

import (
	"errors"
	"time"
)

// Type is the role of a user. It decides the dashboard route and which
// backend endpoints a screen may call.
type Type string

const (
	TypePassenger Type = "passenger"
	TypeDriver    Type = "driver"
	TypeAdmin     Type = "admin"
)

// DriverStatus is only present on driver accounts
type DriverStatus string

const (
	DriverOnline  DriverStatus = "online"
	DriverOffline DriverStatus = "offline"
)

var ErrInvalidUserType = errors.New("invalid user type")

// User is the account record returned by the backend and persisted with the session.
type User struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	UserType     Type          `json:"user_type"`
	IsActive     bool          `json:"is_active"`
	CreatedAt    time.Time     `json:"created_at"`
	DriverStatus *DriverStatus `json:"driver_status,omitempty"`
}

// IsValid validates the user type
func (t Type) IsValid() bool {
	switch t {
	case TypePassenger, TypeDriver, TypeAdmin:
		return true
	}
	return false
}

// Label returns the localized role name
func (t Type) Label() string {
	switch t {
	case TypePassenger:
		return "Passageiro"
	case TypeDriver:
		return "Motorista"
	case TypeAdmin:
		return "Administrador"
	}
	return "Desconhecido"
}

// Label returns the localized driver availability
func (s DriverStatus) Label() string {
	if s == DriverOnline {
		return "Online"
	}
	return "Offline"
}

// StatusLabel describes the account for list rendering.
func (u *User) StatusLabel() string {
	if !u.IsActive {
		return "Inativo"
	}
	if u.UserType == TypeDriver && u.DriverStatus != nil {
		return u.DriverStatus.Label()
	}
	return "Ativo"
}
