// internal/domain/registry/service.go
package registry

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the operational state of a registered service.
type Status string

const (
	StatusActive      Status = "active"
	StatusInactive    Status = "inactive"
	StatusMaintenance Status = "maintenance"
)

// Valid reports whether the status is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusMaintenance:
		return true
	}
	return false
}

// Service is an internal service registered in the in-memory registry.
type Service struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	EndpointURL string    `json:"endpoint_url"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewService carries the attributes required to register a service.
type NewService struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	EndpointURL string `json:"endpoint_url"`
	Status      Status `json:"status"`
}

// ServiceUpdate carries a partial update; nil fields are left untouched.
type ServiceUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	EndpointURL *string `json:"endpoint_url"`
	Status      *Status `json:"status"`
}
