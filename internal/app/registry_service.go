// internal/app/registry_service.go
package app

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"billing_reminder_api/internal/domain/registry"
)

const (
	serviceNameMinLen        = 3
	serviceNameMaxLen        = 100
	serviceDescriptionMaxLen = 500
)

// ValidationError reports a service payload that failed validation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// RegistryService implements the business rules of the in-memory service
// registry on top of a registry.Repository.
type RegistryService struct {
	repo registry.Repository
}

func NewRegistryService(repo registry.Repository) *RegistryService {
	return &RegistryService{repo: repo}
}

// Create validates the payload, assigns an id and timestamps, and stores the
// new service.
func (s *RegistryService) Create(ctx context.Context, input registry.NewService) (registry.Service, error) {
	if err := validateName(input.Name); err != nil {
		return registry.Service{}, err
	}
	if err := validateDescription(input.Description); err != nil {
		return registry.Service{}, err
	}
	if err := validateEndpointURL(input.EndpointURL); err != nil {
		return registry.Service{}, err
	}

	status := input.Status
	if status == "" {
		status = registry.StatusActive
	}
	if !status.Valid() {
		return registry.Service{}, validationErrorf("unknown service status: %s", status)
	}

	now := time.Now().UTC()
	service := registry.Service{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		EndpointURL: input.EndpointURL,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, service); err != nil {
		return registry.Service{}, fmt.Errorf("failed to store service: %w", err)
	}
	return service, nil
}

// List returns all registered services ordered by creation time.
func (s *RegistryService) List(ctx context.Context) ([]registry.Service, error) {
	return s.repo.List(ctx)
}

// Get returns a single service by id.
func (s *RegistryService) Get(ctx context.Context, id uuid.UUID) (registry.Service, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies a partial update to an existing service. Note the
// fetch-then-replace sequence is not atomic with respect to concurrent
// updates of the same id; the registry only guarantees per-call exclusion.
func (s *RegistryService) Update(ctx context.Context, id uuid.UUID, update registry.ServiceUpdate) (registry.Service, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return registry.Service{}, err
	}

	if update.Name != nil {
		if err := validateName(*update.Name); err != nil {
			return registry.Service{}, err
		}
		current.Name = *update.Name
	}
	if update.Description != nil {
		if err := validateDescription(*update.Description); err != nil {
			return registry.Service{}, err
		}
		current.Description = *update.Description
	}
	if update.EndpointURL != nil {
		if err := validateEndpointURL(*update.EndpointURL); err != nil {
			return registry.Service{}, err
		}
		current.EndpointURL = *update.EndpointURL
	}
	if update.Status != nil {
		if !update.Status.Valid() {
			return registry.Service{}, validationErrorf("unknown service status: %s", *update.Status)
		}
		current.Status = *update.Status
	}
	current.UpdatedAt = time.Now().UTC()

	if err := s.repo.Replace(ctx, current); err != nil {
		return registry.Service{}, err
	}
	return current, nil
}

// Delete removes a service from the registry.
func (s *RegistryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func validateName(name string) error {
	if len(name) < serviceNameMinLen || len(name) > serviceNameMaxLen {
		return validationErrorf("service name must be between %d and %d characters", serviceNameMinLen, serviceNameMaxLen)
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) > serviceDescriptionMaxLen {
		return validationErrorf("service description must be at most %d characters", serviceDescriptionMaxLen)
	}
	return nil
}

func validateEndpointURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return validationErrorf("endpoint_url must be a valid http(s) URL")
	}
	return nil
}
