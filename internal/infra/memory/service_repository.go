// internal/infra/memory/service_repository.go
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"billing_reminder_api/internal/domain/registry"
)

// Custom errors
var ErrServiceNotFound = fmt.Errorf("service not found")

// ServiceRepository is an in-memory implementation of registry.Repository.
// A single mutex guards the map; calls are mutually exclusive but nothing is
// transactional across calls.
type ServiceRepository struct {
	mu       sync.Mutex
	services map[uuid.UUID]registry.Service
}

func NewServiceRepository() *ServiceRepository {
	return &ServiceRepository{
		services: make(map[uuid.UUID]registry.Service),
	}
}

func (r *ServiceRepository) Insert(_ context.Context, service registry.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[service.ID] = service
	return nil
}

func (r *ServiceRepository) GetByID(_ context.Context, id uuid.UUID) (registry.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	service, ok := r.services[id]
	if !ok {
		return registry.Service{}, fmt.Errorf("%w: %s", ErrServiceNotFound, id)
	}
	return service, nil
}

func (r *ServiceRepository) Replace(_ context.Context, service registry.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[service.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrServiceNotFound, service.ID)
	}
	r.services[service.ID] = service
	return nil
}

func (r *ServiceRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[id]; !ok {
		return fmt.Errorf("%w: %s", ErrServiceNotFound, id)
	}
	delete(r.services, id)
	return nil
}

func (r *ServiceRepository) List(_ context.Context) ([]registry.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	services := make([]registry.Service, 0, len(r.services))
	for _, service := range r.services {
		services = append(services, service)
	}
	sort.Slice(services, func(i, j int) bool {
		return services[i].CreatedAt.Before(services[j].CreatedAt)
	})
	return services, nil
}
