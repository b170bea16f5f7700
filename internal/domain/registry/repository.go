// internal/domain/registry/repository.go
package registry

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the operations for storing and retrieving Service
// entities. The only provided implementation is an in-memory map guarded by a
// mutex; individual calls are mutually exclusive but there is no atomicity
// across calls (a list-then-update sequence is not transactional).
type Repository interface {
	Insert(ctx context.Context, service Service) error
	GetByID(ctx context.Context, id uuid.UUID) (Service, error)
	Replace(ctx context.Context, service Service) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]Service, error) // ordered by creation time
}
