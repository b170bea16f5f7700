// internal/infra/httpserver/service_handlers.go
package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"billing_reminder_api/internal/app"
	"billing_reminder_api/internal/domain/registry"
	"billing_reminder_api/internal/infra/memory"
)

// ServiceHandler exposes the CRUD surface of the in-memory service registry.
type ServiceHandler struct {
	registry *app.RegistryService
	log      *logrus.Logger
}

func NewServiceHandler(registry *app.RegistryService, log *logrus.Logger) *ServiceHandler {
	return &ServiceHandler{registry: registry, log: log}
}

// List returns all registered services.
func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.registry.List(c.Request.Context())
	if err != nil {
		detail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, services)
}

// Create registers a new service entry.
func (h *ServiceHandler) Create(c *gin.Context) {
	var input registry.NewService
	if err := c.ShouldBindJSON(&input); err != nil {
		detail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	service, err := h.registry.Create(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, service)
}

// Get retrieves a service by identifier.
func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := h.serviceID(c)
	if !ok {
		return
	}

	service, err := h.registry.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

// Update applies a partial update to an existing service.
func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := h.serviceID(c)
	if !ok {
		return
	}

	var update registry.ServiceUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		detail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	service, err := h.registry.Update(c.Request.Context(), id, update)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

// Delete removes a service.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := h.serviceID(c)
	if !ok {
		return
	}

	if err := h.registry.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ServiceHandler) serviceID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		detail(c, http.StatusBadRequest, "invalid service id")
		return uuid.UUID{}, false
	}
	return id, true
}

func (h *ServiceHandler) writeError(c *gin.Context, err error) {
	var validationErr *app.ValidationError
	switch {
	case errors.Is(err, memory.ErrServiceNotFound):
		detail(c, http.StatusNotFound, err.Error())
	case errors.As(err, &validationErr):
		detail(c, http.StatusBadRequest, validationErr.Reason)
	default:
		h.log.Errorf("Unexpected registry error: %v", err)
		detail(c, http.StatusInternalServerError, err.Error())
	}
}
