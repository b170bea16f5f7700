// internal/infra/httpserver/reminder_handlers.go
package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"billing_reminder_api/internal/app"
	"billing_reminder_api/internal/domain/billing"
)

// ReminderHandler exposes the billing reminder job over HTTP.
type ReminderHandler struct {
	service app.ReminderService
	log     *logrus.Logger
}

func NewReminderHandler(service app.ReminderService, log *logrus.Logger) *ReminderHandler {
	return &ReminderHandler{service: service, log: log}
}

// Run triggers one synchronous reminder evaluation. Sheet-level failures
// (file missing, unreadable, required columns absent) come back as 400 with
// the error text as detail; per-record channel failures are embedded in the
// 200 summary instead.
func (h *ReminderHandler) Run(c *gin.Context) {
	var req billing.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusBadRequest, "corpo da requisicao invalido: "+err.Error())
		return
	}

	summary, err := h.service.Run(c.Request.Context(), req)
	if err != nil {
		detail(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, summary)
}
