// internal/infra/httpserver/server.go
package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"billing_reminder_api/internal/app"
)

// Server wires the gin router with the reminder and registry handlers.
type Server struct {
	router *gin.Engine
	log    *logrus.Logger
}

func New(reminders app.ReminderService, services *app.RegistryService, log *logrus.Logger, environment string) *Server {
	if environment == "production" || environment == "staging" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	s := &Server{router: router, log: log}
	s.setupRoutes(
		NewReminderHandler(reminders, log),
		NewServiceHandler(services, log),
	)
	return s
}

func (s *Server) setupRoutes(reminders *ReminderHandler, services *ServiceHandler) {
	s.router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API Services operando."})
	})

	api := s.router.Group("/api")
	{
		api.POST("/reminders/billing/run", reminders.Run)

		svc := api.Group("/services")
		{
			svc.GET("", services.List)
			svc.POST("", services.Create)
			svc.GET("/:id", services.Get)
			svc.PUT("/:id", services.Update)
			svc.DELETE("/:id", services.Delete)
		}
	}
}

// Handler exposes the router for http.Server and for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestLogger logs one line per request through the application logger.
func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("request handled")
	}
}

// detail writes the error payload shape shared by every endpoint.
func detail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"detail": message})
}
