package router

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unknowncanwrite/ship/internal/config"
	"github.com/unknowncanwrite/ship/internal/middleware"
	"github.com/unknowncanwrite/ship/internal/notify"
	"github.com/unknowncanwrite/ship/internal/shipment/model"
	"github.com/unknowncanwrite/ship/internal/shipment/service"
	"github.com/unknowncanwrite/ship/internal/uploads"
)

// Dependencies are the services the HTTP surface is built on.
type Dependencies struct {
	Shipments      service.ShipmentStore
	Progress       *service.ProgressService
	Documents      *service.DocumentService
	Contacts       *service.ContactService
	Notes          *service.NoteService
	Files          *uploads.UploadService
	CORS           *config.CORSConfig
	MaxUploadBytes int64
	HealthCheck    func() error
}

// New builds the gin engine with every API route mounted.
func New(deps Dependencies) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.RequestLogger())
	if deps.CORS != nil {
		engine.Use(middleware.CORS(deps.CORS))
	}

	engine.GET("/health", func(c *gin.Context) {
		if deps.HealthCheck != nil {
			if err := deps.HealthCheck(); err != nil {
				slog.ErrorContext(c.Request.Context(), "health check failed", "error", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	{
		sr := NewShipmentRouter(deps.Shipments, deps.Progress, deps.Documents, deps.MaxUploadBytes)
		sr.Register(api.Group("/shipments"))

		dr := NewDirectoryRouter(deps.Contacts, deps.Notes)
		dr.Register(api)

		if deps.Files != nil {
			uploads.NewHTTPHandler(deps.Files, deps.MaxUploadBytes).Register(api.Group("/files"))
		}
	}

	return engine
}

// writeError maps service errors onto status codes. Anything unrecognised is
// logged and reported as a 500 without detail.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrInvalidParameter):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrShipmentNotFound),
		errors.Is(err, model.ErrCustomTaskNotFound),
		errors.Is(err, model.ErrTodoItemNotFound),
		errors.Is(err, model.ErrDocumentNotFound),
		errors.Is(err, model.ErrContactNotFound),
		errors.Is(err, model.ErrNoteNotFound),
		errors.Is(err, errTaskNotInPlan):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrShipmentAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, notify.ErrNoMessage):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
