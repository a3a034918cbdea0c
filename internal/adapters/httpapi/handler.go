// Package httpapi exposes the timer over HTTP: REST control endpoints and a
// websocket stream of snapshots.
package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/xvierd/countdown-cli/internal/logger"
	"github.com/xvierd/countdown-cli/internal/ports"
)

// Handler wires the HTTP layer to the state provider and logging.
type Handler struct {
	state ports.StateProvider
	log   *logger.Logger
}

// NewHandler constructs a new HTTP handler. A nil logger discards output.
func NewHandler(state ports.StateProvider, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{state: state, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/health", h.health)

	h.registerTimerRoutes(router)
	h.registerNotesRoutes(router)

	return router
}

func (h *Handler) registerTimerRoutes(r *gin.Engine) {
	timer := r.Group("/timer")
	{
		timer.GET("", h.getTimer)
		timer.POST("/start", h.startTimer)
		timer.POST("/pause", h.pauseTimer)
		timer.POST("/resume", h.resumeTimer)
		timer.POST("/reset", h.resetTimer)
		timer.POST("/shortcut/:index", h.applyShortcut)
		timer.GET("/presets", h.listPresets)
		timer.GET("/events", h.wsEvents)
	}
}

func (h *Handler) registerNotesRoutes(r *gin.Engine) {
	notes := r.Group("/notes")
	{
		notes.GET("", h.getNotes)
		notes.PUT("", h.putNotes)
		notes.DELETE("", h.deleteNotes)
	}
}
