package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xvierd/countdown-cli/internal/domain"
)

const (
	statusOK = "ok"

	errInvalidBodyPref = "invalid body: "
	errInvalidIndex    = "shortcut index must be a positive integer"
	errGetState        = "failed to load timer state"
)

type startRequest struct {
	Input string `json:"input"`
}

// statusFor maps timer errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidDuration):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrShortcutNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrShortcutsDisabled),
		errors.Is(err, domain.ErrInputLocked):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondTransition writes the snapshot, or the error together with the
// unchanged snapshot.
func (h *Handler) respondTransition(c *gin.Context, action string, snap domain.Snapshot, err error) {
	if err != nil {
		code := statusFor(err)
		if code == http.StatusInternalServerError {
			h.log.Errorw("timer_"+action+"_failed", "err", err)
		} else {
			h.log.Debugw("timer_"+action+"_rejected", "err", err)
		}
		c.JSON(code, gin.H{"error": err.Error(), "state": snap})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

func (h *Handler) getTimer(c *gin.Context) {
	snap, err := h.state.GetTimerState(c.Request.Context())
	if err != nil {
		h.log.Errorw("timer_get_state_failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errGetState})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *Handler) startTimer(c *gin.Context) {
	var req startRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
			return
		}
	}

	snap, err := h.state.StartTimer(c.Request.Context(), req.Input)
	h.respondTransition(c, "start", snap, err)
}

func (h *Handler) pauseTimer(c *gin.Context) {
	snap, err := h.state.PauseTimer(c.Request.Context())
	h.respondTransition(c, "pause", snap, err)
}

func (h *Handler) resumeTimer(c *gin.Context) {
	snap, err := h.state.ResumeTimer(c.Request.Context())
	h.respondTransition(c, "resume", snap, err)
}

func (h *Handler) resetTimer(c *gin.Context) {
	snap, err := h.state.ResetTimer(c.Request.Context())
	h.respondTransition(c, "reset", snap, err)
}

// applyShortcut takes the 1-based preset position from the path.
func (h *Handler) applyShortcut(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidIndex})
		return
	}

	snap, err := h.state.ApplyShortcut(c.Request.Context(), index-1)
	h.respondTransition(c, "shortcut", snap, err)
}

func (h *Handler) listPresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": h.state.ListPresets(c.Request.Context())})
}
