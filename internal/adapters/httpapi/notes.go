package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type notesRequest struct {
	Text *string `json:"text" binding:"required"`
}

func (h *Handler) getNotes(c *gin.Context) {
	text, err := h.state.GetNotes(c.Request.Context())
	if err != nil {
		h.log.Errorw("notes_get_failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": text})
}

func (h *Handler) putNotes(c *gin.Context) {
	var req notesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	if err := h.state.SetNotes(c.Request.Context(), *req.Text); err != nil {
		h.log.Errorw("notes_save_failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save notes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": *req.Text})
}

func (h *Handler) deleteNotes(c *gin.Context) {
	if err := h.state.SetNotes(c.Request.Context(), ""); err != nil {
		h.log.Errorw("notes_clear_failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear notes"})
		return
	}
	c.Status(http.StatusNoContent)
}
