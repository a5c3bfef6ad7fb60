package handlers

import (
	"errors"
	"net/http"

	"restaurant-cms/actions"
	"restaurant-cms/models"
	"restaurant-cms/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ActionHandler applies admin form actions to the document. Every response
// carries the resulting document so the admin view can re-render, whether or
// not anything changed.
type ActionHandler struct {
	Store  *store.Store
	IDs    *actions.IDGenerator
	Logger *zap.Logger
}

func (h *ActionHandler) Submit(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse form"})
		return
	}
	form := c.Request.PostForm

	action := form.Get("action")
	if action == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action is required"})
		return
	}

	input, known := actions.Parse(action, form)

	doc, err := h.Store.Update(c.Request.Context(), func(doc models.Document) (models.Document, bool, error) {
		if !known {
			return doc, false, nil
		}
		return actions.Apply(doc, input, h.IDs), true, nil
	})
	if err != nil {
		h.Logger.Error("action failed", zap.String("action", action), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save document"})
		return
	}

	message := ""
	if known {
		message = actions.Message(input.Action())
		h.Logger.Info("action applied", zap.String("action", action))
	} else {
		h.Logger.Debug("unknown action ignored", zap.String("action", action))
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  message,
		"action":   action,
		"document": doc,
	})
}
