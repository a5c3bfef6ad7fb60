package handlers

import (
	"bytes"
	"net/http"
	"os"

	"restaurant-cms/render"
	"restaurant-cms/store"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DocumentHandler serves the document to the admin and the public site.
type DocumentHandler struct {
	Store    *store.Store
	Renderer *render.Renderer
	// PageTemplate is the site page used for previews. Empty disables them.
	PageTemplate string
	Logger       *zap.Logger
}

func (h *DocumentHandler) GetDocument(c *gin.Context) {
	doc, err := h.Store.Load(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to load document", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load document"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// encoded returns the stored form of the current document.
func (h *DocumentHandler) encoded(c *gin.Context) ([]byte, bool) {
	doc, err := h.Store.Load(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to load document", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load document"})
		return nil, false
	}
	body, err := store.MarshalDocument(doc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode document"})
		return nil, false
	}
	return body, true
}

// PublicJSON serves the document the way the site fetches it.
func (h *DocumentHandler) PublicJSON(c *gin.Context) {
	body, ok := h.encoded(c)
	if !ok {
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// ProjectionScript serves the document as an assignment to
// window.restaurantData.
func (h *DocumentHandler) ProjectionScript(c *gin.Context) {
	body, ok := h.encoded(c)
	if !ok {
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "application/javascript; charset=utf-8", store.ProjectionScript(body))
}

// Preview renders the configured site page with the current document. An
// optional ?category= applies the menu filter.
func (h *DocumentHandler) Preview(c *gin.Context) {
	if h.PageTemplate == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No page template configured"})
		return
	}

	doc, err := h.Store.Load(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to load document", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load document"})
		return
	}

	source, err := os.ReadFile(h.PageTemplate)
	if err != nil {
		h.Logger.Error("failed to read page template", zap.String("path", h.PageTemplate), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read page template"})
		return
	}

	page, err := goquery.NewDocumentFromReader(bytes.NewReader(source))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse page template"})
		return
	}
	if err := h.Renderer.RenderAll(page, doc); err != nil {
		h.Logger.Error("failed to render preview", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render preview"})
		return
	}
	if category := c.Query("category"); category != "" {
		render.FilterMenuByCategory(page, category)
	}

	html, err := page.Html()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render preview"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
