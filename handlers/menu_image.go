package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"restaurant-cms/firebase"
	"restaurant-cms/models"
	"restaurant-cms/store"
	"restaurant-cms/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errMenuItemNotFound = errors.New("menu item not found")

// MenuImageHandler attaches uploaded images to menu items.
type MenuImageHandler struct {
	Store   *store.Store
	Storage firebase.StorageClient
	Logger  *zap.Logger
}

// Upload stores an image for the menu item and points the item at it. The
// image comes from a multipart "image" file or is copied from "image_url".
// The item's previous image is removed from the bucket.
func (h *MenuImageHandler) Upload(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item ID"})
		return
	}
	if h.Storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage is not configured"})
		return
	}

	ctx := c.Request.Context()
	imageURL, status, err := h.storeImage(c, id)
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	var previous string
	doc, err := h.Store.Update(ctx, func(doc models.Document) (models.Document, bool, error) {
		next := doc.Clone()
		for i := range next.MenuItems {
			if next.MenuItems[i].ID == id {
				previous = next.MenuItems[i].Image
				next.MenuItems[i].Image = imageURL
				return next, true, nil
			}
		}
		return doc, false, errMenuItemNotFound
	})
	if err != nil {
		h.removeObject(ctx, imageURL)
		if errors.Is(err, errMenuItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		h.Logger.Error("failed to save menu image", zap.Int64("item_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save document"})
		return
	}

	if previous != "" && previous != imageURL {
		h.removeObject(ctx, previous)
	}

	var item models.MenuItem
	for _, it := range doc.MenuItems {
		if it.ID == id {
			item = it
			break
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Image updated successfully!",
		"image":   imageURL,
		"item":    item,
	})
}

// storeImage uploads the request's image and returns its public URL, or an error
// safe to show the client along with the status to answer with.
func (h *MenuImageHandler) storeImage(c *gin.Context, id int64) (string, int, error) {
	ctx := c.Request.Context()

	if fh, err := c.FormFile("image"); err == nil {
		file, err := fh.Open()
		if err != nil {
			return "", http.StatusBadRequest, errors.New("Invalid image")
		}
		defer file.Close()

		contentType, err := utils.DetectImageType(fh, file)
		if err != nil {
			return "", http.StatusBadRequest, err
		}

		url, err := h.Storage.UploadMenuImage(ctx, id, file, fh.Filename, contentType)
		if err != nil {
			h.Logger.Error("image upload failed", zap.Int64("item_id", id), zap.Error(err))
			return "", http.StatusInternalServerError, errors.New("Image upload failed")
		}
		return url, 0, nil
	}

	if source := c.PostForm("image_url"); source != "" {
		url, err := h.Storage.ImportMenuImage(ctx, id, source)
		if err != nil {
			h.Logger.Warn("image import failed", zap.Int64("item_id", id), zap.Error(err))
			return "", http.StatusBadRequest, errors.New("Failed to import image from URL")
		}
		return url, 0, nil
	}

	return "", http.StatusBadRequest, errors.New("An image file or image_url is required")
}

// removeObject deletes an image this service uploaded. URLs outside the
// bucket are left alone.
func (h *MenuImageHandler) removeObject(ctx context.Context, imageURL string) {
	objectPath, err := utils.ExtractObjectPath(imageURL, h.Storage.Bucket())
	if err != nil {
		return
	}
	if err := h.Storage.DeleteFile(ctx, objectPath); err != nil {
		h.Logger.Warn("failed to delete image from storage", zap.String("object", objectPath), zap.Error(err))
	}
}
