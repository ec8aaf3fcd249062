package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-journal/internal/config"
	"github.com/iliyamo/travel-journal/internal/storage"
)

// ImageHandler serves the upload and delete endpoints for image assets.
// Both operate on filenames, not story ownership, and are deliberately left
// unauthenticated to match the API contract.
type ImageHandler struct {
	Cfg    config.Config
	Assets storage.AssetStore
}

func NewImageHandler(cfg config.Config, assets storage.AssetStore) *ImageHandler {
	return &ImageHandler{Cfg: cfg, Assets: assets}
}

// Upload handles POST /image-upload.  The multipart field must be named
// "image".  The stored file gets a generated name and the response carries
// its fully qualified public URL.
func (h *ImageHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "No image uploaded"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": err.Error()})
	}
	defer src.Close()

	name := storage.NewFilename(fh.Filename)
	if err := h.Assets.Save(c.Request().Context(), name, src); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": err.Error()})
	}

	return c.JSON(http.StatusCreated, echo.Map{"imageUrl": h.Cfg.UploadURL(name)})
}

// Delete handles DELETE /delete-image?imageUrl=...  Deletion is idempotent
// from the caller's point of view: a file that is already gone reports a
// non-fatal "not found" with an HTTP-level success.
func (h *ImageHandler) Delete(c echo.Context) error {
	imageURL := c.QueryParam("imageUrl")
	if imageURL == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "imageUrl parameter is required"})
	}

	name := storage.FilenameFromURL(imageURL)
	if name == "" {
		return c.JSON(http.StatusOK, echo.Map{"error": true, "message": "Image not found"})
	}
	if err := h.Assets.Remove(c.Request().Context(), name); err != nil {
		if errors.Is(err, storage.ErrAssetNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"error": true, "message": "Image not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Image deleted successfully"})
}
