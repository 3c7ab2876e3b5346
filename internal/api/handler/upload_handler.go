package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/protolab/portal-api/internal/infrastructure/storage"
)

// UploadHandler stores and serves chat/CMS attachments.
type UploadHandler struct {
	store *storage.AttachmentStore
}

func NewUploadHandler(store *storage.AttachmentStore) *UploadHandler {
	return &UploadHandler{store: store}
}

type uploadResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Upload stores one multipart file under the "file" field.
//
// @Summary      Upload an attachment
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "File to store"
// @Success      201   {object}  uploadResponse
// @Failure      400   {object}  map[string]string
// @Router       /uploads [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file field required")
	}

	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer f.Close()

	id, url, err := h.store.Put(fh.Filename, f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, uploadResponse{ID: id, URL: url})
}

// Download streams a stored object.
//
// @Summary      Download an attachment
// @Tags         uploads
// @Produce      octet-stream
// @Param        id  path  string  true  "Object id"
// @Success      200
// @Failure      404  {object}  map[string]string
// @Router       /uploads/{id} [get]
func (h *UploadHandler) Download(c echo.Context) error {
	stream, err := h.store.Open(c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "object not found")
		}
		return err
	}
	defer stream.Close()

	return c.Stream(http.StatusOK, echo.MIMEOctetStream, stream)
}
