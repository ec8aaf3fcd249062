package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/travel-journal/internal/storage"
)

func multipartImageRequest(t *testing.T, field, filename, content string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = io.WriteString(fw, content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/image-upload", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req, httptest.NewRecorder()
}

func TestUploadImage(t *testing.T) {
	var savedName string
	var savedBytes []byte
	assets := &mockAssetStore{
		saveFn: func(_ context.Context, filename string, r io.Reader) error {
			savedName = filename
			b, err := io.ReadAll(r)
			savedBytes = b
			return err
		},
	}
	h := NewImageHandler(testCfg(), assets)

	req, rec := multipartImageRequest(t, "image", "photo.jpg", "jpeg-bytes")
	c := echo.New().NewContext(req, rec)
	require.NoError(t, h.Upload(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, "jpeg-bytes", string(savedBytes))
	assert.True(t, strings.HasSuffix(savedName, ".jpg"))
	assert.NotEqual(t, "photo.jpg", savedName, "stored name must be generated")

	url := extractJSONField(t, rec.Body.String(), "imageUrl")
	assert.Equal(t, "http://localhost:8000/uploads/"+savedName, url)
}

func TestUploadImageMissingFile(t *testing.T) {
	h := NewImageHandler(testCfg(), &mockAssetStore{})

	// Wrong field name: the handler only accepts "image".
	req, rec := multipartImageRequest(t, "file", "photo.jpg", "x")
	c := echo.New().NewContext(req, rec)
	require.NoError(t, h.Upload(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No image uploaded")
}

func TestDeleteImageRequiresParameter(t *testing.T) {
	h := NewImageHandler(testCfg(), &mockAssetStore{})

	c, rec := newJSONContext(http.MethodDelete, "/delete-image", "")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "imageUrl parameter is required")
}

func TestDeleteImageIsIdempotent(t *testing.T) {
	// Real local store: a second delete of the same URL must be a non-fatal
	// not-found with an HTTP-level success, never an error.
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), "abc.jpg", strings.NewReader("x")))

	h := NewImageHandler(testCfg(), store)
	target := "/delete-image?imageUrl=http://localhost:8000/uploads/abc.jpg"

	c, rec := newJSONContext(http.MethodDelete, target, "")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Image deleted successfully")

	c, rec = newJSONContext(http.MethodDelete, target, "")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Image not found")
}

func TestDeleteImageIgnoresDirectoryAndQueryComponents(t *testing.T) {
	var removed string
	assets := &mockAssetStore{
		removeFn: func(_ context.Context, filename string) error {
			removed = filename
			return nil
		},
	}
	h := NewImageHandler(testCfg(), assets)

	c, rec := newJSONContext(http.MethodDelete,
		"/delete-image?imageUrl=http%3A%2F%2Fcdn.example.com%2Fa%2Fb%2Fpic.png%3Fw%3D100", "")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pic.png", removed)
}
