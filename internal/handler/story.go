package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-journal/internal/config"
	"github.com/iliyamo/travel-journal/internal/queue"
	"github.com/iliyamo/travel-journal/internal/repository"
	queue_publisher "github.com/iliyamo/travel-journal/internal/service"
	"github.com/iliyamo/travel-journal/internal/storage"
)

// StoryHandler implements the story lifecycle: create, list, edit, delete,
// favourite toggle, text search and date-range filter.  Every handler first
// resolves the acting identity placed in the context by the JWT middleware
// and passes it into the owner-filtered store methods.
type StoryHandler struct {
	Cfg     config.Config
	Stories StoryStore
	Assets  storage.AssetStore
	// Publish sends the story.deleted audit event.  Replaced in tests.
	Publish func(ctx context.Context, ev queue.StoryDeletedEvent) error
}

func NewStoryHandler(cfg config.Config, stories StoryStore, assets storage.AssetStore) *StoryHandler {
	return &StoryHandler{
		Cfg:     cfg,
		Stories: stories,
		Assets:  assets,
		Publish: queue_publisher.PublishStoryDeleted,
	}
}

// storyReq is the request body shared by add and edit.  VisitedDate stays
// untyped because clients send it as an epoch-millisecond number or numeric
// string; epochMillis sorts that out.
type storyReq struct {
	Title           string          `json:"title"`
	Story           string          `json:"story"`
	VisitedLocation json.RawMessage `json:"visitedLocation"`
	ImageURL        string          `json:"imageUrl"`
	VisitedDate     any             `json:"visitedDate"`
}

func hasLocation(loc json.RawMessage) bool {
	s := strings.TrimSpace(string(loc))
	return s != "" && s != "null"
}

// Add handles POST /add-daily-story.
func (h *StoryHandler) Add(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": true, "message": "unauthorized"})
	}
	var req storyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid body"})
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Story) == "" ||
		!hasLocation(req.VisitedLocation) || strings.TrimSpace(req.ImageURL) == "" || req.VisitedDate == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "All fields are required"})
	}
	visited, ok := epochMillis(req.VisitedDate)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "visitedDate must be an epoch-millisecond timestamp"})
	}
	// A zero timestamp is an absent date, not January 1970.
	if visited.UnixMilli() == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "All fields are required"})
	}

	st := &repository.Story{
		UserID:          ownerID,
		Title:           req.Title,
		Story:           req.Story,
		VisitedLocation: req.VisitedLocation,
		ImageURL:        req.ImageURL,
		VisitedDate:     visited,
		IsFavourite:     false,
	}
	if err := h.Stories.Create(c.Request().Context(), st); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": err.Error()})
	}
	return c.JSON(http.StatusCreated, echo.Map{"story": st, "message": "Added Successfully"})
}

// GetAll handles GET /get-all-stories.  The response key is the singular
// "story"; existing clients depend on it.
func (h *StoryHandler) GetAll(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": true, "message": "unauthorized"})
	}
	items, err := h.Stories.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"story": items})
}

// Edit handles POST /edit-story/:id.  All mutable fields are replaced in
// place.  An empty imageUrl is swapped for the placeholder asset so an edit
// never leaves a story without a renderable image.
func (h *StoryHandler) Edit(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": true, "message": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid id"})
	}
	var req storyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid body"})
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Story) == "" ||
		!hasLocation(req.VisitedLocation) || req.VisitedDate == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "All fields are required"})
	}
	visited, ok := epochMillis(req.VisitedDate)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "visitedDate must be an epoch-millisecond timestamp"})
	}
	if visited.UnixMilli() == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "All fields are required"})
	}
	imageURL := strings.TrimSpace(req.ImageURL)
	if imageURL == "" {
		imageURL = h.Cfg.PlaceholderImageURL()
	}

	st, err := h.Stories.GetByIDAndOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrStoryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": true, "message": "Daily story not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": err.Error()})
	}

	st.Title = req.Title
	st.Story = req.Story
	st.VisitedLocation = req.VisitedLocation
	st.ImageURL = imageURL
	st.VisitedDate = visited

	if err := h.Stories.Update(c.Request().Context(), st); err != nil {
		if errors.Is(err, repository.ErrStoryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": true, "message": "Daily story not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"story": st, "message": "Update Successful"})
}

// Delete handles DELETE /delete-story/:id.  The record deletion is the
// success criterion; removing the referenced image file is best-effort and
// decoupled from the response, as is publishing the audit event.
func (h *StoryHandler) Delete(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": true, "message": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid id"})
	}

	st, err := h.Stories.GetByIDAndOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrStoryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": true, "message": "Daily story not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": err.Error()})
	}
	if err := h.Stories.DeleteByIDAndOwner(c.Request().Context(), id, ownerID); err != nil {
		if errors.Is(err, repository.ErrStoryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": true, "message": "Daily story not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": err.Error()})
	}

	// Image cleanup runs detached from the request.  A file that is already
	// gone is fine; anything else is only logged.
	if name := storage.FilenameFromURL(st.ImageURL); name != "" {
		go func() {
			if err := h.Assets.Remove(context.Background(), name); err != nil && !errors.Is(err, storage.ErrAssetNotFound) {
				log.Printf("failed to delete image file %s: %v", name, err)
			}
		}()
	}
	if h.Publish != nil {
		ev := queue.StoryDeletedEvent{
			StoryID:   st.ID,
			UserID:    st.UserID,
			Title:     st.Title,
			ImageURL:  st.ImageURL,
			DeletedAt: time.Now().UTC().Format(time.RFC3339),
		}
		go func() { _ = h.Publish(context.Background(), ev) }()
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Travel story deleted successfully"})
}

// UpdateIsFavourite handles POST /update-is-favourite/:id.  The flag must be
// a JSON boolean; a body without one is a validation error.
func (h *StoryHandler) UpdateIsFavourite(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": true, "message": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid id"})
	}
	var req struct {
		IsFavourite *bool `json:"isFavourite"`
	}
	if err := c.Bind(&req); err != nil || req.IsFavourite == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "isFavourite is required"})
	}

	if _, err := h.Stories.GetByIDAndOwner(c.Request().Context(), id, ownerID); err != nil {
		if errors.Is(err, repository.ErrStoryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": true, "message": "Daily story not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": err.Error()})
	}
	st, err := h.Stories.SetFavourite(c.Request().Context(), id, ownerID, *req.IsFavourite)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"story": st, "message": "Update Successful"})
}

// Search handles GET /search.
func (h *StoryHandler) Search(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": true, "message": "unauthorized"})
	}
	query := strings.TrimSpace(c.QueryParam("query"))
	if query == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "query is required"})
	}
	items, err := h.Stories.Search(c.Request().Context(), ownerID, query)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"stories": items})
}

// FilterByDate handles GET /daily-story/filter.  Both bounds are required
// epoch-millisecond values.  start > end is not an error; it yields an
// empty result.
func (h *StoryHandler) FilterByDate(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": true, "message": "unauthorized"})
	}
	start, ok := epochMillisParam(c.QueryParam("startDate"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "startDate must be an epoch-millisecond timestamp"})
	}
	end, ok := epochMillisParam(c.QueryParam("endDate"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "endDate must be an epoch-millisecond timestamp"})
	}
	items, err := h.Stories.FilterByDateRange(c.Request().Context(), ownerID, start, end)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"stories": items})
}
