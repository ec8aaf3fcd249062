package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/travel-journal/internal/config"
	"github.com/iliyamo/travel-journal/internal/handler"
	"github.com/iliyamo/travel-journal/internal/middleware"
)

// Register wires every endpoint of the API onto the provided Echo instance.
// The route paths are part of the public contract and kept verbatim.
//
// Unauthenticated boundary operations: account creation, login and the image
// endpoints (those operate on filenames, not story ownership).  Everything
// touching stories goes through the JWT guard, so handlers always see a
// verified user_id in the context.
func Register(e *echo.Echo, cfg config.Config, a *handler.AuthHandler, s *handler.StoryHandler, img *handler.ImageHandler, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	// Account boundary.
	e.POST("/create-account", a.CreateAccount)
	e.POST("/login", a.Login)

	// Image asset boundary.
	e.POST("/image-upload", img.Upload)
	e.DELETE("/delete-image", img.Delete)

	// Owner-scoped operations behind the access guard.  Mutating routes bump
	// the owner's cache generation so cached reads never replay
	// pre-mutation state.
	cacheCfg := config.LoadCacheConfig()
	invalidate := middleware.NewCacheInvalidator(cacheCfg, rdb)
	auth := e.Group("", middleware.JWTAuth(cfg.JWTSecret))
	auth.GET("/get-user", a.GetUser)
	auth.POST("/add-daily-story", s.Add, invalidate)
	auth.POST("/edit-story/:id", s.Edit, invalidate)
	auth.DELETE("/delete-story/:id", s.Delete, invalidate)
	auth.POST("/update-is-favourite/:id", s.UpdateIsFavourite, invalidate)

	// Read endpoints additionally go through the per-user response cache.
	cache := middleware.NewRedisCache(cacheCfg, rdb)
	auth.GET("/get-all-stories", s.GetAll, cache)
	auth.GET("/search", s.Search, cache)
	auth.GET("/daily-story/filter", s.FilterByDate, cache)

	// Static files: uploaded images and bundled assets (placeholder image).
	e.Static("/"+cfg.UploadsPath, cfg.UploadsDir)
	e.Static("/"+cfg.AssetsPath, cfg.AssetsDir)
}
