// Package routes registers the REST surface of the development server.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/app/controllers"
	"github.com/campushub/campushub/internal/middleware"
	"github.com/campushub/campushub/models"
)

// Controllers bundles the handlers the router needs.
type Controllers struct {
	Auth         *controllers.AuthController
	Users        *controllers.UserController
	Events       *controllers.EventController
	Blogs        *controllers.BlogController
	StudyGroups  *controllers.ResourceController[*models.StudyGroup]
	Universities *controllers.ResourceController[*models.University]
	Cities       *controllers.ResourceController[*models.City]
}

// Setup registers every route. Read endpoints for public content are open;
// user data and all mutations require a bearer token.
func Setup(router *gin.Engine, ctrl Controllers, authMw *middleware.AuthMiddleware) {
	router.POST("/auth/signup", ctrl.Auth.Signup)
	router.POST("/auth/signin", ctrl.Auth.Signin)

	// public discovery endpoints
	router.GET("/events", ctrl.Events.List)
	router.GET("/events/:id", ctrl.Events.Get)
	router.GET("/blogs", ctrl.Blogs.List)
	router.GET("/blogs/:id", ctrl.Blogs.Get)
	router.GET("/study-groups", ctrl.StudyGroups.List)
	router.GET("/study-groups/:id", ctrl.StudyGroups.Get)
	router.GET("/universities", ctrl.Universities.List)
	router.GET("/cities", ctrl.Cities.List)

	authed := router.Group("", authMw.JWTAuth())

	users := authed.Group("/users")
	{
		users.GET("", ctrl.Users.List)
		users.POST("", ctrl.Users.Create)
		users.POST("/onboard", ctrl.Users.Onboard)
		users.POST("/join-event", ctrl.Users.JoinEvent)
		users.POST("/leave-event", ctrl.Users.LeaveEvent)
		users.GET("/event-bookmarks", ctrl.Users.Bookmarks)
		users.POST("/event-bookmarks", ctrl.Users.AddBookmark)
		users.DELETE("/event-bookmarks/:id", ctrl.Users.RemoveBookmark)
		users.GET("/:id", ctrl.Users.Get)
		users.PATCH("/:id", ctrl.Users.Update)
		users.DELETE("/:id", ctrl.Users.Delete)
		users.GET("/:id/events", ctrl.Users.EventsOf)
		users.GET("/:id/activity", ctrl.Users.ActivityOf)
	}

	events := authed.Group("/events")
	{
		events.POST("", ctrl.Events.Create)
		events.PATCH("/:id", ctrl.Events.Update)
		events.DELETE("/:id", ctrl.Events.Delete)
		events.POST("/upload-event-image", ctrl.Events.UploadImage)
	}

	blogs := authed.Group("/blogs")
	{
		blogs.POST("", ctrl.Blogs.Create)
		blogs.PATCH("/:id", ctrl.Blogs.Update)
		blogs.DELETE("/:id", ctrl.Blogs.Delete)
	}
	authed.POST("/uploads", ctrl.Blogs.Upload)

	groups := authed.Group("/study-groups")
	{
		groups.POST("", ctrl.StudyGroups.Create)
		groups.PATCH("/:id", ctrl.StudyGroups.Update)
		groups.DELETE("/:id", ctrl.StudyGroups.Delete)
	}

	lookups := authed.Group("", middleware.RequireRole(string(models.RoleAdmin)))
	{
		lookups.POST("/universities", ctrl.Universities.Create)
		lookups.PATCH("/universities/:id", ctrl.Universities.Update)
		lookups.DELETE("/universities/:id", ctrl.Universities.Delete)
		lookups.POST("/cities", ctrl.Cities.Create)
		lookups.PATCH("/cities/:id", ctrl.Cities.Update)
		lookups.DELETE("/cities/:id", ctrl.Cities.Delete)
	}
}
