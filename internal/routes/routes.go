package routes

import (
	"giglink_backend/internal/config"
	"giglink_backend/internal/handlers"
	"giglink_backend/internal/middleware"
	"giglink_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint onto the router. The auth middleware
// runs per group so public endpoints never touch the session store.
func RegisterRoutes(router *gin.Engine, h *handlers.AppHandlers) {
	router.Static("/uploads", config.GetConfig().Storage.BasePath)

	api := router.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/request-otp", h.Auth.RequestOTP)
		auth.POST("/verify-otp", h.Auth.VerifyOTP)
		auth.POST("/firebase-signin", h.Auth.FirebaseSignIn)

		authed := auth.Group("", middleware.AuthMiddleware())
		{
			authed.POST("/logout", h.Auth.Logout)
			authed.DELETE("/delete-profile", h.Auth.DeleteProfile)
		}
	}

	user := api.Group("/user", middleware.AuthMiddleware())
	{
		user.GET("/profile", h.User.GetProfile)
		user.PUT("/profile", h.User.UpdateProfile)
		user.PUT("/recruiter-profile",
			middleware.RequireRoles(models.UserRoleRecruiter),
			h.User.UpdateRecruiterProfile)
		user.GET("",
			middleware.RequireRoles(models.UserRoleAdmin),
			h.User.ListUsers)
	}

	post := api.Group("/post", middleware.AuthMiddleware())
	{
		recruiter := middleware.RequireRoles(models.UserRoleRecruiter, models.UserRoleAdmin)
		seeker := middleware.RequireRoles(models.UserRoleUser)

		post.POST("", recruiter, h.Post.CreatePost)
		post.PUT("/update/:id", recruiter, h.Post.UpdatePost)
		post.DELETE("/delete/:id", recruiter, h.Post.DeletePost)

		post.GET("/get-all", seeker, h.Post.GetAllPosts)
		post.POST("/apply/:id", seeker, h.Post.Apply)
		post.GET("/applied/get-all", seeker, h.Post.GetAppliedPosts)
		post.POST("/save/:id", seeker, h.Post.SavePost)
		post.DELETE("/save/:id", seeker, h.Post.UnsavePost)
		post.GET("/saved/get-all", seeker, h.Post.GetSavedPosts)

		post.PUT("/update-status/:id",
			middleware.RequireRoles(models.UserRoleRecruiter),
			h.Post.UpdateApplicationStatus)
		post.GET("/get-all-post",
			middleware.RequireRoles(models.UserRoleRecruiter),
			h.Post.GetOwnerDashboard)
		post.GET("/:id/applications",
			middleware.RequireRoles(models.UserRoleRecruiter),
			h.Post.ListApplications)

		// Any authenticated role may inspect a single post; owners get the
		// same NotFound as everyone else once it is soft-deleted.
		post.GET("/:id", h.Post.GetPostByID)
	}

	master := api.Group("/master")
	{
		master.GET("/categories", h.Master.ListCategories)
	}
}
