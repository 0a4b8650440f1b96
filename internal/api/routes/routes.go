package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/llvasconcellos/devconnector/internal/api/handlers"
	"github.com/llvasconcellos/devconnector/internal/api/middleware"
	"github.com/llvasconcellos/devconnector/internal/auth"
)

type Deps struct {
	Tokens  *auth.Manager
	Users   *handlers.UserHandler
	Profile *handlers.ProfileHandler
	Posts   *handlers.PostHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	authd := middleware.BearerAuth(d.Tokens)

	users := r.Group("/api/users")
	users.GET("/test", d.Users.Test)
	users.POST("/register", d.Users.Register)
	users.POST("/login", d.Users.Login)
	users.GET("/current", authd, d.Users.Current)

	posts := r.Group("/api/posts")
	posts.GET("/test", d.Posts.Test)
	posts.GET("", d.Posts.List)
	posts.GET("/:id", d.Posts.Get)
	posts.POST("", authd, d.Posts.Create)
	posts.DELETE("/:id", authd, d.Posts.Delete)
	posts.POST("/like/:id", authd, d.Posts.Like)
	posts.POST("/comment/:id", authd, d.Posts.Comment)
	posts.DELETE("/comment/:id/:comment_id", authd, d.Posts.DeleteComment)

	profile := r.Group("/api/profile")
	profile.GET("/test", d.Profile.Test)
	profile.GET("", authd, d.Profile.Me)
	profile.GET("/all", d.Profile.All)
	profile.GET("/handle/:handle", d.Profile.ByHandle)
	profile.GET("/user/:user_id", d.Profile.ByUser)
	profile.POST("", authd, d.Profile.Upsert)
	profile.POST("/experience", authd, d.Profile.AddExperience)
	profile.POST("/education", authd, d.Profile.AddEducation)
	profile.DELETE("/experience/:exp_id", authd, d.Profile.RemoveExperience)
	profile.DELETE("/education/:edu_id", authd, d.Profile.RemoveEducation)
	profile.DELETE("", authd, d.Profile.DeleteAccount)
}
