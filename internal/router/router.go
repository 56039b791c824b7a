package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/inkwell/internal/handler"
)

const requestIDHeader = "X-Request-ID"

// SetupRouter configures the Gin engine and the full call surface.
func SetupRouter(api *handler.API, sessionSecret string) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("inkwell_session", store))
	r.Use(requestID())

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":    "ok",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
		})

		apiGroup.POST("/register", api.Register)
		apiGroup.POST("/login", api.Login)
		apiGroup.POST("/logout", api.Logout)

		apiGroup.GET("/categories", api.GetCategories)
		apiGroup.GET("/tags", api.GetTags)
		apiGroup.GET("/posts", api.GetBlogPosts)
		apiGroup.GET("/posts/slug/:slug", api.GetBlogPostBySlug)
		apiGroup.GET("/posts/:id/comments", api.GetPostComments)
		apiGroup.POST("/comments", api.CreateComment)

		auth := apiGroup.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/me", api.Me)
			auth.GET("/me/posts", api.GetAuthorPosts)

			auth.POST("/categories", api.CreateCategory)
			auth.POST("/tags", api.CreateTag)

			auth.POST("/posts", api.CreateBlogPost)
			auth.PUT("/posts/:id", api.UpdateBlogPost)
			auth.DELETE("/posts/:id", api.DeleteBlogPost)

			auth.PUT("/comments/:id/status", api.UpdateCommentStatus)
		}
	}

	return r
}

// requestID tags every request so log lines and client reports can be
// correlated. An incoming id is kept, otherwise one is generated.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}
