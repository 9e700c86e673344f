package server

import (
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/inkpress/inkpress/file_store"
	"github.com/inkpress/inkpress/server/middlewares"
	"gorm.io/gorm"
)

// AuthModeExternal selects the trusted-gateway identity sync instead of
// the built-in JWT/bcrypt scheme. Set via env AUTH_MODE.
const AuthModeExternal = "external"

type Server struct {
	DB    *gorm.DB
	Files file_store.FileStore
}

func New(db *gorm.DB, files file_store.FileStore) *Server {
	return &Server{DB: db, Files: files}
}

// Router builds the gin engine with all routes attached. Default gin
// engine with the Logger and Recovery middleware already attached.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	// debug route for testing and health check
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// local uploads are served straight off disk, S3 uploads come back
	// with absolute URLs and never hit this mount
	router.Static("/uploads", "public/uploads")

	api := router.Group("/api")
	if os.Getenv("AUTH_MODE") == AuthModeExternal {
		api.Use(middlewares.ExternalSession(s.DB))
	} else {
		api.Use(middlewares.Session(s.DB))
	}

	AddAuthRoutes(api.Group("/auth"), s)
	AddBlogRoutes(api.Group("/blogs"), s)
	AddAdminRoutes(api.Group("/admin"), s)
	api.POST("/upload", middlewares.RequireAuth(), s.HandleUpload)

	return router
}

func AddAuthRoutes(rg *gin.RouterGroup, s *Server) {
	rg.POST("/login", s.HandleLogin)
	rg.POST("/register", s.HandleRegister)
	rg.POST("/logout", s.HandleLogout)
	rg.GET("/check-setup", s.HandleCheckSetup)
	rg.GET("/me", s.HandleMe)
}

func AddBlogRoutes(rg *gin.RouterGroup, s *Server) {
	rg.GET("", s.HandleListBlogs)
	rg.POST("", middlewares.RequireAuth(), s.HandleCreateBlog)
	rg.GET("/:id", s.HandleGetBlog)
	rg.PUT("/:id", middlewares.RequireAuth(), s.HandleUpdateBlog)
	rg.DELETE("/:id", middlewares.RequireAuth(), s.HandleDeleteBlog)

	rg.GET("/:id/comments", s.HandleListComments)
	rg.POST("/:id/comments", middlewares.RequireAuth(), s.HandleCreateComment)

	rg.GET("/:id/like", s.HandleLikeStatus)
	rg.POST("/:id/like", middlewares.RequireAuth(), s.HandleToggleLike)
}

func AddAdminRoutes(rg *gin.RouterGroup, s *Server) {
	rg.GET("/users", middlewares.RequireAuth(), s.HandleListUsers)
	rg.PATCH("/users/:id", middlewares.RequireAuth(), s.HandleUpdateUserRole)
	rg.DELETE("/users/:id", middlewares.RequireAuth(), s.HandleDeleteUser)
}
