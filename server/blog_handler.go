package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/inkpress/server/middlewares"
	"github.com/inkpress/inkpress/store"
)

func (s *Server) HandleListBlogs(c *gin.Context) {
	adminView := c.Query("admin") == "true"
	category := c.Query("category")

	blogs, err := store.ListBlogs(s.DB, middlewares.CurrentUser(c), adminView, category)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

func (s *Server) HandleGetBlog(c *gin.Context) {
	blog, err := store.GetBlog(s.DB, middlewares.CurrentUser(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

func (s *Server) HandleCreateBlog(c *gin.Context) {
	var input store.BlogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	blog, err := store.CreateBlog(s.DB, middlewares.CurrentUser(c), &input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

func (s *Server) HandleUpdateBlog(c *gin.Context) {
	var input store.BlogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	blog, err := store.UpdateBlog(s.DB, middlewares.CurrentUser(c), c.Param("id"), &input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

func (s *Server) HandleDeleteBlog(c *gin.Context) {
	if err := store.DeleteBlog(s.DB, middlewares.CurrentUser(c), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
