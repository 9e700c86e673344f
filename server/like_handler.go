package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/inkpress/server/middlewares"
	"github.com/inkpress/inkpress/store"
)

func (s *Server) HandleToggleLike(c *gin.Context) {
	liked, err := store.ToggleLike(s.DB, middlewares.CurrentUser(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

func (s *Server) HandleLikeStatus(c *gin.Context) {
	count, liked, err := store.LikeStatus(s.DB, middlewares.CurrentUser(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count, "isLiked": liked})
}
