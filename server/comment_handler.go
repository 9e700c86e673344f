package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/inkpress/server/middlewares"
	"github.com/inkpress/inkpress/store"
)

type createCommentRequest struct {
	Content  string  `json:"content"`
	ParentId *string `json:"parentId"`
}

func (s *Server) HandleListComments(c *gin.Context) {
	comments, err := store.ListComments(s.DB, c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (s *Server) HandleCreateComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := store.CreateComment(s.DB, middlewares.CurrentUser(c), c.Param("id"), req.Content, req.ParentId)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}
