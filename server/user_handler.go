package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/inkpress/model"
	"github.com/inkpress/inkpress/server/middlewares"
	"github.com/inkpress/inkpress/store"
)

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (s *Server) HandleListUsers(c *gin.Context) {
	users, err := store.ListUsers(s.DB, middlewares.CurrentUser(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) HandleUpdateUserRole(c *gin.Context) {
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := store.UpdateUserRole(s.DB, middlewares.CurrentUser(c), c.Param("id"), model.UserRole(req.Role))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) HandleDeleteUser(c *gin.Context) {
	if err := store.DeleteUser(s.DB, middlewares.CurrentUser(c), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
