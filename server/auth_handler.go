package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/inkpress/auth"
	"github.com/inkpress/inkpress/server/middlewares"
	"github.com/inkpress/inkpress/utils/dotenv"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (s *Server) HandleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email or password"})
		return
	}

	user, err := auth.Authenticate(s.DB, req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	token, err := auth.IssueToken(user)
	if err != nil {
		abortWithError(c, err)
		return
	}
	setSessionCookie(c, token, int(auth.TokenTTL.Seconds()))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    gin.H{"email": user.Email, "name": user.Name, "role": user.Role},
	})
}

// HandleRegister creates the bootstrap super admin. Open registration is
// closed as soon as any account exists.
func (s *Server) HandleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email or password"})
		return
	}

	if _, err := auth.Register(s.DB, req.Email, req.Password, req.Name); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) HandleLogout(c *gin.Context) {
	setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) HandleCheckSetup(c *gin.Context) {
	bootstrapped, err := auth.IsBootstrapped(s.DB)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isSetup": bootstrapped})
}

// HandleMe reports the current session's user, or null when anonymous.
// Never an error status: the admin UI polls this to decide what to show.
func (s *Server) HandleMe(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetCookie(auth.TokenCookieName, token, maxAge, "/", "", dotenv.IsProd(), true)
}
