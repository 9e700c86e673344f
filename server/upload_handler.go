package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleUpload accepts a multipart file under field "file" and returns
// the URL the stored copy is served from.
func (s *Server) HandleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file received."})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, err)
		return
	}
	defer file.Close()

	url, err := s.Files.Store(fileHeader.Filename, file)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
