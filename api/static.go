package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServeStaticFiles configures routes for the public form and admin panel
func (s *Server) ServeStaticFiles() {
	s.router.GET("/", func(c *gin.Context) {
		c.File("public/index.html")
	})

	s.router.GET("/admin", func(c *gin.Context) {
		c.File("public/admin.html")
	})

	s.router.StaticFS("/static", http.Dir("public"))
}
