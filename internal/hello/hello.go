package hello

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/lk2023060901/search-api/internal/pkg/response"
)

// Message returns the fixed greeting
func Message() string {
	return "Hello World"
}

// Greeting returns a greeting for name
func Greeting(name string) string {
	return fmt.Sprintf("Hello, %s!", name)
}

// RegisterRoutes mounts GET /hello and GET /hello/:name under rg
func RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/hello")
	g.GET("", func(c *gin.Context) {
		response.Success(c, Message())
	})
	g.GET("/:name", func(c *gin.Context) {
		response.Success(c, Greeting(c.Param("name")))
	})
}
