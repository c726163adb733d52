package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Greeting godoc
// @Summary      Say hello
// @Tags         misc
// @Produce      json
// @Param        name  query     string  false  "Who to greet"  default(You)
// @Success      200   {object}  map[string]string
// @Router       / [get]
func Greeting(c *gin.Context) {
	name := c.DefaultQuery("name", "You")

	c.JSON(http.StatusOK, gin.H{
		"message": "Hi " + name + "!",
	})
}
