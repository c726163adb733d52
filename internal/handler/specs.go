package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/snnyvrz/bookshelf-api/internal/response"
	"github.com/swaggo/swag"
)

// Specs serves the generated OpenAPI document as JSON.
func Specs(c *gin.Context) {
	doc, err := swag.ReadDoc()
	if err != nil {
		log.Error().Err(err).Msg("read openapi document")
		response.InternalServerError(c)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}
