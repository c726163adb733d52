package handler

import (
	"github.com/snnyvrz/bookshelf-api/internal/listquery"
	"github.com/snnyvrz/bookshelf-api/internal/model"
	"github.com/snnyvrz/bookshelf-api/internal/validation"
)

// BookPayload is the body accepted by create and update.
type BookPayload struct {
	Title     string `json:"title" validate:"required,min=1,max=50,alphanumspace" example:"Dune"`
	Author    string `json:"author" validate:"required,min=1,max=50,alphanumspace" example:"Frank Herbert"`
	Desc      string `json:"desc" validate:"omitempty,max=255,alphanumspace" example:"Desert planet saga"`
	CreatedAt string `json:"createdAt" validate:"omitempty,timestamp" example:"2024-01-02T03:04:05Z"`
	UpdatedAt string `json:"updatedAt" validate:"omitempty,timestamp" example:"2024-01-02T03:04:05Z"`
}

type Book struct {
	ID        uint            `json:"id" example:"1"`
	Title     string          `json:"title" example:"Dune"`
	Author    string          `json:"author" example:"Frank Herbert"`
	Desc      string          `json:"desc" example:"Desert planet saga"`
	CreatedAt model.Timestamp `json:"createdAt" swaggertype:"string" example:"2024-01-02T03:04:05Z"`
	UpdatedAt model.Timestamp `json:"updatedAt" swaggertype:"string" example:"2024-01-02T03:04:05Z"`
}

// Envelope shapes below only document responses for swag.

type BookEnvelope struct {
	Status  bool   `json:"status" example:"true"`
	Message string `json:"message" example:"success get detail book"`
	Data    Book   `json:"data"`
}

type BookListEnvelope struct {
	Status  bool           `json:"status" example:"true"`
	Message string         `json:"message" example:"success get list of book"`
	Data    []Book         `json:"data"`
	Meta    listquery.Meta `json:"meta"`
}

type EmptyEnvelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data" swaggertype:"object"`
}

type ValidationEnvelope struct {
	Status  bool                    `json:"status" example:"false"`
	Message string                  `json:"message" example:"validation failed"`
	Data    any                     `json:"data" swaggertype:"object"`
	Error   []validation.FieldError `json:"error"`
}
