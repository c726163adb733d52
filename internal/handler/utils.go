package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/bookshelf-api/internal/model"
)

// idParam reports whether the request carries an id query parameter. The id
// is 0 when the value is not a positive integer.
func idParam(c *gin.Context) (uint, bool) {
	raw, ok := c.GetQuery("id")
	if !ok {
		return 0, false
	}

	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 0)
	if err != nil {
		return 0, true
	}
	return uint(id), true
}

// toModel assumes p already passed validation, so timestamps parse.
func (p BookPayload) toModel(id uint) model.Book {
	b := model.Book{
		ID:          id,
		Title:       p.Title,
		Author:      p.Author,
		Description: p.Desc,
	}
	if p.CreatedAt != "" {
		b.CreatedAt, _ = model.ParseTimestamp(p.CreatedAt)
	}
	if p.UpdatedAt != "" {
		b.UpdatedAt, _ = model.ParseTimestamp(p.UpdatedAt)
	}
	return b
}

func toBook(b model.Book) Book {
	return Book{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Desc:      b.Description,
		CreatedAt: model.Timestamp{Time: b.CreatedAt},
		UpdatedAt: model.Timestamp{Time: b.UpdatedAt},
	}
}

func toBooks(bs []model.Book) []Book {
	out := make([]Book, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBook(b))
	}
	return out
}
