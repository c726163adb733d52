package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/bookshelf-api/internal/listquery"
	"github.com/snnyvrz/bookshelf-api/internal/repository"
	"github.com/snnyvrz/bookshelf-api/internal/response"
	"github.com/snnyvrz/bookshelf-api/internal/validation"
)

const (
	msgListBooks      = "success get list of book"
	msgDetailBook     = "success get detail book"
	msgCreateBook     = "success create a book"
	msgUpdateBook     = "success update a book detail"
	msgDeleteBook     = "success delete book"
	msgDeleteAllBooks = "success delete all book"

	deleteScopeAll = "all"
)

type BookHandler struct {
	repo  repository.BookRepository
	reset repository.BookResetter
}

func NewBookHandler(repo repository.BookRepository, reset repository.BookResetter) *BookHandler {
	return &BookHandler{repo: repo, reset: reset}
}

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.Any("/books", h.Dispatch)
}

// Dispatch picks the operation from the method and the id and delete
// query parameters. Presence of a parameter matters, not only its value.
func (h *BookHandler) Dispatch(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet:
		if _, ok := c.GetQuery("id"); ok {
			h.Detail(c)
			return
		}
		h.List(c)

	case http.MethodPost:
		h.Create(c)

	case http.MethodPut:
		h.Update(c)

	case http.MethodDelete:
		if scope, ok := c.GetQuery("delete"); ok {
			if scope != deleteScopeAll {
				response.UnsupportedAction(c)
				return
			}
			h.DeleteAll(c)
			return
		}
		h.DeleteOne(c)

	default:
		response.BadRoute(c)
	}
}

// List godoc
// @Summary      List or get books
// @Description  Without id: a page of books ordered by descending id, filtered by case-insensitive substring on title, author and desc.
// @Description  With id: the single book with that id.
// @Tags         books
// @Produce      json
// @Param        id      query     int     false  "Book ID; switches to detail"
// @Param        take    query     int     false  "Page size"  default(10) minimum(1) maximum(20)
// @Param        page    query     int     false  "Page number"  default(1) minimum(1)
// @Param        title   query     string  false  "Title contains"
// @Param        author  query     string  false  "Author contains"
// @Param        desc    query     string  false  "Description contains"
// @Success      200     {object}  BookListEnvelope
// @Failure      404     {object}  EmptyEnvelope  "Book not found (detail)"
// @Failure      500     {object}  EmptyEnvelope  "Internal server error"
// @Router       /v1/books [get]
func (h *BookHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	q := listquery.Normalize(c.Request.URL.Query())

	total, err := h.repo.Count(ctx, q.Filter)
	if err != nil {
		upstreamFailure(c, "count books", err)
		return
	}

	books, err := h.repo.Find(ctx, q.Filter, q.Skip(), q.Take)
	if err != nil {
		upstreamFailure(c, "find books", err)
		return
	}

	response.SuccessWithMeta(c, msgListBooks, toBooks(books), listquery.NewMeta(q, total))
}

func (h *BookHandler) Detail(c *gin.Context) {
	id, _ := idParam(c)
	if id == 0 {
		response.NotFound(c, response.MsgBookNotFound)
		return
	}

	book, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			response.NotFound(c, response.MsgBookNotFound)
			return
		}
		upstreamFailure(c, "find book", err)
		return
	}

	response.Success(c, msgDetailBook, toBook(*book))
}

// Create godoc
// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        payload  body      BookPayload         true  "Book to create"
// @Success      201      {object}  BookEnvelope
// @Failure      422      {object}  ValidationEnvelope  "Validation error"
// @Failure      500      {object}  EmptyEnvelope       "Internal server error"
// @Router       /v1/books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req BookPayload
	if errs := validation.BindAndValidateJSON(c, &req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}

	book := req.toModel(0)
	if err := h.repo.Create(c.Request.Context(), &book); err != nil {
		upstreamFailure(c, "create book", err)
		return
	}

	response.Created(c, msgCreateBook, toBook(book))
}

// Update godoc
// @Summary      Replace a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id       query     int                 true  "Book ID"
// @Param        payload  body      BookPayload         true  "New book fields"
// @Success      200      {object}  BookEnvelope
// @Failure      404      {object}  EmptyEnvelope       "Book not found"
// @Failure      422      {object}  ValidationEnvelope  "Validation error"
// @Failure      500      {object}  EmptyEnvelope       "Internal server error"
// @Router       /v1/books [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, _ := idParam(c)
	if id == 0 {
		response.NotFound(c, response.MsgBookNotFound)
		return
	}

	ctx := c.Request.Context()

	exists, err := h.repo.Exists(ctx, id)
	if err != nil {
		upstreamFailure(c, "check book", err)
		return
	}
	if !exists {
		response.NotFound(c, response.MsgBookNotFound)
		return
	}

	var req BookPayload
	if errs := validation.BindAndValidateJSON(c, &req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}

	book := req.toModel(id)
	if err := h.repo.Update(ctx, &book); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			response.NotFound(c, response.MsgBookNotFound)
			return
		}
		upstreamFailure(c, "update book", err)
		return
	}

	updated, err := h.repo.FindByID(ctx, id)
	if err != nil {
		upstreamFailure(c, "fetch updated book", err)
		return
	}

	response.Success(c, msgUpdateBook, toBook(*updated))
}

// DeleteOne godoc
// @Summary      Delete one book or all books
// @Description  With delete=all every book is removed atomically and data is null.
// @Description  Any other delete value is rejected. Without delete, id selects the book to remove.
// @Tags         books
// @Produce      json
// @Param        id      query     int     false  "Book ID"
// @Param        delete  query     string  false  "Delete scope"  Enums(all)
// @Success      200     {object}  BookEnvelope
// @Failure      400     {object}  EmptyEnvelope  "Unsupported delete action"
// @Failure      404     {object}  EmptyEnvelope  "Book not found"
// @Failure      500     {object}  EmptyEnvelope  "Internal server error"
// @Router       /v1/books [delete]
func (h *BookHandler) DeleteOne(c *gin.Context) {
	id, _ := idParam(c)
	if id == 0 {
		response.NotFound(c, response.MsgBookNotFound)
		return
	}

	ctx := c.Request.Context()

	book, err := h.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			response.NotFound(c, response.MsgBookNotFound)
			return
		}
		upstreamFailure(c, "find book", err)
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			response.NotFound(c, response.MsgBookNotFound)
			return
		}
		upstreamFailure(c, "delete book", err)
		return
	}

	response.Success(c, msgDeleteBook, toBook(*book))
}

func (h *BookHandler) DeleteAll(c *gin.Context) {
	if err := h.reset.ResetAll(c.Request.Context()); err != nil {
		upstreamFailure(c, "reset books", err)
		return
	}

	response.Success(c, msgDeleteAllBooks, nil)
}
