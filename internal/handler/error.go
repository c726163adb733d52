package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"github.com/snnyvrz/bookshelf-api/internal/middleware"
	"github.com/snnyvrz/bookshelf-api/internal/response"
)

// upstreamFailure logs a failed gateway call and answers with a generic 500.
// The client never sees err.
func upstreamFailure(c *gin.Context, op string, err error) {
	event := log.Error().
		Err(err).
		Str("request_id", c.GetString(middleware.RequestIDKey)).
		Str("op", op)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		event = event.
			Str("pg_code", pgErr.Code).
			Str("pg_constraint", pgErr.ConstraintName).
			Str("pg_detail", pgErr.Detail)
	}

	event.Msg("book store call failed")
	response.InternalServerError(c)
}
