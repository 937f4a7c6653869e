// Package httperr is the single boundary that turns internal failures into
// HTTP responses. Handlers return errors; the mapping from error kind to
// status and external message lives here, so driver and upstream detail
// never reaches a response body.
package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindNotFound
	KindUnauthorized
	KindUpstream
)

type Error struct {
	Kind    Kind
	Tag     string // short server-side context, e.g. "get_assessment"
	Message string // client-facing; ignored for 500s
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Tag + ": " + e.Err.Error()
	}
	return e.Tag + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func BadRequest(tag, message string) *Error {
	return &Error{Kind: KindBadRequest, Tag: tag, Message: message}
}

func NotFound(tag, message string) *Error {
	return &Error{Kind: KindNotFound, Tag: tag, Message: message}
}

func Unauthorized(tag string) *Error {
	return &Error{Kind: KindUnauthorized, Tag: tag, Message: "unauthorized"}
}

func Upstream(tag string, err error) *Error {
	return &Error{Kind: KindUpstream, Tag: tag, Err: err}
}

func Internal(tag string, err error) *Error {
	return &Error{Kind: KindInternal, Tag: tag, Err: err}
}

// Respond logs the failure with its tag and writes the fixed external
// mapping for its kind. Unknown errors are treated as internal.
func Respond(c *gin.Context, log zerolog.Logger, err error) {
	var herr *Error
	if !errors.As(err, &herr) {
		herr = &Error{Kind: KindInternal, Tag: "unhandled", Err: err}
	}

	event := log.Error()
	if herr.Kind == KindBadRequest || herr.Kind == KindNotFound || herr.Kind == KindUnauthorized {
		event = log.Warn()
	}
	event.
		Err(herr.Err).
		Str("tag", herr.Tag).
		Str("path", c.Request.URL.Path).
		Msg("request failed")

	switch herr.Kind {
	case KindBadRequest:
		c.JSON(http.StatusBadRequest, gin.H{"error": herr.Message})
	case KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": herr.Message})
	case KindUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
