package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error codes returned in ErrorResponse.Code.
const (
	ErrCodeInvalidRequest     = "INVALID_REQUEST"     // 400
	ErrCodeNotFound           = "NOT_FOUND"           // 404
	ErrCodeDocumentUnreadable = "DOCUMENT_UNREADABLE" // 422
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeStoreUnavailable   = "STORE_UNAVAILABLE"   // 503
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Details carries the underlying error in debug mode only.
	Details string `json:"details,omitempty"`
}

// Error is a handler failure bound to an HTTP status.
type Error struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NewError creates a new Error.
func NewError(code, message string, status int, err error) *Error {
	return &Error{Code: code, Message: message, Status: status, Err: err}
}

func (s *Server) fail(c *gin.Context, e *Error) {
	resp := ErrorResponse{Code: e.Code, Message: e.Message}
	if s.cfg.App.Debug && e.Err != nil {
		resp.Details = e.Err.Error()
	}
	if e.Status >= 500 {
		s.log.Error(e.Message, zap.String("code", e.Code), zap.Error(e.Err))
	}
	_ = c.Error(e)
	c.AbortWithStatusJSON(e.Status, resp)
}
