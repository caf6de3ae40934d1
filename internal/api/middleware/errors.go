package middleware

import (
	"errors"
	"net/http"

	"github.com/emicklei/go-restful/v3"
)

var (
	ErrEmptySessionID  = errors.New("session_id is required")
	ErrSpecTooLong     = errors.New("specification exceeds the maximum length")
	ErrHistoryDisabled = errors.New("session history is not configured")
)

type ErrorResponse struct {
	Error   string `json:"error" description:"Error message"`
	Code    int    `json:"code" description:"HTTP status code"`
	Details string `json:"details,omitempty" description:"Additional error details"`
}

func HandleError(resp *restful.Response, err error, code int) {
	errResp := ErrorResponse{
		Error: http.StatusText(code),
		Code:  code,
	}
	if err != nil {
		errResp.Details = err.Error()
	}

	resp.WriteHeaderAndEntity(code, errResp)
}
