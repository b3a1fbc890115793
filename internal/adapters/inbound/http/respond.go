package http

import (
	"encoding/json"
	"net/http"
)

// ErrorCode classifies API errors for clients.
type ErrorCode string

const (
	ErrorCode_BadRequest         ErrorCode = "BAD_REQUEST"
	ErrorCode_NotFound           ErrorCode = "NOT_FOUND"
	ErrorCode_ServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrorCode_Internal           ErrorCode = "INTERNAL"
)

// ErrorResp is the error envelope returned by all endpoints.
type ErrorResp struct {
	Error struct {
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
	} `json:"error"`
}

func newErrorResp(code ErrorCode, message string) ErrorResp {
	resp := ErrorResp{}
	resp.Error.Code = code
	resp.Error.Message = message
	return resp
}

func respondJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, err ErrorResp) {
	statusCode := http.StatusInternalServerError
	switch err.Error.Code {
	case ErrorCode_BadRequest:
		statusCode = http.StatusBadRequest
	case ErrorCode_NotFound:
		statusCode = http.StatusNotFound
	case ErrorCode_ServiceUnavailable:
		statusCode = http.StatusServiceUnavailable
	}
	respondJSON(w, statusCode, err)
}
