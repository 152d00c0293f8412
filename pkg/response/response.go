package response

import "errors"

type Response struct {
	ResponseError `json:"error,omitzero"`
}

type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

//Error Codes
type ErrCode string

var (
	FAILED_REQUEST      ErrCode = "REQUEST_FAILED"
	BAD_REQUEST         ErrCode = "FAILED_TO_DECODE"
	NOT_FOUND           ErrCode = "NOT_FOUND"
	LOCKED              ErrCode = "LOCKED"
	UNAUTHORIZED        ErrCode = "UNAUTHORIZED"
	MALFORMED_TIME      ErrCode = "MALFORMED_TIME"
	MALFORMED_DATE      ErrCode = "MALFORMED_DATE"
	INVALID_INTERVAL    ErrCode = "INVALID_INTERVAL"
	INVALID_DURATION    ErrCode = "INVALID_DURATION"
	STORAGE_UNAVAILABLE ErrCode = "STORAGE_UNAVAILABLE"
)

var (
	ErrBadRequest         = errors.New("bad request")
	ErrNotFound           = errors.New("resource not found")
	ErrLocked             = errors.New("resource is locked")
	ErrUnauthorized       = errors.New("not allowed to modify this resource")
	ErrMalformedTime      = errors.New("malformed time, expected HH:MM")
	ErrMalformedDate      = errors.New("malformed date, expected YYYY-MM-DD")
	ErrInvalidMinutes     = errors.New("minutes must not be negative")
	ErrInvalidInterval    = errors.New("start time must be before end time")
	ErrInvalidDuration    = errors.New("duration must be positive")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

func Error(code, msg string) Response {
	return Response{
		ResponseError: ResponseError{
			Code:    code,
			Message: msg,
		},
	}
}
