package errs

import (
	"strings"

	"github.com/deppfellow/go-banking/internal/result"
)

// FieldError describes one invalid request field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type ActionType string

const (
	ActionTypeRedirect ActionType = "redirect"
)

// Action tells the client what to do next.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is an error with everything needed to answer the request.
//
// Override marks messages that are safe to show to end users as-is.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
	Action   *Action      `json:"action"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
		Action:   e.Action,
	}
}

// Response is the failure envelope written to the client. It has the same
// shape as a serialized result.Result plus the HTTP details.
type Response struct {
	IsSuccess bool         `json:"isSuccess"`
	IsFailure bool         `json:"isFailure"`
	Error     result.Error `json:"error"`
	Value     any          `json:"value"`
	Status    int          `json:"status"`
	Override  bool         `json:"override"`
	Errors    []FieldError `json:"errors,omitempty"`
	Action    *Action      `json:"action,omitempty"`
}

// Response converts e into the failure envelope.
func (e *HTTPError) Response() Response {
	return Response{
		IsSuccess: false,
		IsFailure: true,
		Error:     result.Error{Code: e.Code, Message: e.Message},
		Status:    e.Status,
		Override:  e.Override,
		Errors:    e.Errors,
		Action:    e.Action,
	}
}

func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
