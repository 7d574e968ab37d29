// Package result carries the outcome of a domain operation.
//
// A Result is either a success holding a value or a failure holding an
// Error (code + message). The combinators in this package chain results
// without repeating the failure checks at every step.
package result

import "errors"

// Kind classifies an Error so the transport layer can pick a status code.
type Kind int

const (
	KindNone Kind = iota
	KindNullValue
	KindListEmpty
	KindNotFound
	KindValidation
	KindInsufficientBalance
	KindConflict
	KindFailure
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNullValue:
		return "null_value"
	case KindListEmpty:
		return "list_empty"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindInsufficientBalance:
		return "insufficient_balance"
	case KindConflict:
		return "conflict"
	default:
		return "failure"
	}
}

// Error is a (code, message) pair. Two errors are the same when code and
// message match; Kind is metadata for the HTTP layer.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Kind    Kind   `json:"-"`
}

var (
	None = Error{}

	NullValue = Error{
		Code:    "Error.NullValue",
		Message: "The result is null.",
		Kind:    KindNullValue,
	}

	ListHasNoEntries = Error{
		Code:    "Error.NoEntries",
		Message: "The list has no entries.",
		Kind:    KindListEmpty,
	}
)

// NewError builds an Error of the given kind.
func NewError(kind Kind, code, message string) Error {
	return Error{Code: code, Message: message, Kind: kind}
}

func (e Error) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

// IsNone reports whether e is the empty error.
func (e Error) IsNone() bool {
	return e.Code == "" && e.Message == ""
}

// Is lets errors.Is match on code and message regardless of Kind.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// Equal compares code and message.
func (e Error) Equal(other Error) bool {
	return e.Code == other.Code && e.Message == other.Message
}

// AsError extracts an Error from err's chain.
func AsError(err error) (Error, bool) {
	var e Error
	if errors.As(err, &e) {
		return e, true
	}
	return None, false
}
