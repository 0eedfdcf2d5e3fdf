package clients

import "errors"

// Kind classifies a RequestError.
type Kind int

const (
	// KindNetwork means the request never produced an HTTP response.
	KindNetwork Kind = iota + 1
	// KindHTTP means the server answered with a non-2xx status.
	KindHTTP
	// KindDecode means a 2xx body was not valid JSON.
	KindDecode
	// KindValidation is a client-side rejection, e.g. an unusable login response.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindDecode:
		return "decode"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is against a *RequestError of the matching kind.
var (
	ErrNetwork    = errors.New("clients: network error")
	ErrHTTP       = errors.New("clients: http error")
	ErrDecode     = errors.New("clients: decode error")
	ErrValidation = errors.New("clients: validation error")
)

// RequestError is the single error type surfaced by the client layer.
type RequestError struct {
	Kind    Kind
	Method  string
	Path    string
	Status  int
	Message string
	Err     error
}

// Error returns the user-facing message.
func (e *RequestError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause (transport or JSON error).
func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels.
func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrHTTP:
		return e.Kind == KindHTTP
	case ErrDecode:
		return e.Kind == KindDecode
	case ErrValidation:
		return e.Kind == KindValidation
	}
	return false
}

// NewValidationError builds a KindValidation error with message.
func NewValidationError(message string) *RequestError {
	return &RequestError{Kind: KindValidation, Message: message}
}

// KindOf returns the kind of the first RequestError in err's chain, 0 if none.
func KindOf(err error) Kind {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Kind
	}
	return 0
}

// StatusOf returns the HTTP status carried by err, 0 when it has none.
func StatusOf(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status
	}
	return 0
}
