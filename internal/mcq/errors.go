package mcq

import "errors"

var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrMissingCredential = errors.New("missing credential")
	ErrTransport         = errors.New("transport error")
	ErrEmptyResponse     = errors.New("empty response")
	ErrParseIncomplete   = errors.New("parse incomplete")
)

// Kind returns a short label for err suitable for logs and metric labels.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, ErrTransport):
		return "transport_error"
	case errors.Is(err, ErrEmptyResponse):
		return "empty_response"
	case errors.Is(err, ErrParseIncomplete):
		return "parse_incomplete"
	default:
		return "unknown"
	}
}

// Recoverable reports whether err is a generation failure that callers turn
// into an empty result instead of propagating.
func Recoverable(err error) bool {
	return errors.Is(err, ErrTransport) || errors.Is(err, ErrEmptyResponse)
}
