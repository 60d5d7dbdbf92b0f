package sparkx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Abraxas-365/sparkx/pkg/errx"
)

// ErrorName is the name carried by every normalized error.
const ErrorName = "SparkPostError"

var sparkxErrors = errx.NewRegistry("SPARKX")

var (
	ErrMissingAPIKey = sparkxErrors.Register("MISSING_API_KEY", errx.TypeValidation, http.StatusBadRequest, "an API key is required")
	ErrInvalidConfig = sparkxErrors.Register("INVALID_CONFIG", errx.TypeValidation, http.StatusBadRequest, "invalid client configuration")
	ErrCodeService   = sparkxErrors.Register("SERVICE", errx.TypeExternal, http.StatusBadGateway, "SparkPost rejected the request")
	ErrCodeTransport = sparkxErrors.Register("TRANSPORT", errx.TypeExternal, http.StatusBadGateway, "SparkPost could not be reached")
	ErrCodeDecode    = sparkxErrors.Register("DECODE", errx.TypeExternal, http.StatusBadGateway, "SparkPost returned an unreadable response")
	ErrCodeUsage     = sparkxErrors.Register("USAGE", errx.TypeValidation, http.StatusBadRequest, "invalid request")
)

// Kind classifies where a failure originated.
type Kind string

const (
	KindTransport Kind = "transport"
	KindDecode    Kind = "decode"
	KindService   Kind = "service"
	KindUsage     Kind = "usage"
)

func (k Kind) Error() string { return "sparkx: " + string(k) + " error" }

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrTransport error = KindTransport
	ErrDecode    error = KindDecode
	ErrService   error = KindService
	ErrUsage     error = KindUsage
)

// ErrorDetail is one entry of the service's error list.
type ErrorDetail struct {
	Message     string `json:"message"`
	Code        *int   `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
	Part        string `json:"part,omitempty"`
	Line        *int   `json:"line,omitempty"`
}

// UnmarshalJSON accepts code and line as numbers or numeric strings. A
// code or line that is neither is dropped; the message is kept.
func (d *ErrorDetail) UnmarshalJSON(data []byte) error {
	var aux struct {
		Message     FlexString      `json:"message"`
		Code        json.RawMessage `json:"code"`
		Description FlexString      `json:"description"`
		Part        FlexString      `json:"part"`
		Line        json.RawMessage `json:"line"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*d = ErrorDetail{
		Message:     string(aux.Message),
		Description: string(aux.Description),
		Part:        string(aux.Part),
		Code:        lenientInt(aux.Code),
		Line:        lenientInt(aux.Line),
	}
	return nil
}

func lenientInt(raw json.RawMessage) *int {
	if len(raw) == 0 {
		return nil
	}
	var n *FlexInt
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil
	}
	return n.intPtr()
}

// Error is the single error shape every failing call produces.
type Error struct {
	Name       string
	Message    string
	Errors     []ErrorDetail
	StatusCode int
	Kind       Kind

	cause error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Name, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches the Kind sentinels.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// Type maps the error onto the errx taxonomy.
func (e *Error) Type() errx.Type {
	switch e.Kind {
	case KindService:
		return errx.TypeFromStatus(e.StatusCode)
	case KindUsage:
		return errx.TypeValidation
	default:
		return errx.TypeExternal
	}
}

// ToErrx converts the error into a registry coded errx error.
func (e *Error) ToErrx() *errx.Error {
	code := ErrCodeService
	switch e.Kind {
	case KindTransport:
		code = ErrCodeTransport
	case KindDecode:
		code = ErrCodeDecode
	case KindUsage:
		code = ErrCodeUsage
	}

	out := sparkxErrors.NewWithCause(code, e).
		WithDetail("name", e.Name).
		WithDetail("errors", e.Errors)
	out.Message = e.Message
	out.Type = e.Type()
	out.HTTPStatus = out.Type.HTTPStatus()
	if e.StatusCode > 0 {
		out.WithDetail("status_code", e.StatusCode)
	}
	return out
}

// FirstCode returns the code of the first detail carrying one.
func (e *Error) FirstCode() (int, bool) {
	for _, d := range e.Errors {
		if d.Code != nil {
			return *d.Code, true
		}
	}
	return 0, false
}

// Normalize converts a failed response into an *Error. It returns nil for
// statuses below 400. The same input always yields an equal value.
func Normalize(status int, body []byte) *Error {
	if status < http.StatusBadRequest {
		return nil
	}

	details := parseErrorDetails(body)
	if len(details) == 0 {
		details = []ErrorDetail{{Message: statusMessage(status)}}
	}

	return &Error{
		Name:       ErrorName,
		Message:    details[0].Message,
		Errors:     details,
		StatusCode: status,
		Kind:       KindService,
	}
}

// IsRetryable reports whether err is worth another attempt: transport
// failures other than cancellation, throttling and server errors.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Kind {
	case KindTransport:
		return true
	case KindService:
		return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// AsError extracts an *Error from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func parseErrorDetails(body []byte) []ErrorDetail {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil
	}

	var env struct {
		Errors json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &env); err != nil || len(env.Errors) == 0 {
		return nil
	}

	// Entries decode one at a time so a malformed entry cannot discard the
	// others.
	var entries []json.RawMessage
	if err := json.Unmarshal(env.Errors, &entries); err != nil {
		entries = []json.RawMessage{env.Errors}
	}

	details := make([]ErrorDetail, 0, len(entries))
	for _, raw := range entries {
		var d ErrorDetail
		if err := json.Unmarshal(raw, &d); err != nil {
			continue
		}
		if strings.TrimSpace(d.Message) == "" {
			continue
		}
		details = append(details, d)
	}
	return details
}

func statusMessage(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "request failed with status code " + strconv.Itoa(status)
}

func transportError(err error) *Error {
	return &Error{
		Name:    ErrorName,
		Message: err.Error(),
		Errors:  []ErrorDetail{{Message: err.Error()}},
		Kind:    KindTransport,
		cause:   err,
	}
}

func decodeError(status int, err error) *Error {
	msg := "invalid response body: " + err.Error()
	return &Error{
		Name:       ErrorName,
		Message:    msg,
		Errors:     []ErrorDetail{{Message: msg}},
		StatusCode: status,
		Kind:       KindDecode,
		cause:      err,
	}
}

func usageError(format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	return &Error{
		Name:    ErrorName,
		Message: msg,
		Errors:  []ErrorDetail{{Message: msg}},
		Kind:    KindUsage,
	}
}
