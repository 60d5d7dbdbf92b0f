package sparkx_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Abraxas-365/sparkx/pkg/errx"
	"github.com/Abraxas-365/sparkx/pkg/sparkx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_InvalidRecipient(t *testing.T) {
	body := []byte(`{"errors":[{"message":"Invalid recipient","code":1402}]}`)

	e := sparkx.Normalize(http.StatusBadRequest, body)

	require.NotNil(t, e)
	assert.Equal(t, sparkx.ErrorName, e.Name)
	assert.Equal(t, http.StatusBadRequest, e.StatusCode)
	assert.Equal(t, "Invalid recipient", e.Message)
	require.Len(t, e.Errors, 1)
	assert.Equal(t, "Invalid recipient", e.Errors[0].Message)
	require.NotNil(t, e.Errors[0].Code)
	assert.Equal(t, 1402, *e.Errors[0].Code)
	assert.ErrorIs(t, e, sparkx.ErrService)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantDetails int
		wantCode    *int
	}{
		{
			name:        "string code",
			status:      422,
			body:        `{"errors":[{"message":"invalid data format/type","description":"Error validating JSON","code":"1300"}]}`,
			wantMessage: "invalid data format/type",
			wantDetails: 1,
			wantCode:    intPtr(1300),
		},
		{
			name:        "keeps order and skips entries without a message",
			status:      400,
			body:        `{"errors":[{"message":"first"},{"code":"1"},{"message":"second","part":"html","line":4}]}`,
			wantMessage: "first",
			wantDetails: 2,
		},
		{
			name:        "float code",
			status:      400,
			body:        `{"errors":[{"message":"Invalid recipient","code":1402.0}]}`,
			wantMessage: "Invalid recipient",
			wantDetails: 1,
			wantCode:    intPtr(1402),
		},
		{
			name:        "non numeric code keeps the message",
			status:      400,
			body:        `{"errors":[{"message":"Invalid recipient","code":"E1402"}]}`,
			wantMessage: "Invalid recipient",
			wantDetails: 1,
		},
		{
			name:        "non numeric line keeps the message",
			status:      422,
			body:        `{"errors":[{"message":"syntax error","line":"n/a","code":"1300"}]}`,
			wantMessage: "syntax error",
			wantDetails: 1,
			wantCode:    intPtr(1300),
		},
		{
			name:        "malformed entry does not discard the others",
			status:      400,
			body:        `{"errors":["oops",{"message":{"nested":true}},{"message":"kept","code":1.5}]}`,
			wantMessage: "kept",
			wantDetails: 1,
		},
		{
			name:        "single error object",
			status:      403,
			body:        `{"errors":{"message":"Forbidden."}}`,
			wantMessage: "Forbidden.",
			wantDetails: 1,
		},
		{
			name:        "html body falls back to status text",
			status:      502,
			body:        `<html>bad gateway</html>`,
			wantMessage: "Bad Gateway",
			wantDetails: 1,
		},
		{
			name:        "empty body",
			status:      404,
			body:        ``,
			wantMessage: "Not Found",
			wantDetails: 1,
		},
		{
			name:        "empty error list",
			status:      500,
			body:        `{"errors":[]}`,
			wantMessage: "Internal Server Error",
			wantDetails: 1,
		},
		{
			name:        "unknown status",
			status:      599,
			body:        `{}`,
			wantMessage: "request failed with status code 599",
			wantDetails: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := sparkx.Normalize(tt.status, []byte(tt.body))

			require.NotNil(t, e)
			assert.Equal(t, tt.status, e.StatusCode)
			assert.Equal(t, tt.wantMessage, e.Message)
			assert.Len(t, e.Errors, tt.wantDetails)
			if tt.wantCode != nil {
				require.NotNil(t, e.Errors[0].Code)
				assert.Equal(t, *tt.wantCode, *e.Errors[0].Code)
			}
		})
	}
}

func TestNormalize_PartAndLine(t *testing.T) {
	e := sparkx.Normalize(422, []byte(`{"errors":[{"message":"substitution language syntax error","part":"html","line":"7"}]}`))

	require.Len(t, e.Errors, 1)
	assert.Equal(t, "html", e.Errors[0].Part)
	require.NotNil(t, e.Errors[0].Line)
	assert.Equal(t, 7, *e.Errors[0].Line)
	assert.Nil(t, e.Errors[0].Code)
}

func TestNormalize_DropsUnparseableCodeAndLine(t *testing.T) {
	e := sparkx.Normalize(400, []byte(`{"errors":[{"message":"Invalid recipient","description":"bad address","code":"E1402","line":"n/a"}]}`))

	require.Len(t, e.Errors, 1)
	assert.Equal(t, "Invalid recipient", e.Errors[0].Message)
	assert.Equal(t, "bad address", e.Errors[0].Description)
	assert.Nil(t, e.Errors[0].Code)
	assert.Nil(t, e.Errors[0].Line)
}

func TestNormalize_PreservesStatusAndIsIdempotent(t *testing.T) {
	bodies := []string{
		``,
		`null`,
		`[]`,
		`{"errors":[{"message":"x","code":1}]}`,
		`{"errors":"nope"}`,
		`not json`,
	}

	for status := 400; status < 600; status++ {
		for _, body := range bodies {
			first := sparkx.Normalize(status, []byte(body))
			second := sparkx.Normalize(status, []byte(body))

			require.NotNil(t, first, "status %d body %q", status, body)
			assert.Equal(t, status, first.StatusCode)
			assert.Equal(t, first, second)
			assert.NotEmpty(t, first.Message)
			assert.NotEmpty(t, first.Errors)
		}
	}
}

func TestNormalize_SuccessIsNil(t *testing.T) {
	for _, status := range []int{200, 201, 204, 304} {
		assert.Nil(t, sparkx.Normalize(status, []byte(`{"errors":[{"message":"ignored"}]}`)))
	}
}

func TestError_Type(t *testing.T) {
	tests := []struct {
		status int
		want   errx.Type
	}{
		{401, errx.TypeAuthorization},
		{403, errx.TypeAuthorization},
		{404, errx.TypeNotFound},
		{409, errx.TypeConflict},
		{400, errx.TypeValidation},
		{422, errx.TypeValidation},
		{429, errx.TypeRateLimit},
		{503, errx.TypeExternal},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, sparkx.Normalize(tt.status, nil).Type())
		})
	}
}

func TestError_ToErrx(t *testing.T) {
	e := sparkx.Normalize(404, []byte(`{"errors":[{"message":"resource not found","code":"1600"}]}`))

	out := e.ToErrx()

	assert.Equal(t, "SPARKX_SERVICE", out.Code)
	assert.Equal(t, "resource not found", out.Message)
	assert.Equal(t, errx.TypeNotFound, out.Type)
	assert.Equal(t, http.StatusNotFound, out.HTTPStatus)
	assert.Equal(t, 404, out.Details["status_code"])
	assert.True(t, sparkx.ErrCodeService.Is(out))

	var back *sparkx.Error
	require.True(t, errors.As(out, &back))
	assert.Same(t, e, back)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, sparkx.IsRetryable(sparkx.Normalize(429, nil)))
	assert.True(t, sparkx.IsRetryable(sparkx.Normalize(503, nil)))
	assert.False(t, sparkx.IsRetryable(sparkx.Normalize(400, nil)))
	assert.False(t, sparkx.IsRetryable(errors.New("plain")))
	assert.False(t, sparkx.IsRetryable(nil))
	assert.False(t, sparkx.IsRetryable(context.Canceled))
}

func intPtr(v int) *int { return &v }
