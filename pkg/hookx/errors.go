package hookx

import "github.com/Abraxas-365/sparkx/pkg/errx"

var hookErrors = errx.NewRegistry("HOOKX")

var (
	ErrUnauthorized = hookErrors.Register("UNAUTHORIZED", errx.TypeAuthorization, 401, "Webhook credentials rejected")
	ErrBadBatch     = hookErrors.Register("BAD_BATCH", errx.TypeValidation, 400, "Webhook batch is not valid JSON")
	ErrBadQuery     = hookErrors.Register("BAD_QUERY", errx.TypeValidation, 400, "Invalid query")
	ErrEnqueue      = hookErrors.Register("ENQUEUE", errx.TypeExternal, 503, "Failed to queue webhook batch")
	ErrStore        = hookErrors.Register("STORE", errx.TypeInternal, 500, "Failed to store events")
)
