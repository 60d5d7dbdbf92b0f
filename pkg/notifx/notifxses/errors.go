package notifxses

import "github.com/Abraxas-365/sparkx/pkg/errx"

var sesErrors = errx.NewRegistry("NOTIFX_SES")

var (
	ErrBuildMessage = sesErrors.Register("BUILD_MESSAGE", errx.TypeInternal, 500, "Failed to build SES raw message")
)
