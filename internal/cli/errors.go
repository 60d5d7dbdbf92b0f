package cli

import "github.com/Abraxas-365/sparkx/pkg/errx"

var cliErrors = errx.NewRegistry("CLI")

var (
	ErrReadBody   = cliErrors.Register("READ_BODY", errx.TypeValidation, 400, "Failed to read request body file")
	ErrDecodeBody = cliErrors.Register("DECODE_BODY", errx.TypeValidation, 400, "Request body file is not valid YAML or JSON")
	ErrBadArg     = cliErrors.Register("BAD_ARG", errx.TypeValidation, 400, "Invalid argument")
)
