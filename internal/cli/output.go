package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/Abraxas-365/sparkx/pkg/asyncx"
	"github.com/Abraxas-365/sparkx/pkg/errx"
	"github.com/Abraxas-365/sparkx/pkg/sparkx"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printError writes err as JSON, with the service's error list when there is one.
func (a *app) printError(err error) {
	body := map[string]any{"error": err.Error()}
	if se, ok := sparkx.AsError(err); ok {
		body = map[string]any{
			"error":       se.Error(),
			"kind":        string(se.Kind),
			"status_code": se.StatusCode,
		}
		if len(se.Errors) > 0 {
			body["errors"] = se.Errors
		}
	} else if e, ok := errx.As(err); ok {
		body["code"] = e.Code
		if len(e.Details) > 0 {
			body["details"] = e.Details
		}
	}
	enc := json.NewEncoder(a.err)
	enc.SetIndent("", "  ")
	_ = enc.Encode(body)
}

// readBody decodes a YAML or JSON file into v. JSON tags on v apply to
// both formats.
func readBody(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return cliErrors.NewWithCause(ErrReadBody, err).WithDetail("file", path)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return cliErrors.NewWithCause(ErrDecodeBody, err).WithDetail("file", path)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return cliErrors.NewWithCause(ErrDecodeBody, err).WithDetail("file", path)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return cliErrors.NewWithCause(ErrDecodeBody, err).WithDetail("file", path)
	}
	return nil
}

// run performs one API call under the --retries policy and prints its
// results. Calls answering with no content print the status code.
func run[T any](cmd *cobra.Command, a *app, fn func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[T], error)) error {
	client, err := a.sparkx()
	if err != nil {
		return err
	}

	resp, err := asyncx.RetryWithBackoff(cmd.Context(), a.retries+1, a.retryDelay, sparkx.IsRetryable,
		func(ctx context.Context) (*sparkx.Response[T], error) {
			return fn(ctx, client)
		})
	if err != nil {
		return err
	}

	if _, empty := any(resp.Results).(sparkx.Empty); empty {
		return a.print(map[string]int{"status_code": resp.StatusCode})
	}
	return a.print(resp.Results)
}
