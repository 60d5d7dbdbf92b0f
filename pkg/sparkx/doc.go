// Package sparkx is a typed client for the SparkPost REST API.
//
// A [Client] is built once and shared:
//
//	client, err := sparkx.New(os.Getenv("SPARKPOST_API_KEY"),
//	    sparkx.WithTimeout(10*time.Second),
//	)
//
// Every resource family hangs off the client (client.Transmissions,
// client.Templates, client.Webhooks, ...). Each method builds one [Request],
// sends it, and returns either a decoded [Response] or an error, never both.
//
//	res, err := client.Transmissions.Send(ctx, sparkx.Transmission{
//	    Recipients: sparkx.ListRecipients("newsletter"),
//	    Content: sparkx.MessageContent{
//	        Template: &sparkx.TemplateRef{TemplateID: "weekly"},
//	    },
//	})
//
// # Errors
//
// All failures are *[Error] values carrying the HTTP status and the list of
// [ErrorDetail] returned by the service. Use errors.Is with [ErrService],
// [ErrTransport], [ErrDecode] or [ErrUsage] to branch on where the failure
// happened, and [IsRetryable] to decide whether another attempt makes
// sense. The client itself never retries and never logs.
//
// # Low level access
//
// Endpoints without a typed wrapper are reachable through [Client.Request]
// and the Get/Post/Put/Delete helpers, or [Do] for a typed result. [Go]
// runs a call in the background and returns an [asyncx.Future].
package sparkx
