// Package asyncx provides the small set of concurrency helpers the sparkx
// tooling builds on.
//
// # Futures
//
// A [Future] represents a value computed in its own goroutine. [Run] starts
// the work immediately; [Future.Await] blocks until it resolves. A Future
// resolves exactly once, so every Await observes the same value and error.
//
//	fut := asyncx.Run(func() (*sparkx.Response[[]sparkx.Template], error) {
//	    return client.Templates.All(ctx)
//	})
//
//	// ... do other work ...
//
//	res, err := fut.Await()
//
// # Worker Pool
//
// [Pool] applies a function to every element of a slice with a bounded
// number of goroutines and returns one [Result] per element, in order. It is
// meant for fan-out against rate-limited APIs, e.g. checking the suppression
// status of many recipients.
//
//	results := asyncx.Pool(ctx, 4, emails, func(ctx context.Context, email string) (bool, error) {
//	    return isSuppressed(ctx, email)
//	})
//
// # Retry
//
// [RetryWithBackoff] calls a function until it succeeds, the attempts run
// out, or the predicate declares the error permanent. The wait doubles after
// each failure and honours context cancellation.
//
//	res, err := asyncx.RetryWithBackoff(ctx, 3, 500*time.Millisecond, sparkx.IsRetryable,
//	    func(ctx context.Context) (*sparkx.Response[sparkx.SendResult], error) {
//	        return client.Transmissions.Send(ctx, tx)
//	    })
//
// Goroutines are never abandoned by Pool: it waits for every worker before
// returning. The package depends only on the standard library.
package asyncx
