// Package resilience retries transient failures with exponential backoff.
//
// Only errors whose code is retryable (connection, timeout, remote service
// or I/O failures) are retried by default. A missing item, a refused name or
// an inert backend fails on the first attempt.
//
//	err := resilience.Retry(ctx, resilience.DefaultRetryConfig(), func(ctx context.Context) error {
//	    return backend.Put(ctx, name, data)
//	})
package resilience
