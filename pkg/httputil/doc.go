// Package httputil provides retry helpers for registry clients.
//
// [Retry] runs an operation up to a fixed number of times with exponential
// backoff. Only failures wrapped in [RetryableError] are retried; anything
// else (a 404, a decode error) is returned at once:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
//
// Cancelling ctx stops the backoff wait and returns ctx.Err().
package httputil
