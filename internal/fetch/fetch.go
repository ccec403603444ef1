// Package fetch issues single-attempt HTTP requests bounded by a per-call timeout.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Sentinel errors for transport failures.
var (
	ErrTimeout     = errors.New("request timed out")
	ErrUnreachable = errors.New("backend unreachable")
)

// Doer is the subset of *http.Client used by Do.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Do sends req once, aborting it if timeout elapses before the response
// arrives. A timeout <= 0 adds no deadline of its own.
//
// On success the timer stays armed until the caller closes the response body,
// so reading the body is bounded by the same deadline. On failure the timer
// is released before returning.
func Do(ctx context.Context, client Doer, req *http.Request, timeout time.Duration) (*http.Response, error) {
	if client == nil {
		client = http.DefaultClient
	}

	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		cancel()
		return nil, classifyError(err)
	}

	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

// cancelOnClose releases the request timer when the body is closed.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}

// IsTimeout reports whether err is a cancellation-class failure.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// isCancellation reports whether err comes from a deadline or cancellation,
// either of the context or of the underlying connection.
func isCancellation(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// classifyError maps transport-level errors to sentinel errors.
func classifyError(err error) error {
	if isCancellation(err) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}

// ReadError classifies a failure while reading a response body returned by Do.
// Cancellation-class failures become ErrTimeout; others are returned unchanged.
func ReadError(err error) error {
	if err == nil || errors.Is(err, ErrTimeout) {
		return err
	}
	if isCancellation(err) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}
