package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// User-facing messages.
const (
	MsgUserNotFound      = "GitHub user not found. Please check the username."
	MsgRateLimitExceeded = "GitHub API rate limit exceeded. Please try again later."
	MsgProfileFailed     = "Failed to fetch GitHub profile analysis"
	MsgAIFailed          = "AI analysis failed"
)

// ErrHTTPStatus matches every *StatusError via errors.Is.
var ErrHTTPStatus = errors.New("backend returned an error status")

// StatusError is an HTTP-level failure carrying the message to show the user.
// Err, when set, is the decoding failure behind a malformed response.
type StatusError struct {
	Status  int
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	return e.Message
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

func (e *StatusError) Is(target error) bool {
	return target == ErrHTTPStatus
}

// errorBody is the optional error shape the backend returns.
type errorBody struct {
	Error any `json:"error"`
}

// ExtractError reads a failed response's body and returns its "error" field
// when it is a non-blank string. Otherwise a 404 yields MsgUserNotFound and
// anything else yields fallback. The body is restored so it can be read again.
func ExtractError(resp *http.Response, fallback string) string {
	if resp == nil {
		return fallback
	}
	body := peekBody(resp)

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if msg, ok := eb.Error.(string); ok && strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	if resp.StatusCode == http.StatusNotFound {
		return MsgUserNotFound
	}
	return fallback
}

// peekBody reads the whole body and puts an identical reader back in its place.
func peekBody(resp *http.Response) []byte {
	if resp.Body == nil {
		return nil
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return body
}

// profileError builds the failure for a non-success /analyze response.
// 404 and 403 always get their canned messages, whatever the body says.
func profileError(resp *http.Response) *StatusError {
	msg := MsgProfileFailed

	var eb errorBody
	if err := json.Unmarshal(peekBody(resp), &eb); err != nil {
		msg = ExtractError(resp, msg)
	} else if s, ok := eb.Error.(string); ok && s != "" {
		msg = s
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		msg = MsgUserNotFound
	case http.StatusForbidden:
		msg = MsgRateLimitExceeded
	}
	return &StatusError{Status: resp.StatusCode, Message: msg}
}

// aiError builds the failure for a non-success /ai/full-analysis response.
func aiError(resp *http.Response) *StatusError {
	return &StatusError{Status: resp.StatusCode, Message: ExtractError(resp, MsgAIFailed)}
}

// malformed reports a success status whose body could not be decoded.
func malformed(status int, fallback string, err error) *StatusError {
	return &StatusError{Status: status, Message: fallback, Err: fmt.Errorf("malformed response: %w", err)}
}
