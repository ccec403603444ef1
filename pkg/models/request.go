package models

import (
	"errors"
	"strings"
)

// ErrEmptyUsername is returned when a username is blank after trimming.
// Its text is surfaced to users verbatim.
var ErrEmptyUsername = errors.New("Username cannot be empty")

// AnalysisRequest is the input to a dashboard analysis run.
type AnalysisRequest struct {
	Username string `json:"username"`
}

// Validate trims the username in place and rejects blank input.
func (r *AnalysisRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" {
		return ErrEmptyUsername
	}
	return nil
}
