// Package dashboard drives a single analysis run: profile fetch, AI analysis,
// progress log and the user-visible error state.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/gitpulse/internal/backend"
	"github.com/kiranshivaraju/gitpulse/internal/fetch"
	"github.com/kiranshivaraju/gitpulse/internal/sanitize"
	"github.com/kiranshivaraju/gitpulse/pkg/models"
)

// State is a step of the analysis state machine.
type State string

const (
	StateIdle            State = "idle"
	StateValidating      State = "validating"
	StateFetchingProfile State = "fetching-profile"
	StateFetchingAI      State = "fetching-ai"
	StateComplete        State = "complete"
	StateError           State = "error"
)

// Timeline messages and user-facing errors.
const (
	MsgKickstart       = "Kickstarting GitHub profile analysis"
	MsgProfileReceived = "Repository summary received"
	MsgSendingToAI     = "Sending profile summary to AI pipeline"
	MsgAICompleted     = "AI pipeline completed successfully"
	MsgAnalysisFailed  = "Analysis failed"

	MsgTimedOut       = "Request timed out. Please try again."
	MsgGenericFailure = "Something went wrong. Please try again."
)

// ErrRunInProgress is returned when Run is called while another run is loading.
var ErrRunInProgress = errors.New("an analysis run is already in progress")

// Listener receives a snapshot after every state change.
// Listeners run synchronously on the goroutine that called Run.
type Listener func(Snapshot)

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the clock used for log timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithListener registers a listener at construction time.
func WithListener(l Listener) Option {
	return func(s *Session) { s.listeners = append(s.listeners, l) }
}

// Session holds the in-memory state of one dashboard screen.
// It is safe for concurrent use; at most one run is in flight at a time.
type Session struct {
	client backend.Client
	now    func() time.Time

	mu        sync.Mutex
	state     State
	loading   bool
	errMsg    string
	username  string
	profile   *models.ProfileResult
	insights  *models.AIInsights
	numeric   *models.NumericInsights
	logs      []models.LogEntry
	listeners []Listener
}

// NewSession creates an idle Session backed by client.
func NewSession(client backend.Client, opts ...Option) *Session {
	s := &Session{
		client: client,
		now:    time.Now,
		state:  StateIdle,
		logs:   []models.LogEntry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnChange registers a listener for subsequent state changes.
func (s *Session) OnChange(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Run executes one analysis for username and blocks until it completes or
// fails. The returned error is the underlying failure; the message shown to
// users is available from Snapshot().Error.
func (s *Session) Run(ctx context.Context, username string) (err error) {
	user, err := s.begin(username)
	if err != nil {
		return err
	}

	start := s.now()
	slog.Info("analysis started", "username", user)

	defer func() {
		if r := recover(); r != nil {
			s.finish(fmt.Errorf("panic: %v", r))
			panic(r)
		}
		s.finish(err)
		if err != nil {
			slog.Warn("analysis failed",
				"username", user,
				"error", err,
				"duration_ms", s.now().Sub(start).Milliseconds(),
			)
			return
		}
		slog.Info("analysis completed",
			"username", user,
			"duration_ms", s.now().Sub(start).Milliseconds(),
		)
	}()

	return s.pipeline(ctx, user)
}

// begin validates the username and, on success, clears the previous run and
// enters fetching-profile. A blank username leaves prior results untouched.
func (s *Session) begin(username string) (string, error) {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return "", ErrRunInProgress
	}

	s.state = StateValidating
	req := models.AnalysisRequest{Username: username}
	if err := req.Validate(); err != nil {
		s.state = StateError
		s.errMsg = err.Error()
		snap, listeners := s.snapshotLocked(), s.listenersLocked()
		s.mu.Unlock()
		notify(listeners, snap)
		return "", err
	}

	s.username = req.Username
	s.errMsg = ""
	s.profile = nil
	s.insights = nil
	s.numeric = nil
	s.logs = []models.LogEntry{}
	s.loading = true
	s.state = StateFetchingProfile
	s.appendLogLocked(MsgKickstart)

	snap, listeners := s.snapshotLocked(), s.listenersLocked()
	s.mu.Unlock()
	notify(listeners, snap)
	return req.Username, nil
}

// pipeline runs the two backend stages in order.
func (s *Session) pipeline(ctx context.Context, username string) error {
	profile, err := s.client.AnalyzeProfile(ctx, username)
	if err != nil {
		return err
	}
	if profile == nil {
		profile = &models.ProfileResult{}
	}
	profile.Normalize()

	s.update(func() {
		s.profile = profile
		s.appendLogLocked(MsgProfileReceived)
	})
	s.update(func() {
		s.state = StateFetchingAI
		s.appendLogLocked(MsgSendingToAI)
	})

	result, err := s.client.FullAnalysis(ctx, profile)
	if err != nil {
		return err
	}
	if result == nil {
		result = &models.AIAnalysis{}
	}

	s.update(func() {
		s.insights = result.TextAnalysis
		s.numeric = result.NumericAnalysis
		for _, line := range sanitize.Logs(result.Logs) {
			s.appendLogLocked(line)
		}
	})
	return nil
}

// finish moves the run into its terminal state and clears the loading flag.
func (s *Session) finish(err error) {
	s.update(func() {
		s.loading = false
		if err == nil {
			s.state = StateComplete
			s.appendLogLocked(MsgAICompleted)
			return
		}
		s.state = StateError
		s.errMsg = Message(err)
		s.appendLogLocked(MsgAnalysisFailed)
	})
}

// update applies fn under the lock and notifies listeners afterwards.
func (s *Session) update(fn func()) {
	s.mu.Lock()
	fn()
	snap, listeners := s.snapshotLocked(), s.listenersLocked()
	s.mu.Unlock()
	notify(listeners, snap)
}

func (s *Session) appendLogLocked(msg string) {
	s.logs = append(s.logs, models.LogEntry{
		ID:        uuid.New(),
		Timestamp: s.now().Format("15:04:05"),
		Message:   msg,
	})
}

func (s *Session) listenersLocked() []Listener {
	return append([]Listener(nil), s.listeners...)
}

func notify(listeners []Listener, snap Snapshot) {
	for _, l := range listeners {
		l(snap)
	}
}

// Message converts a run failure into the text shown to users.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if fetch.IsTimeout(err) {
		return MsgTimedOut
	}
	var se *backend.StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgGenericFailure
}
