package dashboard

import (
	"fmt"

	"github.com/kiranshivaraju/gitpulse/pkg/format"
	"github.com/kiranshivaraju/gitpulse/pkg/models"
)

const (
	actionScoreThreshold = 50
	maxActionItems       = 4
)

// Snapshot is a point-in-time copy of a Session's state. It shares no memory
// with the Session.
type Snapshot struct {
	Username    string                  `json:"username"`
	State       State                   `json:"state"`
	Loading     bool                    `json:"loading"`
	Error       string                  `json:"error,omitempty"`
	Profile     *models.ProfileResult   `json:"profile"`
	Insights    *models.AIInsights      `json:"insights"`
	Numeric     *models.NumericInsights `json:"numeric"`
	Logs        []models.LogEntry       `json:"logs"`
	ActionItems []string                `json:"action_items"`
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Username:    s.username,
		State:       s.state,
		Loading:     s.loading,
		Error:       s.errMsg,
		Profile:     s.profile.Clone(),
		Insights:    s.insights.Clone(),
		Numeric:     s.numeric.Clone(),
		Logs:        append([]models.LogEntry{}, s.logs...),
		ActionItems: ActionItems(s.numeric),
	}
}

// ActionItems suggests improvements for skills scoring below 50, in the
// order the backend listed them, at most four.
func ActionItems(n *models.NumericInsights) []string {
	items := []string{}
	if n == nil {
		return items
	}
	for _, skill := range n.Skills {
		if skill.Score >= actionScoreThreshold {
			continue
		}
		items = append(items, fmt.Sprintf("Improve %s (current score: %s)", skill.Name, format.Score(skill.Score)))
		if len(items) == maxActionItems {
			break
		}
	}
	return items
}
