package view

import (
	"testing"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/gitpulse/internal/dashboard"
	"github.com/kiranshivaraju/gitpulse/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() dashboard.Snapshot {
	profile := &models.ProfileResult{
		Profile: models.Profile{Login: "octocat", Name: "The Octocat", Followers: 10},
		Metrics: models.Metrics{TotalRepos: 1200, FilesScanned: 34, TotalBytes: 1536, TotalStars: 5, TotalForks: 2},
		Charts: models.Charts{
			Languages:  []models.ChartPoint{{Name: "Go", Value: 3}, {Name: "Rust", Value: 1}},
			TopStarred: []models.ChartPoint{{Name: "hello-world", Value: 99}},
			Activity:   []models.TimePoint{{Date: "2026-08", Count: 4}, {Date: "2026-09", Count: 9}},
		},
		TechStackHighlights: []string{"Kubernetes"},
	}
	profile.Normalize()

	return dashboard.Snapshot{
		Username: "octocat",
		State:    dashboard.StateComplete,
		Profile:  profile,
		Insights: &models.AIInsights{Summary: "Solid", Strengths: []string{"Go"}},
		Numeric: &models.NumericInsights{
			Skills:         []models.SkillScore{{Name: "Go", Score: 90}, {Name: "CSS", Score: 20}},
			ReadinessScore: 72.5,
		},
		ActionItems: []string{"Improve CSS (current score: 20)"},
		Logs: []models.LogEntry{
			{ID: uuid.New(), Timestamp: "09:00:00", Message: dashboard.MsgKickstart},
			{ID: uuid.New(), Timestamp: "09:00:05", Message: dashboard.MsgAICompleted},
		},
	}
}

func TestKindFor(t *testing.T) {
	assert.Equal(t, ChartPie, KindFor(ShapeShare))
	assert.Equal(t, ChartBar, KindFor(ShapeRanked))
	assert.Equal(t, ChartLine, KindFor(ShapeTimeline))
}

func TestBuild_Complete(t *testing.T) {
	v := Build(sampleSnapshot())

	assert.Equal(t, "octocat", v.Profile.Login)
	assert.Equal(t, "complete", v.State)
	assert.Equal(t, []Card{
		{Label: "Repositories", Value: "1,200"},
		{Label: "Files Scanned", Value: "34"},
		{Label: "Code Volume", Value: "1.5 KB"},
		{Label: "Stars", Value: "5"},
		{Label: "Forks", Value: "2"},
	}, v.Metrics)

	kinds := map[string]ChartKind{}
	for _, c := range v.Charts {
		kinds[c.ID] = c.Kind
	}
	assert.Equal(t, map[string]ChartKind{
		"languages":          ChartPie,
		"top_starred":        ChartBar,
		"repo_contributions": ChartBar,
		"activity":           ChartLine,
		"skill_categories":   ChartPie,
	}, kinds)

	require.Len(t, v.Charts, 5)
	assert.Equal(t, []Point{{Label: "Go", Value: 3}, {Label: "Rust", Value: 1}}, v.Charts[0].Points)
	assert.Equal(t, []Point{{Label: "2026-08", Value: 4}, {Label: "2026-09", Value: 9}}, v.Charts[3].Points)
	assert.NotNil(t, v.Charts[2].Points)

	assert.Equal(t, "72.5", v.Readiness)
	assert.Equal(t, []Point{{Label: "Go", Value: 90}, {Label: "CSS", Value: 20}}, v.SkillScores)
	assert.Equal(t, "Solid", v.Insights.Summary)
	assert.Equal(t, []string{"Kubernetes"}, v.TechStack)
	assert.Equal(t, []string{"Improve CSS (current score: 20)"}, v.ActionItems)
	assert.Equal(t, ScrollSmooth, v.Timeline.Scroll)
}

func TestBuild_EmptySnapshotDefaults(t *testing.T) {
	v := Build(dashboard.Snapshot{State: dashboard.StateIdle})

	assert.Equal(t, "idle", v.State)
	assert.NotNil(t, v.Metrics)
	assert.NotNil(t, v.Charts)
	assert.NotNil(t, v.Skills)
	assert.NotNil(t, v.TechStack)
	assert.NotNil(t, v.SkillScores)
	assert.NotNil(t, v.ActionItems)
	assert.NotNil(t, v.Insights.Strengths)
	assert.NotNil(t, v.Insights.SkillGaps)
	assert.NotNil(t, v.Timeline.Entries)
	assert.Empty(t, v.Readiness)
	assert.Equal(t, ProfileCard{}, v.Profile)
}

func TestBuild_ScrollBehavior(t *testing.T) {
	one := dashboard.Snapshot{Logs: []models.LogEntry{{Message: "a"}}}
	assert.Equal(t, ScrollInstant, Build(one).Timeline.Scroll)

	none := dashboard.Snapshot{}
	assert.Equal(t, ScrollInstant, Build(none).Timeline.Scroll)

	two := dashboard.Snapshot{Logs: []models.LogEntry{{Message: "a"}, {Message: "b"}}}
	assert.Equal(t, ScrollSmooth, Build(two).Timeline.Scroll)
}

func TestBuild_DoesNotAliasSnapshot(t *testing.T) {
	snap := sampleSnapshot()
	v := Build(snap)
	v.ActionItems[0] = "changed"
	v.Timeline.Entries[0].Message = "changed"

	assert.Equal(t, "Improve CSS (current score: 20)", snap.ActionItems[0])
	assert.Equal(t, dashboard.MsgKickstart, snap.Logs[0].Message)
}
