package view

import (
	"bytes"
	"testing"

	"github.com/kiranshivaraju/gitpulse/internal/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Complete(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Build(sampleSnapshot())))
	out := buf.String()

	for _, want := range []string{
		"octocat (The Octocat)",
		"Code Volume",
		"1.5 KB",
		"Language Usage (pie)",
		"Top Starred Repositories (bar)",
		"Activity Timeline (line)",
		"2026-08 → 2026-09",
		"72.5 / 100",
		"• Improve CSS (current score: 20)",
		"Kubernetes",
		dashboard.MsgAICompleted,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Contributions per Repository")
}

func TestRender_Error(t *testing.T) {
	snap := dashboard.Snapshot{
		Username: "ghost",
		State:    dashboard.StateError,
		Error:    "GitHub user not found. Please check the username.",
	}
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Build(snap)))

	assert.Contains(t, buf.String(), "GitHub user not found. Please check the username.")
	assert.Contains(t, buf.String(), "GitPulse · ghost")
}

func TestRenderShare_Percentages(t *testing.T) {
	out := renderShare([]Point{{Label: "Go", Value: 3}, {Label: "Rust", Value: 1}})
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "25.0%")
}

func TestRenderSparkline_Flat(t *testing.T) {
	out := renderSparkline([]Point{{Label: "a", Value: 2}, {Label: "b", Value: 2}})
	assert.Contains(t, out, "▁▁")
}
