package view

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kiranshivaraju/gitpulse/pkg/format"
)

var (
	accentPrimary   = lipgloss.Color("#50E3C2")
	accentSecondary = lipgloss.Color("#F6AE2D")
	mutedText       = lipgloss.Color("#8CA1AE")
	warningText     = lipgloss.Color("#FF6B6B")
	panelBorder     = lipgloss.Color("#2D6A80")
)

var (
	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(accentPrimary)

	subHeaderStyle = lipgloss.NewStyle().
		Foreground(mutedText)

	errorStyle = lipgloss.NewStyle().
		Foreground(warningText).
		Bold(true)

	panelTitleStyle = lipgloss.NewStyle().
		Foreground(accentSecondary).
		Bold(true)

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(panelBorder).
		Padding(0, 1)

	cardValueStyle = lipgloss.NewStyle().
		Bold(true)
)

const barWidth = 30

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Render writes a terminal rendering of v to w.
func Render(w io.Writer, v View) error {
	var sections []string

	sections = append(sections, renderHeader(v))
	if v.Error != "" {
		sections = append(sections, errorStyle.Render("✖ "+v.Error))
	}
	if len(v.Metrics) > 0 {
		sections = append(sections, renderMetrics(v.Metrics))
	}
	for _, c := range v.Charts {
		if len(c.Points) == 0 {
			continue
		}
		sections = append(sections, panel(c.Title+" ("+string(c.Kind)+")", renderChart(c)))
	}
	if len(v.TechStack) > 0 {
		sections = append(sections, panel("Tech Stack Highlights", strings.Join(v.TechStack, " · ")))
	}
	if s := renderInsights(v); s != "" {
		sections = append(sections, s)
	}
	if len(v.Timeline.Entries) > 0 {
		sections = append(sections, panel("Analysis Log", renderTimeline(v.Timeline)))
	}

	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, sections...))
	return err
}

// RenderLogLine formats a single progress line for streaming output.
func RenderLogLine(timestamp, message string) string {
	return subHeaderStyle.Render("["+timestamp+"]") + " " + message
}

func renderHeader(v View) string {
	title := "GitPulse"
	if v.Profile.Login != "" {
		title += " · " + v.Profile.Login
		if v.Profile.Name != "" {
			title += " (" + v.Profile.Name + ")"
		}
	} else if v.Username != "" {
		title += " · " + v.Username
	}

	lines := []string{headerStyle.Render(title)}

	var details []string
	if v.Profile.Bio != "" {
		details = append(details, v.Profile.Bio)
	}
	if v.Profile.Location != "" {
		details = append(details, v.Profile.Location)
	}
	if v.Profile.Company != "" {
		details = append(details, v.Profile.Company)
	}
	if v.Profile.Login != "" {
		details = append(details, fmt.Sprintf("%d followers · %d following · %d public repos",
			v.Profile.Followers, v.Profile.Following, v.Profile.PublicRepos))
	}
	if len(details) > 0 {
		lines = append(lines, subHeaderStyle.Render(strings.Join(details, " | ")))
	}

	status := "state: " + v.State
	if v.Loading {
		status += " (loading…)"
	}
	lines = append(lines, subHeaderStyle.Render(status))
	return strings.Join(lines, "\n")
}

func renderMetrics(cards []Card) string {
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		body := subHeaderStyle.Render(c.Label) + "\n" + cardValueStyle.Render(c.Value)
		rendered = append(rendered, panelStyle.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func renderChart(c Chart) string {
	switch c.Kind {
	case ChartPie:
		return renderShare(c.Points)
	case ChartLine:
		return renderSparkline(c.Points)
	default:
		return renderBars(c.Points)
	}
}

// renderShare lists each slice with its percentage of the total.
func renderShare(points []Point) string {
	total := 0.0
	for _, p := range points {
		total += p.Value
	}
	labelW := maxLabelWidth(points)

	var b strings.Builder
	for i, p := range points {
		pct := 0.0
		if total > 0 {
			pct = p.Value / total * 100
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-*s %s %5.1f%%", labelW, p.Label, bar(pct, 100), pct)
	}
	return b.String()
}

func renderBars(points []Point) string {
	maxVal := 0.0
	for _, p := range points {
		maxVal = math.Max(maxVal, p.Value)
	}
	labelW := maxLabelWidth(points)

	var b strings.Builder
	for i, p := range points {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-*s %s %s", labelW, p.Label, bar(p.Value, maxVal), format.Score(p.Value))
	}
	return b.String()
}

func renderSparkline(points []Point) string {
	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		minVal = math.Min(minVal, p.Value)
		maxVal = math.Max(maxVal, p.Value)
	}

	var spark strings.Builder
	for _, p := range points {
		idx := 0
		if maxVal > minVal {
			idx = int((p.Value - minVal) / (maxVal - minVal) * float64(len(sparkLevels)-1))
		}
		spark.WriteRune(sparkLevels[idx])
	}

	first, last := points[0], points[len(points)-1]
	return fmt.Sprintf("%s\n%s → %s (peak %s)",
		spark.String(), first.Label, last.Label, format.Score(maxVal))
}

func bar(value, maxVal float64) string {
	n := 0
	if maxVal > 0 && value > 0 {
		n = int(math.Round(value / maxVal * barWidth))
	}
	if n > barWidth {
		n = barWidth
	}
	return lipgloss.NewStyle().Foreground(accentPrimary).Render(strings.Repeat("█", n)) +
		strings.Repeat(" ", barWidth-n)
}

func maxLabelWidth(points []Point) int {
	w := 0
	for _, p := range points {
		w = max(w, lipgloss.Width(p.Label))
	}
	return w
}

func renderInsights(v View) string {
	in := v.Insights
	var parts []string

	if v.Readiness != "" {
		parts = append(parts, panel("Career Readiness", cardValueStyle.Render(v.Readiness+" / 100")))
	}
	if len(v.SkillScores) > 0 {
		parts = append(parts, panel("Skill Scores", renderBars(v.SkillScores)))
	}
	if in.Summary != "" {
		parts = append(parts, panel("Summary", in.Summary))
	}
	if in.Feedback != "" {
		parts = append(parts, panel("Feedback", in.Feedback))
	}
	for _, l := range []struct {
		title string
		items []string
	}{
		{"Strengths", in.Strengths},
		{"Weaknesses", in.Weaknesses},
		{"Skill Gaps", in.SkillGaps},
		{"Suggestions", in.Suggestions},
		{"Action Items", v.ActionItems},
	} {
		if len(l.items) > 0 {
			parts = append(parts, panel(l.title, bullets(l.items)))
		}
	}
	if in.LinkedInPost != "" {
		parts = append(parts, panel("LinkedIn Post", in.LinkedInPost))
	}

	return strings.Join(parts, "\n")
}

func renderTimeline(t Timeline) string {
	lines := make([]string, 0, len(t.Entries))
	for _, e := range t.Entries {
		lines = append(lines, RenderLogLine(e.Timestamp, e.Message))
	}
	return strings.Join(lines, "\n")
}

func bullets(items []string) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, "• "+it)
	}
	return strings.Join(lines, "\n")
}

func panel(title, body string) string {
	return panelStyle.Render(panelTitleStyle.Render(title) + "\n" + body)
}
