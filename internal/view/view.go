// Package view turns dashboard snapshots into render-ready view models.
package view

import (
	"github.com/kiranshivaraju/gitpulse/internal/dashboard"
	"github.com/kiranshivaraju/gitpulse/pkg/format"
	"github.com/kiranshivaraju/gitpulse/pkg/models"
)

// ChartKind is the visual form chosen for a data series.
type ChartKind string

const (
	ChartPie  ChartKind = "pie"
	ChartBar  ChartKind = "bar"
	ChartLine ChartKind = "line"
)

// SeriesShape describes what a series measures.
type SeriesShape int

const (
	// ShapeShare is a categorical share of a whole.
	ShapeShare SeriesShape = iota
	// ShapeRanked is a magnitude per item, compared across items.
	ShapeRanked
	// ShapeTimeline is a magnitude over ordered time buckets.
	ShapeTimeline
)

// KindFor picks the chart kind for a series shape.
func KindFor(shape SeriesShape) ChartKind {
	switch shape {
	case ShapeShare:
		return ChartPie
	case ShapeTimeline:
		return ChartLine
	default:
		return ChartBar
	}
}

// ScrollBehavior tells a log list how to reach its newest entry.
type ScrollBehavior string

const (
	ScrollSmooth  ScrollBehavior = "smooth"
	ScrollInstant ScrollBehavior = "instant"
)

// View is everything a dashboard renderer needs. Every field has a usable
// zero value; slices are never nil.
type View struct {
	Username    string      `json:"username"`
	State       string      `json:"state"`
	Loading     bool        `json:"loading"`
	Error       string      `json:"error,omitempty"`
	Profile     ProfileCard `json:"profile"`
	Metrics     []Card      `json:"metrics"`
	Charts      []Chart     `json:"charts"`
	Skills      []string    `json:"skills"`
	TechStack   []string    `json:"tech_stack"`
	Insights    Insights    `json:"insights"`
	Readiness   string      `json:"readiness"`
	SkillScores []Point     `json:"skill_scores"`
	ActionItems []string    `json:"action_items"`
	Timeline    Timeline    `json:"timeline"`
}

// ProfileCard is the identity header shown above the metrics.
type ProfileCard struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	AvatarURL   string `json:"avatar_url"`
	HTMLURL     string `json:"html_url"`
	Bio         string `json:"bio"`
	Location    string `json:"location"`
	Company     string `json:"company"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	PublicRepos int    `json:"public_repos"`
}

// Card is one labelled metric with its display-formatted value.
type Card struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Point is one labelled value in a chart series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Chart is a titled series and the kind it should be drawn as.
type Chart struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Kind   ChartKind `json:"kind"`
	Points []Point   `json:"points"`
}

// Insights is the AI-written career content. Lists are never nil.
type Insights struct {
	Summary      string   `json:"summary"`
	Feedback     string   `json:"feedback"`
	LinkedInPost string   `json:"linkedin_post"`
	Strengths    []string `json:"strengths"`
	Weaknesses   []string `json:"weaknesses"`
	SkillGaps    []string `json:"skill_gaps"`
	Suggestions  []string `json:"suggestions"`
}

// Timeline is the run log and how a list should scroll to its newest entry.
type Timeline struct {
	Entries []models.LogEntry `json:"entries"`
	Scroll  ScrollBehavior    `json:"scroll"`
}

// chartSpecs lists the profile series in display order.
var chartSpecs = []struct {
	id     string
	title  string
	shape  SeriesShape
	points func(models.Charts) []Point
}{
	{"languages", "Language Usage", ShapeShare, func(c models.Charts) []Point { return fromChart(c.Languages) }},
	{"top_starred", "Top Starred Repositories", ShapeRanked, func(c models.Charts) []Point { return fromChart(c.TopStarred) }},
	{"repo_contributions", "Contributions per Repository", ShapeRanked, func(c models.Charts) []Point { return fromChart(c.RepoContributions) }},
	{"activity", "Activity Timeline", ShapeTimeline, func(c models.Charts) []Point { return fromTime(c.Activity) }},
	{"skill_categories", "Skill Categories", ShapeShare, func(c models.Charts) []Point { return fromChart(c.SkillCategories) }},
}

// Build maps a snapshot onto a View.
func Build(snap dashboard.Snapshot) View {
	v := View{
		Username:    snap.Username,
		State:       string(snap.State),
		Loading:     snap.Loading,
		Error:       snap.Error,
		Metrics:     []Card{},
		Charts:      []Chart{},
		Skills:      []string{},
		TechStack:   []string{},
		SkillScores: []Point{},
		ActionItems: append([]string{}, snap.ActionItems...),
		Insights:    buildInsights(snap.Insights),
		Timeline:    buildTimeline(snap.Logs),
	}

	if p := snap.Profile; p != nil {
		v.Profile = ProfileCard{
			Login:       p.Profile.Login,
			Name:        p.Profile.Name,
			AvatarURL:   p.Profile.AvatarURL,
			HTMLURL:     p.Profile.HTMLURL,
			Bio:         p.Profile.Bio,
			Location:    p.Profile.Location,
			Company:     p.Profile.Company,
			Followers:   p.Profile.Followers,
			Following:   p.Profile.Following,
			PublicRepos: p.Profile.PublicRepos,
		}
		v.Metrics = buildMetrics(p.Metrics)
		for _, spec := range chartSpecs {
			v.Charts = append(v.Charts, Chart{
				ID:     spec.id,
				Title:  spec.title,
				Kind:   KindFor(spec.shape),
				Points: spec.points(p.Charts),
			})
		}
		v.Skills = append(v.Skills, p.Skills...)
		v.TechStack = append(v.TechStack, p.TechStackHighlights...)
	}

	if n := snap.Numeric; n != nil {
		v.Readiness = format.Score(n.ReadinessScore)
		for _, s := range n.Skills {
			v.SkillScores = append(v.SkillScores, Point{Label: s.Name, Value: s.Score})
		}
	}

	return v
}

func buildMetrics(m models.Metrics) []Card {
	return []Card{
		{Label: "Repositories", Value: format.Count(m.TotalRepos)},
		{Label: "Files Scanned", Value: format.Count(m.FilesScanned)},
		{Label: "Code Volume", Value: format.Bytes(m.TotalBytes)},
		{Label: "Stars", Value: format.Count(m.TotalStars)},
		{Label: "Forks", Value: format.Count(m.TotalForks)},
	}
}

func buildInsights(a *models.AIInsights) Insights {
	in := Insights{
		Strengths:   []string{},
		Weaknesses:  []string{},
		SkillGaps:   []string{},
		Suggestions: []string{},
	}
	if a == nil {
		return in
	}
	in.Summary = a.Summary
	in.Feedback = a.Feedback
	in.LinkedInPost = a.LinkedInPost
	in.Strengths = append(in.Strengths, a.Strengths...)
	in.Weaknesses = append(in.Weaknesses, a.Weaknesses...)
	in.SkillGaps = append(in.SkillGaps, a.SkillGaps...)
	in.Suggestions = append(in.Suggestions, a.Suggestions...)
	return in
}

// buildTimeline scrolls smoothly once there is a previous entry to scroll from.
func buildTimeline(logs []models.LogEntry) Timeline {
	t := Timeline{
		Entries: append([]models.LogEntry{}, logs...),
		Scroll:  ScrollInstant,
	}
	if len(logs) >= 2 {
		t.Scroll = ScrollSmooth
	}
	return t
}

func fromChart(in []models.ChartPoint) []Point {
	out := make([]Point, 0, len(in))
	for _, p := range in {
		out = append(out, Point{Label: p.Name, Value: p.Value})
	}
	return out
}

func fromTime(in []models.TimePoint) []Point {
	out := make([]Point, 0, len(in))
	for _, p := range in {
		out = append(out, Point{Label: p.Date, Value: p.Count})
	}
	return out
}
