// Package models contains shared data models used across the GitPulse codebase.
package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrInvalidProfile is returned when a profile payload is not a JSON object.
var ErrInvalidProfile = errors.New("profile payload must be a JSON object")

// ProfileResult is the payload returned by the backend's profile analysis endpoint.
// Raw holds the exact bytes received so the payload can be forwarded unchanged.
type ProfileResult struct {
	Profile             Profile  `json:"profile"`
	Metrics             Metrics  `json:"metrics"`
	Charts              Charts   `json:"charts"`
	Skills              []string `json:"skills"`
	TechStackHighlights []string `json:"techStackHighlights"`

	Raw json.RawMessage `json:"-"`
}

// Profile is the GitHub identity block of a profile analysis.
type Profile struct {
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
	CreatedAt   string `json:"created_at"`
}

// Metrics are the aggregate repository counters.
type Metrics struct {
	TotalRepos   int64 `json:"totalRepos"`
	FilesScanned int64 `json:"filesScanned"`
	TotalBytes   int64 `json:"totalBytes"`
	TotalStars   int64 `json:"totalStars"`
	TotalForks   int64 `json:"totalForks"`
}

// Charts holds the pre-bucketed chart series computed by the backend.
type Charts struct {
	Languages         []ChartPoint `json:"languages"`
	TopStarred        []ChartPoint `json:"topStarred"`
	RepoContributions []ChartPoint `json:"repoContributions"`
	Activity          []TimePoint  `json:"activity"`
	SkillCategories   []ChartPoint `json:"skillCategories"`
}

// ChartPoint is one labelled magnitude in a categorical series.
type ChartPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// TimePoint is one bucket of a time-ordered series.
type TimePoint struct {
	Date  string  `json:"date"`
	Count float64 `json:"count"`
}

// UnmarshalJSON reads the payload leniently: only a non-object top level is an
// error, and mistyped sub-fields decode to their zero values.
func (p *ProfileResult) UnmarshalJSON(data []byte) error {
	r := gjson.ParseBytes(data)
	if r.Type == gjson.Null {
		*p = ProfileResult{}
		return nil
	}
	if !r.IsObject() {
		return ErrInvalidProfile
	}

	out := ProfileResult{
		Skills:              stringList(r.Get("skills")),
		TechStackHighlights: stringList(r.Get("techStackHighlights")),
	}
	out.Profile.fromJSON(r.Get("profile"))
	out.Metrics.fromJSON(r.Get("metrics"))
	out.Charts.fromJSON(r.Get("charts"))
	*p = out
	return nil
}

func (p *Profile) UnmarshalJSON(data []byte) error {
	p.fromJSON(gjson.ParseBytes(data))
	return nil
}

func (p *Profile) fromJSON(r gjson.Result) {
	*p = Profile{
		Login:       stringField(r.Get("login")),
		Name:        stringField(r.Get("name")),
		AvatarURL:   stringField(r.Get("avatar_url")),
		HTMLURL:     stringField(r.Get("html_url")),
		Bio:         stringField(r.Get("bio")),
		Location:    stringField(r.Get("location")),
		Company:     stringField(r.Get("company")),
		Followers:   int(intField(r.Get("followers"))),
		Following:   int(intField(r.Get("following"))),
		PublicRepos: int(intField(r.Get("public_repos"))),
		CreatedAt:   stringField(r.Get("created_at")),
	}
}

func (m *Metrics) UnmarshalJSON(data []byte) error {
	m.fromJSON(gjson.ParseBytes(data))
	return nil
}

func (m *Metrics) fromJSON(r gjson.Result) {
	*m = Metrics{
		TotalRepos:   intField(r.Get("totalRepos")),
		FilesScanned: intField(r.Get("filesScanned")),
		TotalBytes:   intField(r.Get("totalBytes")),
		TotalStars:   intField(r.Get("totalStars")),
		TotalForks:   intField(r.Get("totalForks")),
	}
}

func (c *Charts) UnmarshalJSON(data []byte) error {
	c.fromJSON(gjson.ParseBytes(data))
	return nil
}

func (c *Charts) fromJSON(r gjson.Result) {
	*c = Charts{
		Languages:         chartPoints(r.Get("languages")),
		TopStarred:        chartPoints(r.Get("topStarred")),
		RepoContributions: chartPoints(r.Get("repoContributions")),
		Activity:          timePoints(r.Get("activity")),
		SkillCategories:   chartPoints(r.Get("skillCategories")),
	}
}

// DecodeProfile parses a profile payload, keeping the raw bytes.
// JSON null decodes to an empty, normalized result.
func DecodeProfile(data []byte) (*ProfileResult, error) {
	var p ProfileResult
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding profile payload: %w", err)
	}
	p.Raw = append(json.RawMessage(nil), data...)
	p.Normalize()
	return &p, nil
}

// Normalize replaces nil slices with empty ones so every field access is total.
func (p *ProfileResult) Normalize() {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.TechStackHighlights == nil {
		p.TechStackHighlights = []string{}
	}
	c := &p.Charts
	if c.Languages == nil {
		c.Languages = []ChartPoint{}
	}
	if c.TopStarred == nil {
		c.TopStarred = []ChartPoint{}
	}
	if c.RepoContributions == nil {
		c.RepoContributions = []ChartPoint{}
	}
	if c.Activity == nil {
		c.Activity = []TimePoint{}
	}
	if c.SkillCategories == nil {
		c.SkillCategories = []ChartPoint{}
	}
}

// Payload returns the JSON to forward to the AI pipeline: the original bytes
// when available, otherwise a re-encoding of the typed view.
func (p *ProfileResult) Payload() (json.RawMessage, error) {
	if len(p.Raw) > 0 {
		return p.Raw, nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding profile payload: %w", err)
	}
	return b, nil
}

// Clone returns a deep copy.
func (p *ProfileResult) Clone() *ProfileResult {
	if p == nil {
		return nil
	}
	c := *p
	c.Skills = append([]string{}, p.Skills...)
	c.TechStackHighlights = append([]string{}, p.TechStackHighlights...)
	c.Charts = Charts{
		Languages:         append([]ChartPoint{}, p.Charts.Languages...),
		TopStarred:        append([]ChartPoint{}, p.Charts.TopStarred...),
		RepoContributions: append([]ChartPoint{}, p.Charts.RepoContributions...),
		Activity:          append([]TimePoint{}, p.Charts.Activity...),
		SkillCategories:   append([]ChartPoint{}, p.Charts.SkillCategories...),
	}
	c.Raw = append(json.RawMessage(nil), p.Raw...)
	return &c
}
