package models

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
)

var (
	// ErrInvalidInsights is returned when numeric insights are not a JSON object.
	ErrInvalidInsights = errors.New("numeric insights must be a JSON object")
	// ErrInvalidAnalysis is returned when an AI analysis payload is not a JSON object.
	ErrInvalidAnalysis = errors.New("AI analysis payload must be a JSON object")
)

// AIAnalysis is the payload returned by the backend's AI full-analysis endpoint.
// Absent analysis objects stay nil.
type AIAnalysis struct {
	TextAnalysis    *AIInsights      `json:"text_analysis"`
	NumericAnalysis *NumericInsights `json:"numeric_analysis"`
	Logs            []any            `json:"logs"`
}

// UnmarshalJSON reads the payload leniently. Sections that are not objects
// stay nil and a logs value that is not an array is ignored.
func (a *AIAnalysis) UnmarshalJSON(data []byte) error {
	r := gjson.ParseBytes(data)
	if r.Type == gjson.Null {
		*a = AIAnalysis{}
		return nil
	}
	if !r.IsObject() {
		return ErrInvalidAnalysis
	}

	var out AIAnalysis
	if t := r.Get("text_analysis"); t.IsObject() {
		out.TextAnalysis = &AIInsights{}
		out.TextAnalysis.fromJSON(t)
	}
	if n := r.Get("numeric_analysis"); n.IsObject() {
		out.NumericAnalysis = &NumericInsights{}
		out.NumericAnalysis.fromJSON(n)
	}
	if l := r.Get("logs"); l.IsArray() {
		out.Logs = []any{}
		l.ForEach(func(_, v gjson.Result) bool {
			out.Logs = append(out.Logs, v.Value())
			return true
		})
	}
	*a = out
	return nil
}

// AIInsights is the free-text career content produced by the AI pipeline.
type AIInsights struct {
	Summary      string   `json:"summary"`
	Feedback     string   `json:"feedback"`
	LinkedInPost string   `json:"linkedin_post"`
	Strengths    []string `json:"strengths"`
	Weaknesses   []string `json:"weaknesses"`
	SkillGaps    []string `json:"skill_gaps"`
	Suggestions  []string `json:"suggestions"`
}

func (a *AIInsights) UnmarshalJSON(data []byte) error {
	a.fromJSON(gjson.ParseBytes(data))
	return nil
}

func (a *AIInsights) fromJSON(r gjson.Result) {
	*a = AIInsights{
		Summary:      stringField(r.Get("summary")),
		Feedback:     stringField(r.Get("feedback")),
		LinkedInPost: stringField(r.Get("linkedin_post")),
		Strengths:    stringList(r.Get("strengths")),
		Weaknesses:   stringList(r.Get("weaknesses")),
		SkillGaps:    stringList(r.Get("skill_gaps")),
		Suggestions:  stringList(r.Get("suggestions")),
	}
}

// Clone returns a deep copy.
func (a *AIInsights) Clone() *AIInsights {
	if a == nil {
		return nil
	}
	c := *a
	c.Strengths = append([]string{}, a.Strengths...)
	c.Weaknesses = append([]string{}, a.Weaknesses...)
	c.SkillGaps = append([]string{}, a.SkillGaps...)
	c.Suggestions = append([]string{}, a.Suggestions...)
	return &c
}

// SkillScore is a single skill rating, nominally 0-100.
type SkillScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// NumericInsights maps skills to scores. Skills keep the order in which the
// backend listed them.
type NumericInsights struct {
	Skills         []SkillScore
	ReadinessScore float64
}

// UnmarshalJSON reads {"skills": {...}, "readiness_score": n} preserving key order.
// Non-numeric skill values are skipped.
func (n *NumericInsights) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return ErrInvalidInsights
	}
	r := gjson.ParseBytes(data)
	if r.Type == gjson.Null {
		*n = NumericInsights{}
		return nil
	}
	if !r.IsObject() {
		return ErrInvalidInsights
	}

	n.fromJSON(r)
	return nil
}

func (n *NumericInsights) fromJSON(r gjson.Result) {
	out := NumericInsights{Skills: []SkillScore{}}
	if skills := r.Get("skills"); skills.IsObject() {
		skills.ForEach(func(key, value gjson.Result) bool {
			if value.Type == gjson.Number {
				out.Skills = append(out.Skills, SkillScore{Name: key.String(), Score: value.Float()})
			}
			return true
		})
	}
	out.ReadinessScore = floatField(r.Get("readiness_score"))
	*n = out
}

// MarshalJSON writes the same shape UnmarshalJSON reads, keeping skill order.
func (n NumericInsights) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"skills":{`)
	for i, s := range n.Skills {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(s.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(s.Score)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteString(`},"readiness_score":`)
	v, err := json.Marshal(n.ReadinessScore)
	if err != nil {
		return nil, err
	}
	buf.Write(v)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Clone returns a deep copy.
func (n *NumericInsights) Clone() *NumericInsights {
	if n == nil {
		return nil
	}
	c := *n
	c.Skills = append([]SkillScore{}, n.Skills...)
	return &c
}
