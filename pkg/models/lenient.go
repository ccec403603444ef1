package models

import "github.com/tidwall/gjson"

// Backend payloads are read field by field. A field of the wrong JSON type
// falls back to its zero value instead of failing the whole payload.

func stringField(r gjson.Result) string {
	if r.Type == gjson.String {
		return r.Str
	}
	return ""
}

// floatField accepts numbers and numeric strings.
func floatField(r gjson.Result) float64 {
	switch r.Type {
	case gjson.Number, gjson.String:
		return r.Float()
	}
	return 0
}

// intField accepts numbers and numeric strings; fractions are truncated.
func intField(r gjson.Result) int64 {
	switch r.Type {
	case gjson.Number, gjson.String:
		return r.Int()
	}
	return 0
}

// stringList keeps the string elements of an array. Anything else is empty.
func stringList(r gjson.Result) []string {
	out := []string{}
	if !r.IsArray() {
		return out
	}
	r.ForEach(func(_, v gjson.Result) bool {
		if v.Type == gjson.String {
			out = append(out, v.Str)
		}
		return true
	})
	return out
}

func chartPoints(r gjson.Result) []ChartPoint {
	out := []ChartPoint{}
	if !r.IsArray() {
		return out
	}
	r.ForEach(func(_, v gjson.Result) bool {
		if v.IsObject() {
			out = append(out, ChartPoint{
				Name:  stringField(v.Get("name")),
				Value: floatField(v.Get("value")),
			})
		}
		return true
	})
	return out
}

func timePoints(r gjson.Result) []TimePoint {
	out := []TimePoint{}
	if !r.IsArray() {
		return out
	}
	r.ForEach(func(_, v gjson.Result) bool {
		if v.IsObject() {
			out = append(out, TimePoint{
				Date:  stringField(v.Get("date")),
				Count: floatField(v.Get("count")),
			})
		}
		return true
	})
	return out
}
