// internal/models/risk.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Contribution records one scored answer against a category.
type Contribution struct {
	ID           string      `json:"id"`
	Text         string      `json:"text"`
	Response     interface{} `json:"response"`
	Score        float64     `json:"score"`
	Intervention string      `json:"intervention,omitempty"`
	Notes        string      `json:"notes,omitempty"`
}

// MultiplierEvent records one demographic adjustment.
type MultiplierEvent struct {
	Type   string  `json:"type"`
	Value  float64 `json:"value"`
	Reason string  `json:"reason"`
}

// CategoryScore is the running total for one risk category.
type CategoryScore struct {
	Score         float64           `json:"score"`
	MaxScore      float64           `json:"maxScore"`
	Contributions []Contribution    `json:"contributions"`
	Multipliers   []MultiplierEvent `json:"multipliers"`
}

// Percentage is score/maxScore*100, or 0 when nothing could be scored.
func (c *CategoryScore) Percentage() float64 {
	if c == nil || c.MaxScore == 0 {
		return 0
	}
	return c.Score / c.MaxScore * 100
}

// CategoryScores is an insertion-ordered map of category name to score.
type CategoryScores struct {
	names  []string
	scores map[string]*CategoryScore
}

// NewCategoryScores creates zeroed entries for names, in order.
// Duplicate names keep their first position.
func NewCategoryScores(names []string) *CategoryScores {
	cs := &CategoryScores{scores: make(map[string]*CategoryScore, len(names))}
	for _, name := range names {
		cs.Ensure(name)
	}
	return cs
}

// Ensure returns the entry for name, appending a zeroed one if missing.
func (cs *CategoryScores) Ensure(name string) *CategoryScore {
	if cs.scores == nil {
		cs.scores = make(map[string]*CategoryScore)
	}
	if score, ok := cs.scores[name]; ok {
		return score
	}
	score := &CategoryScore{
		Contributions: []Contribution{},
		Multipliers:   []MultiplierEvent{},
	}
	cs.names = append(cs.names, name)
	cs.scores[name] = score
	return score
}

// Get returns the entry for name.
func (cs *CategoryScores) Get(name string) (*CategoryScore, bool) {
	if cs == nil {
		return nil, false
	}
	score, ok := cs.scores[name]
	return score, ok
}

// Names returns category names in insertion order.
func (cs *CategoryScores) Names() []string {
	if cs == nil {
		return nil
	}
	out := make([]string, len(cs.names))
	copy(out, cs.names)
	return out
}

// Len is the number of categories.
func (cs *CategoryScores) Len() int {
	if cs == nil {
		return 0
	}
	return len(cs.names)
}

// Each calls fn for every category in insertion order.
func (cs *CategoryScores) Each(fn func(name string, score *CategoryScore)) {
	if cs == nil {
		return
	}
	for _, name := range cs.names {
		fn(name, cs.scores[name])
	}
}

// MarshalJSON writes a JSON object whose keys keep insertion order.
func (cs *CategoryScores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if cs != nil {
		for i, name := range cs.names {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(name)
			if err != nil {
				return nil, err
			}
			value, err := json.Marshal(cs.scores[name])
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(value)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object back, keeping key order.
func (cs *CategoryScores) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("category scores: expected object, got %v", tok)
	}
	fresh := &CategoryScores{scores: make(map[string]*CategoryScore)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)
		var score CategoryScore
		if err := dec.Decode(&score); err != nil {
			return err
		}
		entry := fresh.Ensure(name)
		*entry = score
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*cs = *fresh
	return nil
}
