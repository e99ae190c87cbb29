package survey

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// QuestionType is the answer shape of a question.
type QuestionType string

const (
	QuestionTypeSingleChoice QuestionType = "single_choice"
	QuestionTypeNumeric      QuestionType = "numeric"
	QuestionTypeFreeText     QuestionType = "free_text"
)

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeSingleChoice, QuestionTypeNumeric, QuestionTypeFreeText:
		return true
	}
	return false
}

// DefaultSource is the source configuration every unknown source falls back to.
const DefaultSource = "general"

// DefaultOrderRef is the only scalar accepted for a source configuration order.
const DefaultOrderRef = "defaultOrder"

// Section groups related questions.
type Section struct {
	ID        string     `yaml:"id" json:"id"`
	Title     string     `yaml:"title" json:"title"`
	Questions []Question `yaml:"questions" json:"questions"`
}

// Question returns the question with the given id.
func (s Section) Question(id string) (Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Question is a single survey prompt. Scoring, when present on a
// single-choice question, is parallel to Options.
type Question struct {
	ID             string       `yaml:"id" json:"id"`
	Text           string       `yaml:"text" json:"text"`
	Type           QuestionType `yaml:"type" json:"type"`
	Options        []string     `yaml:"options,omitempty" json:"options,omitempty"`
	Scoring        []float64    `yaml:"scoring,omitempty" json:"scoring,omitempty"`
	Categories     []string     `yaml:"categories,omitempty" json:"categories,omitempty"`
	Multiplier     float64      `yaml:"multiplier,omitempty" json:"multiplier,omitempty"`
	DependsOn      string       `yaml:"dependsOn,omitempty" json:"dependsOn,omitempty"`
	DependsOnValue string       `yaml:"dependsOnValue,omitempty" json:"dependsOnValue,omitempty"`
	Notes          string       `yaml:"notes,omitempty" json:"notes,omitempty"`
	Intervention   string       `yaml:"intervention,omitempty" json:"intervention,omitempty"`
	Required       bool         `yaml:"required,omitempty" json:"required,omitempty"`
	Unit           string       `yaml:"unit,omitempty" json:"unit,omitempty"`
	Multiline      bool         `yaml:"multiline,omitempty" json:"multiline,omitempty"`
	HasFollowUp    bool         `yaml:"hasFollowUp,omitempty" json:"hasFollowUp,omitempty"`

	// DemographicMultiplier documents how a demographic answer weights other
	// categories. The adjuster does not read it.
	DemographicMultiplier *MultiplierRule `yaml:"demographicMultiplier,omitempty" json:"demographicMultiplier,omitempty"`
}

// Scored reports whether the question feeds the risk scorer.
func (q Question) Scored() bool {
	return len(q.Scoring) > 0 && len(q.Categories) > 0
}

// EffectiveMultiplier is the configured multiplier, or 1 when unset.
func (q Question) EffectiveMultiplier() float64 {
	if q.Multiplier == 0 {
		return 1
	}
	return q.Multiplier
}

// MaxScoring is the largest scoring entry, or 0 for a question without scoring.
func (q Question) MaxScoring() float64 {
	if len(q.Scoring) == 0 {
		return 0
	}
	highest := q.Scoring[0]
	for _, s := range q.Scoring[1:] {
		if s > highest {
			highest = s
		}
	}
	return highest
}

// OptionIndex returns the position of answer in Options, or -1.
func (q Question) OptionIndex(answer string) int {
	for i, opt := range q.Options {
		if opt == answer {
			return i
		}
	}
	return -1
}

// MultiplierRule is descriptive metadata carried by demographic questions.
type MultiplierRule struct {
	Range     []float64 `yaml:"range,omitempty" json:"range,omitempty"`
	Value     float64   `yaml:"value,omitempty" json:"value,omitempty"`
	Condition string    `yaml:"condition,omitempty" json:"condition,omitempty"`
	Note      string    `yaml:"note,omitempty" json:"note,omitempty"`
}

// CategoryInfo is display metadata for a risk category.
type CategoryInfo struct {
	Name        string `yaml:"name" json:"name"`
	Color       string `yaml:"color" json:"color"`
	Description string `yaml:"description" json:"description"`
}

// QuestionsDocument is the decoded questions file.
type QuestionsDocument struct {
	Sections   []Section      `yaml:"sections"`
	Categories []CategoryInfo `yaml:"categories"`
}

// SurveyConfig is the decoded survey configuration file.
type SurveyConfig struct {
	DefaultOrder         []string                       `yaml:"defaultOrder" json:"defaultOrder"`
	ConditionalRules     ConditionalRules               `yaml:"conditionalRules" json:"conditionalRules"`
	SourceConfigurations map[string]SourceConfiguration `yaml:"sourceConfigurations" json:"sourceConfigurations"`
}

// Clone returns a deep copy.
func (c SurveyConfig) Clone() SurveyConfig {
	out := SurveyConfig{
		DefaultOrder: cloneStrings(c.DefaultOrder),
	}
	if c.ConditionalRules.SkipRules != nil {
		out.ConditionalRules.SkipRules = make([]SkipRule, len(c.ConditionalRules.SkipRules))
		for i, rule := range c.ConditionalRules.SkipRules {
			out.ConditionalRules.SkipRules[i] = SkipRule{Condition: rule.Condition, SkipSections: cloneStrings(rule.SkipSections)}
		}
	}
	if c.ConditionalRules.ShowRules != nil {
		out.ConditionalRules.ShowRules = make([]ShowRule, len(c.ConditionalRules.ShowRules))
		for i, rule := range c.ConditionalRules.ShowRules {
			out.ConditionalRules.ShowRules[i] = ShowRule{Condition: rule.Condition, ShowQuestions: cloneStrings(rule.ShowQuestions)}
		}
	}
	if c.SourceConfigurations != nil {
		out.SourceConfigurations = make(map[string]SourceConfiguration, len(c.SourceConfigurations))
		for name, src := range c.SourceConfigurations {
			out.SourceConfigurations[name] = SourceConfiguration{
				Order:        SectionOrder{Ref: src.Order.Ref, Sections: cloneStrings(src.Order.Sections)},
				SkipSections: cloneStrings(src.SkipSections),
			}
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// ConditionalRules are kept as literal condition strings.
type ConditionalRules struct {
	SkipRules []SkipRule `yaml:"skipRules,omitempty" json:"skipRules,omitempty"`
	ShowRules []ShowRule `yaml:"showRules,omitempty" json:"showRules,omitempty"`
}

type SkipRule struct {
	Condition    string   `yaml:"condition" json:"condition"`
	SkipSections []string `yaml:"skipSections" json:"skipSections"`
}

type ShowRule struct {
	Condition     string   `yaml:"condition" json:"condition"`
	ShowQuestions []string `yaml:"showQuestions" json:"showQuestions"`
}

// SourceConfiguration controls section order and suppression for one source.
type SourceConfiguration struct {
	Order        SectionOrder `yaml:"order" json:"order"`
	SkipSections []string     `yaml:"skipSections" json:"skipSections"`
}

// SectionOrder is either an explicit list of section ids or a reference to
// the catalog's default order.
type SectionOrder struct {
	Ref      string
	Sections []string
}

// UnmarshalYAML accepts a scalar reference or a sequence of section ids.
func (o *SectionOrder) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		o.Ref = node.Value
		o.Sections = nil
		return nil
	case yaml.SequenceNode:
		var sections []string
		if err := node.Decode(&sections); err != nil {
			return err
		}
		o.Ref = ""
		o.Sections = sections
		return nil
	default:
		return fmt.Errorf("line %d: order must be a string or a list of section ids", node.Line)
	}
}

// MarshalYAML writes the reference back as a scalar.
func (o SectionOrder) MarshalYAML() (interface{}, error) {
	if o.Ref != "" {
		return o.Ref, nil
	}
	return o.Sections, nil
}

// IsRef reports whether the order points at the default order.
func (o SectionOrder) IsRef() bool {
	return o.Ref != ""
}

// MarshalJSON mirrors MarshalYAML.
func (o SectionOrder) MarshalJSON() ([]byte, error) {
	if o.Ref != "" {
		return json.Marshal(o.Ref)
	}
	if o.Sections == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(o.Sections)
}
