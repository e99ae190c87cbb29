package survey

import (
	"fmt"
	"sort"
	"strings"

	apperrors "envhealth-risk/internal/common/errors"
)

// Catalog is the loaded, validated question schema plus survey
// configuration. It is immutable after construction and safe to share.
type Catalog struct {
	sections     []Section
	sectionIndex map[string]int
	categories   []string
	categoryInfo map[string]CategoryInfo
	config       SurveyConfig
	warnings     []string
}

// ResolvedSource is a source configuration with its order reference expanded.
type ResolvedSource struct {
	Requested    string   `json:"requested"`
	Name         string   `json:"name"`
	FellBack     bool     `json:"fellBack"`
	Order        []string `json:"order"`
	SkipSections []string `json:"skipSections"`
}

// NewCatalog checks the structural invariants of the two documents and
// indexes them. Problems the engine tolerates at run time (scoring length
// mismatches, unreachable show rules) are kept as warnings.
func NewCatalog(doc QuestionsDocument, cfg SurveyConfig) (*Catalog, error) {
	c := &Catalog{
		sections:     doc.Sections,
		sectionIndex: make(map[string]int, len(doc.Sections)),
		categoryInfo: make(map[string]CategoryInfo, len(doc.Categories)),
		config:       cfg,
	}

	var problems []string
	seenCategory := make(map[string]bool)

	for i, section := range doc.Sections {
		if section.ID == "" {
			problems = append(problems, fmt.Sprintf("sections[%d]: missing id", i))
			continue
		}
		if _, dup := c.sectionIndex[section.ID]; dup {
			problems = append(problems, fmt.Sprintf("section %q: duplicate id", section.ID))
			continue
		}
		c.sectionIndex[section.ID] = i

		questionIDs := make(map[string]bool, len(section.Questions))
		for _, q := range section.Questions {
			questionIDs[q.ID] = true
		}

		seenQuestion := make(map[string]bool, len(section.Questions))
		for j, q := range section.Questions {
			where := fmt.Sprintf("%s.%s", section.ID, q.ID)
			if q.ID == "" {
				problems = append(problems, fmt.Sprintf("%s.questions[%d]: missing id", section.ID, j))
				continue
			}
			if seenQuestion[q.ID] {
				problems = append(problems, fmt.Sprintf("%s: duplicate question id", where))
			}
			seenQuestion[q.ID] = true

			if !q.Type.Valid() {
				problems = append(problems, fmt.Sprintf("%s: unknown type %q", where, q.Type))
			}
			if q.Type == QuestionTypeSingleChoice && len(q.Options) == 0 {
				problems = append(problems, fmt.Sprintf("%s: single_choice without options", where))
			}
			if q.Type == QuestionTypeSingleChoice && len(q.Scoring) > 0 && len(q.Options) > 0 && len(q.Scoring) != len(q.Options) {
				c.warnings = append(c.warnings, fmt.Sprintf("%s: %d scoring entries for %d options", where, len(q.Scoring), len(q.Options)))
			}
			if q.Type == QuestionTypeFreeText && len(q.Scoring) > 0 {
				c.warnings = append(c.warnings, fmt.Sprintf("%s: free_text scoring is never used", where))
			}
			if q.Multiplier < 0 {
				problems = append(problems, fmt.Sprintf("%s: negative multiplier %v", where, q.Multiplier))
			}
			if q.DependsOn != "" && !questionIDs[q.DependsOn] {
				problems = append(problems, fmt.Sprintf("%s: dependsOn %q is not a question in section %q", where, q.DependsOn, section.ID))
			}

			for _, category := range q.Categories {
				if category == "" {
					problems = append(problems, fmt.Sprintf("%s: empty category name", where))
					continue
				}
				if !seenCategory[category] {
					seenCategory[category] = true
					c.categories = append(c.categories, category)
				}
			}
		}
	}

	for _, info := range doc.Categories {
		if !seenCategory[info.Name] {
			c.warnings = append(c.warnings, fmt.Sprintf("category info %q matches no question", info.Name))
		}
		c.categoryInfo[info.Name] = info
	}

	problems = append(problems, c.checkConfig()...)

	if len(problems) > 0 {
		return nil, apperrors.NewCatalogInvalidError(strings.Join(problems, "; ")).
			WithMetadata("problems", problems)
	}
	return c, nil
}

func (c *Catalog) checkConfig() []string {
	var problems []string

	for _, id := range c.config.DefaultOrder {
		if _, ok := c.sectionIndex[id]; !ok {
			problems = append(problems, fmt.Sprintf("defaultOrder: unknown section %q", id))
		}
	}

	if _, ok := c.config.SourceConfigurations[DefaultSource]; !ok {
		problems = append(problems, fmt.Sprintf("sourceConfigurations: %q is required", DefaultSource))
	}

	for _, name := range c.SourceNames() {
		src := c.config.SourceConfigurations[name]
		if src.Order.IsRef() && src.Order.Ref != DefaultOrderRef {
			problems = append(problems, fmt.Sprintf("source %q: unknown order reference %q", name, src.Order.Ref))
		}
		for _, id := range src.Order.Sections {
			if _, ok := c.sectionIndex[id]; !ok {
				problems = append(problems, fmt.Sprintf("source %q: order names unknown section %q", name, id))
			}
		}
		for _, id := range src.SkipSections {
			if _, ok := c.sectionIndex[id]; !ok {
				problems = append(problems, fmt.Sprintf("source %q: skipSections names unknown section %q", name, id))
			}
		}
	}

	for i, rule := range c.config.ConditionalRules.SkipRules {
		for _, id := range rule.SkipSections {
			if _, ok := c.sectionIndex[id]; !ok {
				problems = append(problems, fmt.Sprintf("skipRules[%d]: unknown section %q", i, id))
			}
		}
	}

	for i, rule := range c.config.ConditionalRules.ShowRules {
		for _, ref := range rule.ShowQuestions {
			sectionID, questionID, ok := strings.Cut(ref, ".")
			if !ok {
				c.warnings = append(c.warnings, fmt.Sprintf("showRules[%d]: %q is not section.question", i, ref))
				continue
			}
			section, found := c.Section(sectionID)
			if !found {
				c.warnings = append(c.warnings, fmt.Sprintf("showRules[%d]: unknown section %q", i, sectionID))
				continue
			}
			if _, found := section.Question(questionID); !found {
				c.warnings = append(c.warnings, fmt.Sprintf("showRules[%d]: unknown question %q", i, ref))
			}
		}
	}

	return problems
}

// Sections returns the sections in catalog order.
func (c *Catalog) Sections() []Section {
	out := make([]Section, len(c.sections))
	copy(out, c.sections)
	return out
}

// Section returns the section with the given id.
func (c *Catalog) Section(id string) (Section, bool) {
	i, ok := c.sectionIndex[id]
	if !ok {
		return Section{}, false
	}
	return c.sections[i], true
}

// CategoryNames lists every category in the order it is first tagged.
func (c *Catalog) CategoryNames() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// CategoryInfo returns display metadata for a category.
func (c *Catalog) CategoryInfo(name string) (CategoryInfo, bool) {
	info, ok := c.categoryInfo[name]
	return info, ok
}

// Config returns a copy of the survey configuration. Changes to the copy
// do not reach the catalog.
func (c *Catalog) Config() SurveyConfig {
	return c.config.Clone()
}

// DefaultOrder returns the default section order.
func (c *Catalog) DefaultOrder() []string {
	out := make([]string, len(c.config.DefaultOrder))
	copy(out, c.config.DefaultOrder)
	return out
}

// Warnings lists tolerated authoring problems found at load.
func (c *Catalog) Warnings() []string {
	out := make([]string, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// SourceNames lists the configured sources, sorted.
func (c *Catalog) SourceNames() []string {
	names := make([]string, 0, len(c.config.SourceConfigurations))
	for name := range c.config.SourceConfigurations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupSource returns the named source configuration or SOURCE_NOT_FOUND.
func (c *Catalog) LookupSource(name string) (ResolvedSource, error) {
	src, ok := c.config.SourceConfigurations[name]
	if !ok {
		return ResolvedSource{}, apperrors.NewSourceNotFoundError(name)
	}
	return c.resolve(name, name, src), nil
}

// ResolveSource returns the named source configuration, falling back to
// the general profile with FellBack set when the name is unknown.
func (c *Catalog) ResolveSource(name string) ResolvedSource {
	if src, ok := c.config.SourceConfigurations[name]; ok {
		return c.resolve(name, name, src)
	}
	resolved := c.resolve(name, DefaultSource, c.config.SourceConfigurations[DefaultSource])
	resolved.FellBack = true
	return resolved
}

func (c *Catalog) resolve(requested, name string, src SourceConfiguration) ResolvedSource {
	order := src.Order.Sections
	if src.Order.IsRef() {
		order = c.config.DefaultOrder
	}
	return ResolvedSource{
		Requested:    requested,
		Name:         name,
		Order:        append([]string{}, order...),
		SkipSections: append([]string{}, src.SkipSections...),
	}
}
