// internal/models/responses.go
package models

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DemographicSection is the section the demographic adjuster reads.
const DemographicSection = "demographic"

// Responses maps section id to question id to the submitted answer. An
// answer is a string (choice or free text), a number, or nil.
type Responses map[string]map[string]interface{}

// Lookup returns the answer for section.question. Absent and nil answers
// both report false; no default is ever substituted.
func (r Responses) Lookup(sectionID, questionID string) (interface{}, bool) {
	section, ok := r[sectionID]
	if !ok || section == nil {
		return nil, false
	}
	value, ok := section[questionID]
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// String returns the answer when it is a string.
func (r Responses) String(sectionID, questionID string) (string, bool) {
	value, ok := r.Lookup(sectionID, questionID)
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// Number returns the answer read as a number. Go numeric kinds,
// json.Number and numeric strings are accepted.
func (r Responses) Number(sectionID, questionID string) (float64, bool) {
	value, ok := r.Lookup(sectionID, questionID)
	if !ok {
		return 0, false
	}
	n, err := ParseNumber(value)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Section returns the answers for one section.
func (r Responses) Section(sectionID string) (map[string]interface{}, bool) {
	section, ok := r[sectionID]
	return section, ok && section != nil
}

// thousandsPattern matches numbers whose commas group digits by three.
var thousandsPattern = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)

// ParseNumber coerces a loosely typed answer into a float64. Commas are
// accepted only as thousands separators.
func ParseNumber(raw interface{}) (float64, error) {
	var n float64
	switch v := raw.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int8:
		n = float64(v)
	case int16:
		n = float64(v)
	case int32:
		n = float64(v)
	case int64:
		n = float64(v)
	case uint:
		n = float64(v)
	case uint8:
		n = float64(v)
	case uint16:
		n = float64(v)
	case uint32:
		n = float64(v)
	case uint64:
		n = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, err
		}
		n = f
	case string:
		cleaned := strings.TrimSpace(v)
		if strings.Contains(cleaned, ",") {
			if !thousandsPattern.MatchString(cleaned) {
				return 0, fmt.Errorf("not a number: %q", v)
			}
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, err
		}
		n = f
	default:
		return 0, fmt.Errorf("not a number: %T", raw)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("not a finite number: %v", n)
	}
	return n, nil
}
