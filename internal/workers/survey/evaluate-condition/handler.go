// internal/workers/survey/evaluate-condition/handler.go
package evaluatecondition

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"envhealth-risk/internal/common/logger"
	"envhealth-risk/internal/common/metrics"
	"envhealth-risk/internal/models"
)

const (
	TaskType = "evaluate-condition"
)

// Condition is a parsed "section.question" existence check.
type Condition struct {
	SectionID  string
	QuestionID string
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ParseCondition accepts exactly two dot-separated identifiers of letters,
// digits and underscores. Comparisons and literals are rejected.
func ParseCondition(expr string) (Condition, error) {
	parts := strings.Split(expr, ".")
	if len(parts) != 2 {
		return Condition{}, fmt.Errorf("condition %q: want section.question, got %d segment(s)", expr, len(parts))
	}
	for _, part := range parts {
		if part == "" {
			return Condition{}, fmt.Errorf("condition %q: empty segment", expr)
		}
		if !identifierPattern.MatchString(part) {
			return Condition{}, fmt.Errorf("condition %q: %q is not an identifier", expr, part)
		}
	}
	return Condition{SectionID: parts[0], QuestionID: parts[1]}, nil
}

// Evaluate is true when the referenced answer exists, is not nil and is
// not the empty string. Zero and other falsy numbers count as answered.
func (c Condition) Evaluate(responses models.Responses) bool {
	value, ok := responses.Lookup(c.SectionID, c.QuestionID)
	if !ok {
		return false
	}
	if s, isString := value.(string); isString && s == "" {
		return false
	}
	return true
}

func (c Condition) String() string {
	return c.SectionID + "." + c.QuestionID
}

var (
	packageLoggerMu sync.RWMutex
	packageLogger   = logger.NewNoOpLogger()
)

// SetLogger replaces the logger used by the package-level Evaluate.
func SetLogger(log logger.Logger) {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	packageLoggerMu.Lock()
	packageLogger = log.WithFields(map[string]interface{}{"taskType": TaskType})
	packageLoggerMu.Unlock()
}

func currentLogger() logger.Logger {
	packageLoggerMu.RLock()
	defer packageLoggerMu.RUnlock()
	return packageLogger
}

// Evaluate parses and evaluates condition. A malformed condition is
// logged at warn through the SetLogger logger and evaluates false.
func Evaluate(condition string, responses models.Responses) bool {
	parsed, err := ParseCondition(condition)
	if err != nil {
		warnMalformed(currentLogger(), condition, err)
		return false
	}
	return parsed.Evaluate(responses)
}

func warnMalformed(log logger.Logger, condition string, err error) {
	log.Warn("malformed condition evaluated as false", map[string]interface{}{
		"condition": condition,
		"error":     err.Error(),
	})
}

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	parsed, err := ParseCondition(input.Condition)
	if err != nil {
		warnMalformed(h.logger, input.Condition, err)
		metrics.ConditionEvaluations.WithLabelValues("malformed").Inc()
		return &Output{Result: false, Malformed: true}, nil
	}

	result := parsed.Evaluate(input.Responses)
	metrics.ConditionEvaluations.WithLabelValues(fmt.Sprintf("%t", result)).Inc()

	h.logger.Debug("condition evaluated", map[string]interface{}{
		"condition": parsed.String(),
		"result":    result,
	})

	return &Output{Result: result}, nil
}

// Evaluate is the logging counterpart of the package-level Evaluate.
func (h *Handler) Evaluate(condition string, responses models.Responses) bool {
	out, _ := h.Execute(context.Background(), &Input{Condition: condition, Responses: responses})
	return out.Result
}
