// internal/workers/survey/evaluate-condition/handler_test.go
package evaluatecondition

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"envhealth-risk/internal/common/logger"
	"envhealth-risk/internal/common/metrics"
	"envhealth-risk/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestResponses() models.Responses {
	return models.Responses{
		"demographic": {
			"health_conditions": "Yes",
			"occupation":        "",
			"children_count":    0,
			"weight_loss":       nil,
		},
	}
}

func createObservedHandler() (*Handler, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewHandler(LoadConfig(), logger.NewZapAdapter(zap.New(core))), logs
}

// ==========================
// Parser Tests
// ==========================

func TestParseCondition(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		want    Condition
		wantErr bool
	}{
		{"section and question", "demographic.health_conditions", Condition{"demographic", "health_conditions"}, false},
		{"three segments", "bad.condition.string", Condition{}, true},
		{"no dot", "demographic", Condition{}, true},
		{"empty", "", Condition{}, true},
		{"trailing dot", "demographic.", Condition{}, true},
		{"leading dot", ".health_conditions", Condition{}, true},
		{"equality expression", `demographic.pregnancy_status === "No"`, Condition{}, true},
		{"comparison after one dot", `demographic.health_conditions === "Yes"`, Condition{}, true},
		{"whitespace in question", "demographic.health conditions", Condition{}, true},
		{"negation", "!demographic.health_conditions", Condition{}, true},
		{"digits and underscores", "section_2.q_10", Condition{"section_2", "q_10"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCondition(tt.expr)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.expr, got.String())
		})
	}
}

// ==========================
// Evaluation Tests
// ==========================

func TestEvaluate(t *testing.T) {
	responses := createTestResponses()

	tests := []struct {
		name      string
		condition string
		responses models.Responses
		want      bool
	}{
		{"answered", "demographic.health_conditions", responses, true},
		{"empty string", "demographic.occupation", responses, false},
		{"zero counts as answered", "demographic.children_count", responses, true},
		{"nil answer", "demographic.weight_loss", responses, false},
		{"absent question", "demographic.budget", responses, false},
		{"absent section", "mold.visible_mold", responses, false},
		{"malformed", "bad.condition.string", models.Responses{}, false},
		{"comparison is malformed", `demographic.health_conditions === "Yes"`, responses, false},
		{"nil responses", "demographic.health_conditions", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.condition, tt.responses))
		})
	}
}

func TestHandler_Execute_MalformedLogsWarning(t *testing.T) {
	handler, logs := createObservedHandler()
	before := testutil.ToFloat64(metrics.ConditionEvaluations.WithLabelValues("malformed"))

	out, err := handler.Execute(context.Background(), &Input{
		Condition: "bad.condition.string",
		Responses: models.Responses{},
	})

	require.NoError(t, err)
	assert.False(t, out.Result)
	assert.True(t, out.Malformed)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "bad.condition.string", warnings[0].ContextMap()["condition"])
	assert.Equal(t, TaskType, warnings[0].ContextMap()["taskType"])

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ConditionEvaluations.WithLabelValues("malformed")))
}

func TestHandler_Execute_CountsResults(t *testing.T) {
	handler := NewHandler(LoadConfig(), logger.NewTestLogger(t))
	beforeTrue := testutil.ToFloat64(metrics.ConditionEvaluations.WithLabelValues("true"))
	beforeFalse := testutil.ToFloat64(metrics.ConditionEvaluations.WithLabelValues("false"))

	assert.True(t, handler.Evaluate("demographic.health_conditions", createTestResponses()))
	assert.False(t, handler.Evaluate("demographic.occupation", createTestResponses()))

	assert.Equal(t, beforeTrue+1, testutil.ToFloat64(metrics.ConditionEvaluations.WithLabelValues("true")))
	assert.Equal(t, beforeFalse+1, testutil.ToFloat64(metrics.ConditionEvaluations.WithLabelValues("false")))
}

func TestHandler_Execute_ComparisonIsMalformed(t *testing.T) {
	handler, logs := createObservedHandler()

	out, err := handler.Execute(context.Background(), &Input{
		Condition: `demographic.health_conditions === "Yes"`,
		Responses: createTestResponses(),
	})

	require.NoError(t, err)
	assert.False(t, out.Result)
	assert.True(t, out.Malformed)
	assert.Len(t, logs.FilterLevelExact(zapcore.WarnLevel).All(), 1)
}

func TestEvaluate_MalformedLogsWarning(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(logger.NewZapAdapter(zap.New(core)))
	t.Cleanup(func() { SetLogger(nil) })

	assert.False(t, Evaluate("bad.condition.string", createTestResponses()))
	assert.True(t, Evaluate("demographic.health_conditions", createTestResponses()))

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "bad.condition.string", warnings[0].ContextMap()["condition"])
	assert.Equal(t, TaskType, warnings[0].ContextMap()["taskType"])
}
