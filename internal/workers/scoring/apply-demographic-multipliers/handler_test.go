// internal/workers/scoring/apply-demographic-multipliers/handler_test.go
package applydemographicmultipliers

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"envhealth-risk/internal/common/logger"
	"envhealth-risk/internal/common/metrics"
	"envhealth-risk/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

const (
	airQuality = "Air Quality (indoor/outdoor, VOCs)"
	mold       = "Mold & Moisture"
	chemicals  = "Chemical Exposures (cleaners, etc.)"
	water      = "Water Quality & Use"
)

// createBaseScores gives every category a score of base and a max of 20.
func createBaseScores(base float64) *models.CategoryScores {
	scores := models.NewCategoryScores([]string{airQuality, water, mold, chemicals})
	scores.Each(func(_ string, score *models.CategoryScore) {
		score.Score = base
		score.MaxScore = 20
	})
	return scores
}

func demographic(answers map[string]interface{}) models.Responses {
	return models.Responses{models.DemographicSection: answers}
}

func scoreOf(t *testing.T, scores *models.CategoryScores, name string) *models.CategoryScore {
	t.Helper()
	score, ok := scores.Get(name)
	require.True(t, ok)
	return score
}

// ==========================
// Multiplier Formula Tests
// ==========================

func TestHoursMultiplier(t *testing.T) {
	tests := []struct {
		hours float64
		want  float64
	}{
		{8, 1},
		{16, 1.5},
		{24, 2},
		{40, 2},
		{4, 0.75},
		{1, 0.5625},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, HoursMultiplier(tt.hours), 1e-9, "hours=%v", tt.hours)
	}
}

func TestChildrenMultiplier(t *testing.T) {
	assert.Equal(t, 1.5, ChildrenMultiplier(1))
	assert.Equal(t, 2.0, ChildrenMultiplier(2))
	assert.Equal(t, 3.0, ChildrenMultiplier(4))
}

// ==========================
// Adjust Tests
// ==========================

func TestAdjust_HoursOnlyTouchesIndoorCategories(t *testing.T) {
	scores := Adjust(createBaseScores(10), demographic(map[string]interface{}{"hours_at_home": 16}))

	for _, name := range []string{airQuality, mold, chemicals} {
		score := scoreOf(t, scores, name)
		assert.InDelta(t, 15, score.Score, 1e-9, name)
		assert.Equal(t, 20.0, score.MaxScore, name)
		require.Len(t, score.Multipliers, 1)
		assert.Equal(t, models.MultiplierEvent{Type: TypeHoursAtHome, Value: 1.5, Reason: "16 hours per day at home"}, score.Multipliers[0])
	}

	untouched := scoreOf(t, scores, water)
	assert.Equal(t, 10.0, untouched.Score)
	assert.Empty(t, untouched.Multipliers)
}

func TestAdjust_FewHoursDiscounts(t *testing.T) {
	scores := Adjust(createBaseScores(10), demographic(map[string]interface{}{"hours_at_home": 4}))
	assert.InDelta(t, 7.5, scoreOf(t, scores, mold).Score, 1e-9)
}

func TestAdjust_MultipliersCompound(t *testing.T) {
	scores := Adjust(createBaseScores(10), demographic(map[string]interface{}{
		"hours_at_home":  24,
		"children_count": 2,
	}))

	airScore := scoreOf(t, scores, airQuality)
	assert.InDelta(t, 40, airScore.Score, 1e-9)
	require.Len(t, airScore.Multipliers, 2)
	assert.Equal(t, TypeHoursAtHome, airScore.Multipliers[0].Type)
	assert.Equal(t, TypeChildren, airScore.Multipliers[1].Type)
	assert.Equal(t, "2 children under 18 in home", airScore.Multipliers[1].Reason)

	assert.InDelta(t, 20, scoreOf(t, scores, water).Score, 1e-9)
}

func TestAdjust_PregnancyDoublesAdjustedScore(t *testing.T) {
	tests := []struct {
		name       string
		answers    map[string]interface{}
		wantReason string
		wantMold   float64
		wantWater  float64
	}{
		{
			name:       "pregnant",
			answers:    map[string]interface{}{"pregnancy_status": "Yes"},
			wantReason: "Currently pregnant",
			wantMold:   20,
			wantWater:  20,
		},
		{
			name:       "trying to conceive",
			answers:    map[string]interface{}{"pregnancy_status": "No", "trying_to_conceive": "Yes"},
			wantReason: "Trying to conceive",
			wantMold:   20,
			wantWater:  20,
		},
		{
			name:       "pregnancy takes priority in the reason",
			answers:    map[string]interface{}{"pregnancy_status": "Yes", "trying_to_conceive": "Yes"},
			wantReason: "Currently pregnant",
			wantMold:   20,
			wantWater:  20,
		},
		{
			name: "stacks on hours and children",
			answers: map[string]interface{}{
				"hours_at_home":    16,
				"children_count":   1,
				"pregnancy_status": "Yes",
			},
			wantReason: "Currently pregnant",
			wantMold:   45,
			wantWater:  30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := Adjust(createBaseScores(10), demographic(tt.answers))

			moldScore := scoreOf(t, scores, mold)
			assert.InDelta(t, tt.wantMold, moldScore.Score, 1e-9)
			assert.InDelta(t, tt.wantWater, scoreOf(t, scores, water).Score, 1e-9)

			last := moldScore.Multipliers[len(moldScore.Multipliers)-1]
			assert.Equal(t, TypePregnancy, last.Type)
			assert.Equal(t, 2.0, last.Value)
			assert.Equal(t, tt.wantReason, last.Reason)
		})
	}
}

func TestAdjust_NoOpAnswers(t *testing.T) {
	tests := []struct {
		name      string
		responses models.Responses
	}{
		{"no demographic section", models.Responses{"mold": {"visible_mold": "Yes"}}},
		{"zero hours and children", demographic(map[string]interface{}{"hours_at_home": 0, "children_count": 0})},
		{"negative hours", demographic(map[string]interface{}{"hours_at_home": -3})},
		{"unparseable numbers", demographic(map[string]interface{}{"hours_at_home": "most", "children_count": "two"})},
		{"decimal comma hours", demographic(map[string]interface{}{"hours_at_home": "1,5"})},
		{"nil answers", demographic(map[string]interface{}{"hours_at_home": nil, "pregnancy_status": nil})},
		{"not pregnant", demographic(map[string]interface{}{"pregnancy_status": "No", "trying_to_conceive": "N/A"})},
		{"lowercase yes", demographic(map[string]interface{}{"pregnancy_status": "yes"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := Adjust(createBaseScores(10), tt.responses)
			scores.Each(func(name string, score *models.CategoryScore) {
				assert.Equal(t, 10.0, score.Score, name)
				assert.Empty(t, score.Multipliers, name)
			})
		})
	}
}

func TestAdjust_NumericStrings(t *testing.T) {
	scores := Adjust(createBaseScores(10), demographic(map[string]interface{}{"children_count": "3"}))
	assert.InDelta(t, 25, scoreOf(t, scores, water).Score, 1e-9)
}

func TestAdjust_NilScores(t *testing.T) {
	assert.Nil(t, Adjust(nil, demographic(map[string]interface{}{"children_count": 2})))
}

// ==========================
// Handler Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	handler := NewHandler(LoadConfig(), logger.NewTestLogger(t))
	before := testutil.ToFloat64(metrics.MultiplierEvents.WithLabelValues(TypeChildren))

	scores := createBaseScores(4)
	out, err := handler.Execute(context.Background(), &Input{
		Scores:    scores,
		Responses: demographic(map[string]interface{}{"children_count": 1, "trying_to_conceive": "Yes"}),
	})

	require.NoError(t, err)
	assert.Same(t, scores, out.Scores)
	require.Len(t, out.Applied, 2)
	assert.Equal(t, TypeChildren, out.Applied[0].Type)
	assert.Equal(t, TypePregnancy, out.Applied[1].Type)
	assert.InDelta(t, 12, scoreOf(t, out.Scores, water).Score, 1e-9)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.MultiplierEvents.WithLabelValues(TypeChildren)))
}

func TestHandler_Execute_NothingApplied(t *testing.T) {
	handler := NewHandler(LoadConfig(), logger.NewNoOpLogger())

	out, err := handler.Execute(context.Background(), &Input{Scores: createBaseScores(1)})
	require.NoError(t, err)
	assert.NotNil(t, out.Applied)
	assert.Empty(t, out.Applied)
}
