package models

import "time"

// InsightType classifies what a generated insight is saying.
type InsightType string

const (
	InsightTypePattern     InsightType = "pattern"
	InsightTypePrediction  InsightType = "prediction"
	InsightTypeAchievement InsightType = "achievement"
	InsightTypeCelebration InsightType = "celebration"
	InsightTypeConcern     InsightType = "concern"
	InsightTypeSuggestion  InsightType = "suggestion"
	InsightTypeActionable  InsightType = "actionable"
)

// InsightPriority orders insights for display.
type InsightPriority string

const (
	PriorityLow      InsightPriority = "low"
	PriorityMedium   InsightPriority = "medium"
	PriorityHigh     InsightPriority = "high"
	PriorityCritical InsightPriority = "critical"
)

// Rank maps a priority onto an ordinal for sorting (critical highest).
func (p InsightPriority) Rank() int {
	switch p {
	case PriorityCritical:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// FactorCategory names the contextual-factor dimension a correlation
// belongs to.
type FactorCategory string

const (
	FactorWeather  FactorCategory = "weather"
	FactorSleep    FactorCategory = "sleep"
	FactorExercise FactorCategory = "exercise"
	FactorSocial   FactorCategory = "social"
	FactorHobby    FactorCategory = "hobby"
	FactorStress   FactorCategory = "stress"
	FactorCustom   FactorCategory = "custom"
)

// CorrelationInsight scores how strongly one factor value shifts average
// mood. Strength is a normalized effect size in [0,1], not a p-value; no
// statistical significance is implied.
type CorrelationInsight struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    FactorCategory `json:"category"`
	FactorValue string         `json:"factor_value"`
	Strength    float64        `json:"strength"`
	SampleSize  int            `json:"sample_size"`
	// GroupMean and OverallMean expose the underlying means so callers
	// can tell the direction of the effect.
	GroupMean   float64 `json:"group_mean"`
	OverallMean float64 `json:"overall_mean"`
}

// Positive reports whether the factor group sits above the overall mean.
func (c CorrelationInsight) Positive() bool {
	return c.GroupMean > c.OverallMean
}

// SmartInsight is one generated, typed, prioritized statement about the
// user's data. Subject is the de-duplication key partner of Type: two
// candidates sharing (Type, Subject) collapse to the higher-priority one.
type SmartInsight struct {
	ID          string          `json:"id"`
	Type        InsightType     `json:"type"`
	Priority    InsightPriority `json:"priority"`
	Subject     string          `json:"subject"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Confidence  *float64        `json:"confidence,omitempty"`
	ActionSteps []string        `json:"action_steps,omitempty"`
	ActionRoute string          `json:"action_route,omitempty"`
	ActionText  string          `json:"action_text,omitempty"`
	Data        map[string]any  `json:"data,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// InsightsResponse is the API payload for generated insights.
type InsightsResponse struct {
	Insights   []SmartInsight `json:"insights"`
	ComputedAt time.Time      `json:"computed_at"`
	FromCache  bool           `json:"from_cache"`
}

// WeeklySummary is the 7-day roll-up: the week's statistics plus the
// week's insights classified into highlight / concern / recommendation
// text lists.
type WeeklySummary struct {
	WeekStart time.Time `json:"week_start"`
	WeekEnd   time.Time `json:"week_end"`
	Statistics
	Highlights      []string `json:"highlights"`
	Concerns        []string `json:"concerns"`
	Recommendations []string `json:"recommendations"`
}
