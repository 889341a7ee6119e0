package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/moodlens/backend/internal/models"
)

const (
	// DefaultCorrelationMinSample is the minimum days a factor group needs
	// before it is scored at all; smaller groups are pure noise.
	DefaultCorrelationMinSample = 3

	// DefaultCorrelationMinStrength is the minimum effect size a group
	// must reach to surface as a correlation insight.
	DefaultCorrelationMinStrength = 0.3
)

// factorGroup accumulates the day averages of days sharing one factor value.
type factorGroup struct {
	category models.FactorCategory
	value    string
	title    string
	phrase   string
	ratings  []float64
}

// AnalyzeCorrelations partitions the days covered by contextRecords into
// groups per factor value and scores each group's mean mood against the
// overall mean. strength is an effect size: the absolute deviation of the
// group mean from the overall mean in overall standard deviations, clipped
// to [0,1]. No significance testing is implied.
//
// moodByDate maps YYYY-MM-DD to that day's average mood; days absent from
// the map have no mood data and do not participate. Groups smaller than
// minSample or weaker than minStrength are skipped silently.
func AnalyzeCorrelations(contextRecords []models.ContextRecord, moodByDate map[string]float64, minSample int, minStrength float64) []models.CorrelationInsight {
	mean, stdDev, n := overallMoodSpread(moodByDate)
	if n == 0 || stdDev == 0 {
		return []models.CorrelationInsight{}
	}

	groups := collectFactorGroups(contextRecords, moodByDate)

	insights := make([]models.CorrelationInsight, 0, len(groups))
	for _, g := range groups {
		if len(g.ratings) < minSample {
			continue
		}

		var sum float64
		for _, r := range g.ratings {
			sum += r
		}
		groupMean := sum / float64(len(g.ratings))

		strength := math.Abs(groupMean-mean) / stdDev
		if strength > 1 {
			strength = 1
		}
		if strength < minStrength {
			continue
		}

		insights = append(insights, models.CorrelationInsight{
			Title:       g.title,
			Description: describeCorrelation(g.phrase, groupMean, mean),
			Category:    g.category,
			FactorValue: g.value,
			Strength:    strength,
			SampleSize:  len(g.ratings),
			GroupMean:   groupMean,
			OverallMean: mean,
		})
	}

	// Strongest first; among equals the better-sampled group ranks higher
	sort.Slice(insights, func(i, j int) bool {
		if insights[i].Strength != insights[j].Strength {
			return insights[i].Strength > insights[j].Strength
		}
		if insights[i].SampleSize != insights[j].SampleSize {
			return insights[i].SampleSize > insights[j].SampleSize
		}
		if insights[i].Category != insights[j].Category {
			return insights[i].Category < insights[j].Category
		}
		return insights[i].FactorValue < insights[j].FactorValue
	})

	return insights
}

// overallMoodSpread computes the mean and population standard deviation of
// the day averages.
func overallMoodSpread(moodByDate map[string]float64) (mean, stdDev float64, n int) {
	n = len(moodByDate)
	if n == 0 {
		return 0, 0, 0
	}

	var sum float64
	for _, v := range moodByDate {
		sum += v
	}
	mean = sum / float64(n)

	var sq float64
	for _, v := range moodByDate {
		d := v - mean
		sq += d * d
	}
	stdDev = math.Sqrt(sq / float64(n))

	return mean, stdDev, n
}

// collectFactorGroups walks the context records and buckets each day's
// average mood under every factor value present that day. Values outside
// their closed enums are treated as absent.
func collectFactorGroups(contextRecords []models.ContextRecord, moodByDate map[string]float64) map[string]*factorGroup {
	groups := make(map[string]*factorGroup)

	add := func(category models.FactorCategory, value, title, phrase string, rating float64) {
		key := string(category) + "|" + value
		g, ok := groups[key]
		if !ok {
			g = &factorGroup{category: category, value: value, title: title, phrase: phrase}
			groups[key] = g
		}
		g.ratings = append(g.ratings, rating)
	}

	for _, record := range contextRecords {
		rating, ok := moodByDate[models.FormatDate(record.Date)]
		if !ok {
			continue
		}

		if record.WeatherCondition != nil && record.WeatherCondition.Valid() {
			value := string(*record.WeatherCondition)
			add(models.FactorWeather, value,
				capitalize(value)+" days",
				value+" days", rating)
		}
		if record.SleepQuality != nil && *record.SleepQuality >= 1 && *record.SleepQuality <= 10 {
			value, phrase := sleepBucket(*record.SleepQuality)
			add(models.FactorSleep, value, capitalize(value)+" sleep", phrase, rating)
		}
		if record.ExerciseLevel != nil && record.ExerciseLevel.Valid() {
			value := string(*record.ExerciseLevel)
			title, phrase := exerciseLabel(*record.ExerciseLevel)
			add(models.FactorExercise, value, title, phrase, rating)
		}
		if record.WorkStress != nil && *record.WorkStress >= 1 && *record.WorkStress <= 10 {
			value, phrase := stressBucket(*record.WorkStress)
			add(models.FactorStress, value, capitalize(value)+" stress", phrase, rating)
		}
		for _, tag := range record.SocialActivities {
			add(models.FactorSocial, tag, "Days with "+tag, "days with "+tag, rating)
		}
		for _, tag := range record.Hobbies {
			add(models.FactorHobby, tag, "Days with "+tag, "days with "+tag, rating)
		}
		for _, tag := range record.CustomTags {
			add(models.FactorCustom, tag, "Days tagged "+tag, "days tagged "+tag, rating)
		}
	}

	return groups
}

// sleepBucket folds a 1-10 sleep quality into three coarse groups.
func sleepBucket(quality int) (value, phrase string) {
	switch {
	case quality <= 4:
		return "poor", "days with poor sleep (1-4)"
	case quality <= 7:
		return "fair", "days with fair sleep (5-7)"
	default:
		return "good", "days with good sleep (8-10)"
	}
}

// stressBucket folds a 1-10 work stress score into three coarse groups.
func stressBucket(stress int) (value, phrase string) {
	switch {
	case stress <= 3:
		return "low", "days with low stress (1-3)"
	case stress <= 6:
		return "moderate", "days with moderate stress (4-6)"
	default:
		return "high", "days with high stress (7-10)"
	}
}

func exerciseLabel(level models.ExerciseLevel) (title, phrase string) {
	if level == models.ExerciseNone {
		return "No exercise", "days without exercise"
	}
	return capitalize(string(level)) + " exercise", "days with " + string(level) + " exercise"
}

// describeCorrelation creates a human-readable description of the effect
func describeCorrelation(phrase string, groupMean, overallMean float64) string {
	direction := "above"
	if groupMean < overallMean {
		direction = "below"
	}
	return fmt.Sprintf("Your mood averaged %.1f on %s, %.1f %s your overall average of %.1f",
		groupMean, phrase, math.Abs(groupMean-overallMean), direction, overallMean)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
