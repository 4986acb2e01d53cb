package scoring

// Canned remedial advice keyed by metric, one list per direction. Metrics
// without an entry fall back to the generic referral line.
var lowAdvice = map[string][]string{
	"heart_rate": {
		"Do light aerobic exercise such as walking or slow jogging",
		"Get enough rest and sleep",
		"See a doctor if dizziness or fatigue is frequent",
	},
	"blood_pressure": {
		"Slightly increase salt intake",
		"Stay well hydrated",
		"Avoid standing up suddenly or exercising hard",
	},
	"blood_sugar": {
		"Eat regularly and avoid long fasts",
		"Carry a sugary snack in case of a low",
		"Balance meals with enough carbohydrates",
	},
	"sleep_hours": {
		"Keep a regular sleep schedule",
		"Make the bedroom quiet and dark",
		"Avoid screens before going to bed",
	},
	"mood_score": {
		"Try relaxing activities such as yoga or meditation",
		"Spend time with friends and family",
		"Get outdoors and catch some sunlight",
	},
	"weight": {
		"Increase portion sizes moderately",
		"Add quality protein to your diet",
		"Do moderate strength training",
	},
}

var highAdvice = map[string][]string{
	"heart_rate": {
		"Avoid strenuous exercise and strong emotions",
		"Practice relaxation techniques such as deep breathing",
		"Cut back on caffeine",
	},
	"blood_pressure": {
		"Limit salt intake",
		"Exercise regularly",
		"Avoid stress and emotional swings",
	},
	"blood_sugar": {
		"Limit carbohydrate intake",
		"Increase physical activity",
		"Monitor blood sugar regularly",
	},
	"sleep_hours": {
		"Increase daytime activity",
		"Avoid long naps during the day",
		"Keep a regular sleep schedule",
	},
	"weight": {
		"Watch portion sizes",
		"Exercise more often",
		"Choose low-calorie, nutrient-dense food",
	},
}

const genericAdvice = "Consult a medical professional for detailed guidance"

const allNormalAdvice = "All your health metrics are within normal range, keep up the healthy lifestyle!"

// Recommendations turns a per-metric analysis into remedial advice. Every
// metric scored low or high contributes its canned list; when everything is
// normal a single reinforcement line is returned instead of nothing.
func Recommendations(analysis map[string]MetricAnalysis) []string {
	var recommendations []string

	for _, metric := range metricOrder {
		result, ok := analysis[metric]
		if !ok {
			continue
		}
		switch result.Status {
		case StatusLow:
			recommendations = append(recommendations, adviceFor(lowAdvice, metric)...)
		case StatusHigh:
			recommendations = append(recommendations, adviceFor(highAdvice, metric)...)
		}
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, allNormalAdvice)
	}
	return recommendations
}

func adviceFor(table map[string][]string, metric string) []string {
	if advice, ok := table[metric]; ok {
		return advice
	}
	return []string{genericAdvice}
}

// ScoreTrendRecommendations is the second, independent recommendation
// source: thresholds on batch average score and trend. It concatenates with
// the per-metric advice rather than replacing it.
func ScoreTrendRecommendations(averageScore, trend float64) []string {
	var recommendations []string

	if averageScore < 0.6 {
		recommendations = append(recommendations,
			"A comprehensive medical checkup is recommended",
			"Adjust your lifestyle",
		)
	} else if averageScore < 0.8 {
		recommendations = append(recommendations,
			"Keep up your healthy habits",
			"Make sure to rest",
		)
	}

	if trend < -0.1 {
		recommendations = append(recommendations,
			"Your health is trending downward, adjust your routine promptly",
		)
	} else if trend > 0.1 {
		recommendations = append(recommendations,
			"Your health is improving, keep it going",
		)
	}

	return recommendations
}
