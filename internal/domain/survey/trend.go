package survey

import "fmt"

// Trend directions over a trailing window of survey scores.
const (
	TrendImproving        = "IMPROVING"
	TrendStable           = "STABLE"
	TrendWorsening        = "WORSENING"
	TrendInsufficientData = "INSUFFICIENT_DATA"
)

// trendThresholds are the minimum absolute score shifts considered a real
// change. Kept at the legacy values (4.0 CAT points, 1.0 mMRC grade) for
// compatibility with prior reports.
var trendThresholds = map[Type]float64{
	TypeCAT:  4.0,
	TypeMMRC: 1.0,
}

// minTrendPoints is the smallest history that supports a half-vs-half split.
const minTrendPoints = 4

// AnalyzeTrend compares the first-half average of a chronologically ordered
// score history against the second-half average. Higher scores are worse for
// both instruments, so a positive shift beyond the threshold is WORSENING.
func AnalyzeTrend(surveyType Type, scores []int) (string, error) {
	threshold, ok := trendThresholds[surveyType]
	if !ok {
		return "", fmt.Errorf("unknown survey type: %s", surveyType)
	}

	if len(scores) < minTrendPoints {
		return TrendInsufficientData, nil
	}

	mid := len(scores) / 2
	delta := mean(scores[mid:]) - mean(scores[:mid])

	switch {
	case delta >= threshold:
		return TrendWorsening, nil
	case delta <= -threshold:
		return TrendImproving, nil
	default:
		return TrendStable, nil
	}
}

func mean(scores []int) float64 {
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return float64(sum) / float64(len(scores))
}
