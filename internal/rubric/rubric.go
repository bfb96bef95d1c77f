// Package rubric implements the observation-form scoring core: rating
// aggregation across the three rubric categories and classification of
// the overall average into a qualitative band.
//
// This is the single implementation consumed by the dashboard, report
// listings, exports and detail endpoints.
package rubric

import "math"

// Rubric category names. Each category holds a fixed number of scored
// indicators; an indicator value of 0 means "not yet rated".
const (
	CategoryCommunications = "communications"
	CategoryManagement     = "management"
	CategoryAssessment     = "assessment"
)

// ItemCounts is the number of indicators per category.
var ItemCounts = map[string]int{
	CategoryCommunications: 5,
	CategoryManagement:     12,
	CategoryAssessment:     6,
}

// Categories lists the categories in form order.
var Categories = []string{
	CategoryCommunications,
	CategoryManagement,
	CategoryAssessment,
}

// CategoryLabels holds the display names used on forms and reports.
var CategoryLabels = map[string]string{
	CategoryCommunications: "Communications of Learning Goals",
	CategoryManagement:     "Classroom Management",
	CategoryAssessment:     "Assessment of Learning",
}

// Classification labels.
const (
	LabelExcellent         = "Excellent"
	LabelVerySatisfactory  = "Very Satisfactory"
	LabelSatisfactory      = "Satisfactory"
	LabelBelowSatisfactory = "Below Satisfactory"
	LabelNeedsImprovement  = "Needs Improvement"
	LabelNotRated          = "Not Rated"
)

// Summary is the computed result for one evaluation.
type Summary struct {
	CategoryAverages map[string]float64
	Overall          float64
	Label            string
	RatedCount       int
}

// isSet reports whether a rating value counts as submitted.
// Valid ratings are integers 1 through 5.
func isSet(v int) bool {
	return v >= 1 && v <= 5
}

// CategoryAverage returns the mean of the set ratings in one category,
// or 0.0 when none are set.
func CategoryAverage(items []int) float64 {
	sum, count := 0, 0
	for _, v := range items {
		if isSet(v) {
			sum += v
			count++
		}
	}
	if count == 0 {
		return 0.0
	}
	return float64(sum) / float64(count)
}

// OverallAverage returns the pooled mean across all set ratings in all
// categories. Because category sizes differ (5, 12, 6), this is not the
// mean of the category averages.
func OverallAverage(byCategory map[string][]int) float64 {
	sum, count := 0, 0
	for _, items := range byCategory {
		for _, v := range items {
			if isSet(v) {
				sum += v
				count++
			}
		}
	}
	if count == 0 {
		return 0.0
	}
	return float64(sum) / float64(count)
}

// Classify maps an overall average to its qualitative band.
// Bands are closed on the lower edge and open on the upper edge, except
// the top band which includes 5.0. Anything below 1.0, including an
// unrated 0.0, classifies as "Not Rated".
func Classify(overall float64) string {
	switch {
	case overall >= 4.6:
		return LabelExcellent
	case overall >= 3.6:
		return LabelVerySatisfactory
	case overall >= 2.9:
		return LabelSatisfactory
	case overall >= 1.8:
		return LabelBelowSatisfactory
	case overall >= 1.0:
		return LabelNeedsImprovement
	default:
		return LabelNotRated
	}
}

// Round1 rounds to one decimal place for display. Stored values keep
// full precision.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Summarize computes all averages and the classification in one pass.
func Summarize(byCategory map[string][]int) Summary {
	s := Summary{
		CategoryAverages: make(map[string]float64, len(byCategory)),
	}
	for name, items := range byCategory {
		s.CategoryAverages[name] = CategoryAverage(items)
		for _, v := range items {
			if isSet(v) {
				s.RatedCount++
			}
		}
	}
	s.Overall = OverallAverage(byCategory)
	s.Label = Classify(s.Overall)
	return s
}
