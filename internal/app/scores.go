package app

import (
	"math"

	"github.com/Pankajnegi356/recruitment-portal/internal/domain/assessment"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/candidate"
)

// ScoreSummary aggregates the three display-only score signals. Nil fields
// mean "no score available"; they must never collapse to zero.
type ScoreSummary struct {
	SkillMatchPercent   *int     `json:"skill_match_percent,omitempty"`
	PreScreeningPercent *int     `json:"pre_screening_percent,omitempty"`
	InterviewAvgRating  *float64 `json:"interview_avg_rating,omitempty"`
	InterviewMaxRating  *float64 `json:"interview_max_rating,omitempty"`
}

// SummarizeScores combines the per-candidate signals for display. Scores never
// drive stage transitions.
func SummarizeScores(c candidate.Candidate, tests []assessment.TestResult, interviews []assessment.Interview) ScoreSummary {
	var summary ScoreSummary

	if c.SkillMatchScore != nil {
		percent := int(math.Round(*c.SkillMatchScore * 100))
		summary.SkillMatchPercent = &percent
	}

	if c.Status >= candidate.StagePreScreening {
		if percent, ok := preScreeningPercent(tests); ok {
			summary.PreScreeningPercent = &percent
		}
	}

	if len(interviews) > 0 {
		var sum, max float64
		for _, iv := range interviews {
			sum += iv.Rating
			if iv.Rating > max {
				max = iv.Rating
			}
		}
		avg := sum / float64(len(interviews))
		summary.InterviewAvgRating = &avg
		summary.InterviewMaxRating = &max
	}

	return summary
}

// preScreeningPercent is shown only once at least one test with a positive
// score exists; a candidate with zero test rows has no score, not 0%.
func preScreeningPercent(tests []assessment.TestResult) (int, bool) {
	if len(tests) == 0 {
		return 0, false
	}
	var sum float64
	positive := false
	for _, t := range tests {
		sum += t.TestScore
		if t.TestScore > 0 {
			positive = true
		}
	}
	if !positive {
		return 0, false
	}
	avg := sum / float64(len(tests))
	return int(math.Round(avg / assessment.TestMaxScore * 100)), true
}
