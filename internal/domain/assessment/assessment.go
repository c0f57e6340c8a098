package assessment

import "time"

// TestMaxScore is the fixed denominator of the pre-screening test.
const TestMaxScore = 25.0

type TestResult struct {
	ID          int64     `json:"id"`
	CandidateID int64     `json:"candidate_id"`
	TestScore   float64   `json:"test_score"`
	MaxScore    float64   `json:"max_score"`
	CompletedAt time.Time `json:"completed_at"`
}

// Interview holds a single interview rating on a 0-10 scale. The rating is an
// opaque input produced outside this system.
type Interview struct {
	ID          int64     `json:"id"`
	CandidateID int64     `json:"candidate_id"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
}
