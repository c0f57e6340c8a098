package assessment

import "context"

type Repository interface {
	CreateTestResult(ctx context.Context, t TestResult) (*TestResult, error)
	ListTestResults(ctx context.Context, candidateID int64) ([]TestResult, error)
	CreateInterview(ctx context.Context, i Interview) (*Interview, error)
	ListInterviews(ctx context.Context, candidateID int64) ([]Interview, error)
}
