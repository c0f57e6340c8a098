package app

import (
	"context"
	"strings"
	"testing"

	"github.com/Pankajnegi356/recruitment-portal/internal/common"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/job"
)

func newJobServiceFixture(t *testing.T) (*JobService, *fakeJobRepo, *fakeActivityRepo) {
	t.Helper()
	jobs := newFakeJobRepo()
	activityLog := newFakeActivityRepo()
	return NewJobService(jobs, activityLog), jobs, activityLog
}

func TestJobCreateRequiresTitle(t *testing.T) {
	service, _, _ := newJobServiceFixture(t)
	_, err := service.Create(context.Background(), job.Job{Title: "   "}, "recruiter@example.com")
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestJobCreateDefaultsToDraft(t *testing.T) {
	service, _, _ := newJobServiceFixture(t)
	created, err := service.Create(context.Background(), job.Job{Title: "Backend Engineer"}, "recruiter@example.com")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != job.StatusDraft {
		t.Fatalf("expected draft, got %q", created.Status)
	}
	if !strings.HasPrefix(created.ShareSlug, "backend-engineer-") {
		t.Fatalf("unexpected share slug %q", created.ShareSlug)
	}
}

func TestJobUpdateStatusNormalizesPublished(t *testing.T) {
	service, _, _ := newJobServiceFixture(t)
	created, err := service.Create(context.Background(), job.Job{Title: "Backend Engineer"}, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	updated, err := service.UpdateStatus(context.Background(), created.ID, "Published", "recruiter@example.com")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != job.StatusActive {
		t.Fatalf("expected active, got %q", updated.Status)
	}
}

func TestJobUpdateStatusRejectsUnknownStatus(t *testing.T) {
	service, _, _ := newJobServiceFixture(t)
	created, err := service.Create(context.Background(), job.Job{Title: "Backend Engineer"}, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := service.UpdateStatus(context.Background(), created.ID, "archived", ""); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestJobCreateWritesActivity(t *testing.T) {
	service, _, activityLog := newJobServiceFixture(t)
	created, err := service.Create(context.Background(), job.Job{Title: "Backend Engineer"}, "recruiter@example.com")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	entries, err := activityLog.ListByEntity(context.Background(), "job", created.ID)
	if err != nil {
		t.Fatalf("list activity: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one activity entry, got %d", len(entries))
	}
	if entries[0].Action != "job.created" {
		t.Fatalf("unexpected action %q", entries[0].Action)
	}
	if entries[0].Actor == nil || *entries[0].Actor != "recruiter@example.com" {
		t.Fatalf("expected actor recorded, got %v", entries[0].Actor)
	}
}

func TestJobListIncludesShareSlug(t *testing.T) {
	service, _, _ := newJobServiceFixture(t)
	if _, err := service.Create(context.Background(), job.Job{Title: "Backend Engineer"}, ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := service.Create(context.Background(), job.Job{Title: "Data Analyst"}, ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	items, err := service.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected two jobs, got %d", len(items))
	}
	for _, item := range items {
		if item.ShareSlug == "" {
			t.Fatalf("job %q missing share slug", item.Title)
		}
	}
}
