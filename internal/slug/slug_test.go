package slug

import (
	"strings"
	"testing"
	"time"

	"github.com/Pankajnegi356/recruitment-portal/internal/common"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/job"
)

func TestGenerate_CleansTitle(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Go Developer", "go-developer"},
		{"Go  Developer ", "go-developer"},
		{"QA Engineer (Remote)", "qa-engineer-remote"},
		{"Senior Backend Engineer!!", "senior-backend-engin"},
		{"C++ / C# Developer", "c-c-developer"},
		{"  DevOps\tEngineer\n", "devops-engineer"},
	}
	at := time.UnixMilli(1700000001234)
	for _, tc := range cases {
		got := Generate(tc.title, at)
		if got != tc.want+"-1234" {
			t.Errorf("Generate(%q) = %q, want %q", tc.title, got, tc.want+"-1234")
		}
	}
}

func TestGenerate_SuffixOnlyUniqueness(t *testing.T) {
	first := Generate("Data Engineer", time.UnixMilli(1700000001234))
	second := Generate("Data Engineer", time.UnixMilli(1700000009999))
	if first == second {
		t.Fatalf("expected different codes, both were %q", first)
	}
	if TitlePart(first) != TitlePart(second) {
		t.Fatalf("expected shared title part, got %q and %q", TitlePart(first), TitlePart(second))
	}
	if !strings.HasSuffix(first, "-1234") || !strings.HasSuffix(second, "-9999") {
		t.Fatalf("expected timestamp suffixes, got %q and %q", first, second)
	}
}

func TestGenerate_TruncationNeverEndsWithHyphen(t *testing.T) {
	// "marketing-analytics-" hits the cap exactly on a word boundary hyphen.
	got := Generate("Marketing Analytics Lead", time.UnixMilli(1700000000042))
	part := TitlePart(got)
	if strings.HasSuffix(part, "-") || strings.Contains(got, "--") {
		t.Fatalf("expected clean truncation, got %q", got)
	}
	if len(part) > 20 {
		t.Fatalf("title part %q exceeds 20 characters", part)
	}
}

func TestResolve_TimestampIndependent(t *testing.T) {
	posting := job.Job{ID: 7, Title: "Senior Backend Engineer!!", Status: job.StatusActive}
	code := Generate(posting.Title, time.UnixMilli(1700000001234))

	for _, incoming := range []string{code, TitlePart(code) + "-9999", TitlePart(code) + "-0000"} {
		resolved, err := Resolve(incoming, []job.Job{posting})
		if err != nil {
			t.Fatalf("Resolve(%q) error: %v", incoming, err)
		}
		if resolved.ID != posting.ID {
			t.Fatalf("Resolve(%q) returned job %d, want %d", incoming, resolved.ID, posting.ID)
		}
	}
}

func TestResolve_FirstMatchWins(t *testing.T) {
	jobs := []job.Job{
		{ID: 1, Title: "Platform Engineer", Status: job.StatusActive},
		{ID: 2, Title: "Platform   Engineer!", Status: job.StatusActive},
	}
	resolved, err := Resolve("platform-engineer-1111", jobs)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if resolved.ID != 1 {
		t.Fatalf("expected first matching job, got id %d", resolved.ID)
	}
}

func TestResolve_SkipsClosedJobs(t *testing.T) {
	jobs := []job.Job{
		{ID: 1, Title: "iOS Developer", Status: job.StatusCompleted},
		{ID: 2, Title: "iOS Developer", Status: job.StatusCanceled},
		{ID: 3, Title: "iOS Developer", Status: job.StatusOnHold},
		{ID: 4, Title: "iOS Developer", Status: job.StatusActive},
	}
	resolved, err := Resolve("ios-developer-4242", jobs)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if resolved.ID != 4 {
		t.Fatalf("expected the active posting, got id %d", resolved.ID)
	}
}

func TestResolve_DraftIsReachable(t *testing.T) {
	jobs := []job.Job{{ID: 9, Title: "SRE", Status: job.StatusDraft}}
	resolved, err := Resolve("sre-0001", jobs)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if resolved.ID != 9 {
		t.Fatalf("expected draft posting, got id %d", resolved.ID)
	}
}

func TestResolve_NotFound(t *testing.T) {
	jobs := []job.Job{{ID: 1, Title: "Backend Developer", Status: job.StatusActive}}
	_, err := Resolve("frontend-developer-1234", jobs)
	if !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not_found error, got %v", err)
	}
	_, err = Resolve("", jobs)
	if !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not_found error for empty code, got %v", err)
	}
}
