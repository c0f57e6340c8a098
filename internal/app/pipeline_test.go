package app

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Pankajnegi356/recruitment-portal/internal/domain/candidate"
)

func historyTexts(events []HistoryEvent) []string {
	texts := make([]string, 0, len(events))
	for _, e := range events {
		texts = append(texts, e.Text)
	}
	return texts
}

func TestDeriveHistoryFullProgression(t *testing.T) {
	c := candidate.Candidate{
		Status:          candidate.StageRound2Cleared,
		MaxStageReached: candidate.StageRound2Cleared,
		CreatedAt:       time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	events := DeriveHistory(c, "Backend Engineer", 2)

	want := []string{
		"cleared interview / Round 2",
		"moved to Interview Confirmed",
		"moved to Negotiating Interview Date",
		"moved to Pre-screening Test",
		"moved to Shortlisted",
		"applied for Backend Engineer",
	}
	if got := historyTexts(events); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected history:\ngot  %v\nwant %v", got, want)
	}
	for _, e := range events {
		if strings.Contains(e.Text, "rejected") {
			t.Fatalf("progressing candidate must not show a rejection event: %q", e.Text)
		}
	}
}

func TestDeriveHistoryRejectedUsesMaxStage(t *testing.T) {
	c := candidate.Candidate{
		Status:          candidate.StageRejected,
		MaxStageReached: candidate.StageTechnicalInterview,
		CreatedAt:       time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	events := DeriveHistory(c, "Backend Engineer", 2)

	want := []string{
		"was rejected",
		"moved to Negotiating Interview Date",
		"moved to Pre-screening Test",
		"moved to Shortlisted",
		"applied for Backend Engineer",
	}
	if got := historyTexts(events); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected history:\ngot  %v\nwant %v", got, want)
	}
}

func TestDeriveHistoryRejectedFallsBackWhenMaxStageUnknown(t *testing.T) {
	c := candidate.Candidate{
		Status:    candidate.StageRejected,
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	events := DeriveHistory(c, "Backend Engineer", candidate.StageShortlisted)

	want := []string{
		"was rejected",
		"moved to Shortlisted",
		"applied for Backend Engineer",
	}
	if got := historyTexts(events); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected history:\ngot  %v\nwant %v", got, want)
	}
}

func TestDeriveHistoryIsDeterministic(t *testing.T) {
	c := candidate.Candidate{
		Status:          candidate.StagePreScreening,
		MaxStageReached: candidate.StagePreScreening,
		CreatedAt:       time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	first := DeriveHistory(c, "Backend Engineer", 2)
	second := DeriveHistory(c, "Backend Engineer", 2)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated derivation produced different feeds")
	}
}

func TestDeriveHistorySharesApplicationTimestamp(t *testing.T) {
	appliedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := candidate.Candidate{
		Status:          candidate.StageInterviewConfirmed,
		MaxStageReached: candidate.StageInterviewConfirmed,
		CreatedAt:       appliedAt,
	}
	for _, e := range DeriveHistory(c, "Backend Engineer", 2) {
		if !e.OccurredAt.Equal(appliedAt) {
			t.Fatalf("event %q carries timestamp %v, want %v", e.Text, e.OccurredAt, appliedAt)
		}
	}
}
