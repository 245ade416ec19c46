package tracker

import (
	"context"
	"testing"

	"devtrack/internal/models"
)

func TestReportBugDefaults(t *testing.T) {
	svc := testService(t)

	project := mustCreateProject(t, svc, "Alpha")
	bug := mustReportBug(t, svc, project.Seq, "Crash on save")

	if bug.Status != models.BugNew || bug.Severity != models.SeverityMedium {
		t.Fatalf("expected new/medium defaults, got %s/%s", bug.Status, bug.Severity)
	}
	if bug.Reporter != "view" {
		t.Fatalf("expected reporter from actor, got %q", bug.Reporter)
	}
}

func TestSetBugStatusRanks(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	project := mustCreateProject(t, svc, "Alpha")
	bug := mustReportBug(t, svc, project.Seq, "Crash on save")

	// Non-closing transitions require developer; qa is below that.
	_, err := svc.SetBugStatus(ctx, "g1", asQA(), bug.Seq, models.BugAcknowledged)
	if !IsDenied(err) {
		t.Fatalf("expected qa denied acknowledge, got %v", err)
	}
	if _, err := svc.SetBugStatus(ctx, "g1", asDev(), bug.Seq, models.BugAcknowledged); err != nil {
		t.Fatalf("dev acknowledge: %v", err)
	}

	// Closing only needs qa; viewers still can't.
	_, err = svc.SetBugStatus(ctx, "g1", asView(), bug.Seq, models.BugClosed)
	if !IsDenied(err) {
		t.Fatalf("expected viewer denied close, got %v", err)
	}
	if _, err := svc.SetBugStatus(ctx, "g1", asQA(), bug.Seq, models.BugClosed); err != nil {
		t.Fatalf("qa close: %v", err)
	}
}

func TestSetBugStatusSameStatusConflicts(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	project := mustCreateProject(t, svc, "Alpha")
	bug := mustReportBug(t, svc, project.Seq, "Crash on save")

	_, err := svc.SetBugStatus(ctx, "g1", asDev(), bug.Seq, models.BugNew)
	if !IsConflict(err) {
		t.Fatalf("expected conflict re-applying status, got %v", err)
	}

	after, err := svc.GetBug(ctx, "g1", bug.Seq)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !after.UpdatedAt.Equal(bug.UpdatedAt) {
		t.Fatal("updated_at moved on conflicting transition")
	}
}

func TestBatchReportBugsPartialFailure(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	project := mustCreateProject(t, svc, "Alpha")

	drafts := []BugDraft{
		{Title: "First crash"},
		{Title: "Weird one", Severity: "catastrophic"},
		{Title: "Second crash", Severity: models.SeverityCritical},
	}
	results, err := svc.BatchReportBugs(ctx, "g1", asView(), project.Seq, drafts)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Fatalf("expected first and third to succeed: %v, %v", results[0].Err, results[2].Err)
	}
	if !IsInvalid(results[1].Err) {
		t.Fatalf("expected invalid severity rejected, got %v", results[1].Err)
	}

	got, err := svc.GetBug(ctx, "g1", results[2].Seq)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Severity != models.SeverityCritical {
		t.Fatalf("expected critical severity kept, got %s", got.Severity)
	}
}

func TestDeleteBugRequiresLead(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	project := mustCreateProject(t, svc, "Alpha")
	bug := mustReportBug(t, svc, project.Seq, "Doomed")

	if err := svc.DeleteBug(ctx, "g1", asDev(), bug.Seq); !IsDenied(err) {
		t.Fatal("expected dev denied bug delete")
	}
	if err := svc.DeleteBug(ctx, "g1", asLead(), bug.Seq); err != nil {
		t.Fatalf("lead delete: %v", err)
	}
	if _, err := svc.GetBug(ctx, "g1", bug.Seq); !IsNotFound(err) {
		t.Fatal("expected bug gone")
	}
}
