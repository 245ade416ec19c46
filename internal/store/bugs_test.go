package store

import (
	"context"
	"testing"
	"time"

	"devtrack/internal/models"
)

func TestCreateBugRoundTripsTags(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	project := mustProject(t, st, "g1", "Alpha")

	seq, err := st.NextSeq(ctx, "g1", models.KindBug)
	if err != nil {
		t.Fatalf("next seq: %v", err)
	}
	now := time.Now().UTC()
	bug := &models.Bug{
		GuildID:   "g1",
		Seq:       seq,
		ProjectID: project.ID,
		Title:     "Tagged bug",
		Severity:  models.SeverityCritical,
		Status:    models.BugNew,
		Reporter:  "u9",
		Tags:      []string{"ui", "regression"},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := st.CreateBug(ctx, bug); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := st.GetBugBySeq(ctx, "g1", seq)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected bug, got nil")
	}
	if len(got.Tags) != 2 || got.Tags[0] != "ui" || got.Tags[1] != "regression" {
		t.Fatalf("expected tags preserved, got %v", got.Tags)
	}
	if got.Severity != models.SeverityCritical {
		t.Fatalf("expected critical severity, got %s", got.Severity)
	}
}

func TestListBugsFilters(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	project := mustProject(t, st, "g1", "Alpha")
	first := mustBug(t, st, project, "First")
	second := mustBug(t, st, project, "Second")
	mustBug(t, st, project, "Third")

	if err := st.UpdateBugStatus(ctx, first.ID, models.BugClosed, now); err != nil {
		t.Fatalf("close first: %v", err)
	}
	if err := st.AssignBug(ctx, second.ID, "u1", now); err != nil {
		t.Fatalf("assign second: %v", err)
	}

	got, err := st.ListBugs(ctx, "g1", BugFilter{
		ProjectID: project.ID,
		Statuses:  []models.BugStatus{models.BugClosed},
	})
	if err != nil {
		t.Fatalf("list closed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "First" {
		t.Fatalf("expected only First closed, got %+v", got)
	}

	got, err = st.ListBugs(ctx, "g1", BugFilter{ProjectID: project.ID, Assignee: "u1"})
	if err != nil {
		t.Fatalf("list by assignee: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Second" {
		t.Fatalf("expected only Second for u1, got %+v", got)
	}

	open, err := st.ListOpenBugs(ctx, project.ID)
	if err != nil {
		t.Fatalf("list open: %v", err)
	}
	if len(open) != 2 {
		t.Fatalf("expected 2 open bugs, got %d", len(open))
	}
}

func TestDeleteBugCascadesLinks(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	project := mustProject(t, st, "g1", "Alpha")
	task := mustTask(t, st, project, "Task")
	bug := mustBug(t, st, project, "Bug")

	if err := st.LinkTaskBug(ctx, task.ID, bug.ID); err != nil {
		t.Fatalf("link: %v", err)
	}

	deleted, err := st.DeleteBug(ctx, bug.ID)
	if err != nil || !deleted {
		t.Fatalf("delete: deleted=%v err=%v", deleted, err)
	}

	bugs, err := st.ListBugsForTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("list linked bugs: %v", err)
	}
	if len(bugs) != 0 {
		t.Fatalf("expected links removed with bug, got %d", len(bugs))
	}
}
