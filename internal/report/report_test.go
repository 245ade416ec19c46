package report

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"devtrack/internal/models"
	"devtrack/internal/store"
)

func testReporter(t *testing.T) (*Reporter, *store.Store) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	st, err := store.Open(path)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return New(st), st
}

func seedProject(t *testing.T, st *store.Store, guildID, name string) *models.Project {
	t.Helper()
	ctx := context.Background()
	seq, err := st.NextSeq(ctx, guildID, models.KindProject)
	if err != nil {
		t.Fatalf("next seq: %v", err)
	}
	project := &models.Project{GuildID: guildID, Seq: seq, Name: name, CreatedAt: time.Now().UTC()}
	if err := st.CreateProject(ctx, project); err != nil {
		t.Fatalf("create project: %v", err)
	}
	return project
}

func seedTask(t *testing.T, st *store.Store, project *models.Project, title string, status models.TaskStatus, assignee string) *models.Task {
	t.Helper()
	ctx := context.Background()
	seq, err := st.NextSeq(ctx, project.GuildID, models.KindTask)
	if err != nil {
		t.Fatalf("next seq: %v", err)
	}
	now := time.Now().UTC()
	task := &models.Task{
		GuildID:   project.GuildID,
		Seq:       seq,
		ProjectID: project.ID,
		Title:     title,
		Status:    status,
		Priority:  models.DefaultPriority,
		Assignee:  assignee,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := st.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func seedBug(t *testing.T, st *store.Store, project *models.Project, title string, status models.BugStatus, assignee string) *models.Bug {
	t.Helper()
	ctx := context.Background()
	seq, err := st.NextSeq(ctx, project.GuildID, models.KindBug)
	if err != nil {
		t.Fatalf("next seq: %v", err)
	}
	now := time.Now().UTC()
	bug := &models.Bug{
		GuildID:   project.GuildID,
		Seq:       seq,
		ProjectID: project.ID,
		Title:     title,
		Severity:  models.DefaultBugSeverity,
		Status:    status,
		Assignee:  assignee,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := st.CreateBug(ctx, bug); err != nil {
		t.Fatalf("create bug: %v", err)
	}
	return bug
}

func TestSnapshotCounts(t *testing.T) {
	reporter, st := testReporter(t)
	ctx := context.Background()

	project := seedProject(t, st, "g1", "Alpha")
	seedTask(t, st, project, "One", models.TaskInProgress, "")
	seedTask(t, st, project, "Two", models.TaskInProgress, "")
	seedTask(t, st, project, "Three", models.TaskDone, "")
	seedBug(t, st, project, "Open", models.BugNew, "")
	seedBug(t, st, project, "Gone", models.BugClosed, "")

	snapshot, err := reporter.Snapshot(ctx, project)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snapshot.TotalTasks != 3 {
		t.Fatalf("expected 3 tasks, got %d", snapshot.TotalTasks)
	}
	if snapshot.TaskCounts[models.TaskInProgress] != 2 || snapshot.TaskCounts[models.TaskDone] != 1 {
		t.Fatalf("unexpected task counts: %+v", snapshot.TaskCounts)
	}
	if snapshot.OpenBugs != 1 {
		t.Fatalf("expected 1 open bug, got %d", snapshot.OpenBugs)
	}
	if snapshot.BugCounts[models.SeverityMedium] != 1 {
		t.Fatalf("unexpected bug counts: %+v", snapshot.BugCounts)
	}
}

func TestStaleUsesSettingDefault(t *testing.T) {
	reporter, st := testReporter(t)
	ctx := context.Background()
	now := time.Now().UTC()

	project := seedProject(t, st, "g1", "Alpha")

	old := seedTask(t, st, project, "Forgotten", models.TaskTodo, "")
	if err := st.UpdateTaskStatus(ctx, old.ID, models.TaskTodo, now.AddDate(0, 0, -10)); err != nil {
		t.Fatalf("age task: %v", err)
	}
	seedTask(t, st, project, "Fresh", models.TaskTodo, "")

	// Default threshold is 7 days.
	stale, err := reporter.Stale(ctx, "g1", 0, 0)
	if err != nil {
		t.Fatalf("stale: %v", err)
	}
	if stale.Days != 7 {
		t.Fatalf("expected default 7 days, got %d", stale.Days)
	}
	if len(stale.Tasks) != 1 || stale.Tasks[0].Title != "Forgotten" {
		t.Fatalf("expected only the old task, got %+v", stale.Tasks)
	}

	// A wider explicit threshold clears the report.
	stale, err = reporter.Stale(ctx, "g1", 30, 0)
	if err != nil {
		t.Fatalf("stale 30: %v", err)
	}
	if len(stale.Tasks) != 0 || len(stale.Bugs) != 0 {
		t.Fatalf("expected nothing stale at 30 days, got %+v", stale)
	}
}
