package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"devtrack/internal/models"
)

// testStore creates a temporary store for testing.
func testStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// mustProject allocates a seq and inserts a project.
func mustProject(t *testing.T, st *Store, guildID, name string) *models.Project {
	t.Helper()
	ctx := context.Background()
	seq, err := st.NextSeq(ctx, guildID, models.KindProject)
	if err != nil {
		t.Fatalf("next seq: %v", err)
	}
	project := &models.Project{
		GuildID:   guildID,
		Seq:       seq,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := st.CreateProject(ctx, project); err != nil {
		t.Fatalf("create project %q: %v", name, err)
	}
	return project
}

// mustTask allocates a seq and inserts a task under the project.
func mustTask(t *testing.T, st *Store, project *models.Project, title string) *models.Task {
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
		Status:    models.DefaultTaskStatus,
		Priority:  models.DefaultPriority,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := st.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task %q: %v", title, err)
	}
	return task
}

// mustBug allocates a seq and inserts a bug under the project.
func mustBug(t *testing.T, st *Store, project *models.Project, title string) *models.Bug {
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
		Status:    models.DefaultBugStatus,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := st.CreateBug(ctx, bug); err != nil {
		t.Fatalf("create bug %q: %v", title, err)
	}
	return bug
}

func TestOpenAppliesMigrations(t *testing.T) {
	st := testStore(t)

	plan, err := st.MigrationPlan()
	if err != nil {
		t.Fatalf("migration plan: %v", err)
	}
	if plan.CurrentVersion != plan.AvailableVersion {
		t.Fatalf("expected all migrations applied, current=%d available=%d",
			plan.CurrentVersion, plan.AvailableVersion)
	}
	if len(plan.Pending) != 0 {
		t.Fatalf("expected no pending migrations, got %d", len(plan.Pending))
	}
}

func TestForeignKeysOnEveryPoolConnection(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	// Hold one connection per pool slot so each check below runs on a
	// distinct connection, including ones opened after startup.
	conns := make([]*sql.Conn, 0, maxOpenConns)
	defer func() {
		for _, conn := range conns {
			conn.Close()
		}
	}()
	for i := 0; i < maxOpenConns; i++ {
		conn, err := st.db.Conn(ctx)
		if err != nil {
			t.Fatalf("open connection %d: %v", i, err)
		}
		conns = append(conns, conn)

		var enabled int
		if err := conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err != nil {
			t.Fatalf("read pragma on connection %d: %v", i, err)
		}
		if enabled != 1 {
			t.Fatalf("connection %d opened with foreign_keys=%d", i, enabled)
		}
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty db path")
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	st, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	project := mustProject(t, st, "g1", "Persist")
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	st2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st2.Close()

	got, err := st2.GetProjectBySeq(ctx, "g1", project.Seq)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got == nil || got.Name != "Persist" {
		t.Fatalf("expected project to survive reopen, got %+v", got)
	}
}
