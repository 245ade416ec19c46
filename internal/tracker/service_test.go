package tracker

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"devtrack/internal/models"
	"devtrack/internal/store"
)

// testService builds a service on a temporary store with a standard
// cast: an admin, a lead, a developer, a qa and a viewer, all ranked
// in guild g1.
func testService(t *testing.T) *Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	st, err := store.Open(path)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	svc := New(st, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx := context.Background()
	roles := map[string]models.Role{
		"admin": models.RoleAdmin,
		"lead":  models.RoleLead,
		"dev":   models.RoleDeveloper,
		"qa":    models.RoleQA,
		"view":  models.RoleViewer,
	}
	for user, role := range roles {
		if err := st.SetTeamRole(ctx, "g1", user, role); err != nil {
			t.Fatalf("seed role %s: %v", user, err)
		}
	}
	return svc
}

func asAdmin() Actor { return Actor{ID: "admin"} }
func asLead() Actor  { return Actor{ID: "lead"} }
func asDev() Actor   { return Actor{ID: "dev"} }
func asQA() Actor    { return Actor{ID: "qa"} }
func asView() Actor  { return Actor{ID: "view"} }

func mustCreateProject(t *testing.T, svc *Service, name string) *models.Project {
	t.Helper()
	project, err := svc.CreateProject(context.Background(), "g1", asLead(), name, "")
	if err != nil {
		t.Fatalf("create project %q: %v", name, err)
	}
	return project
}

func mustCreateTask(t *testing.T, svc *Service, projectSeq int64, title string) *models.Task {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), "g1", asDev(), projectSeq, TaskDraft{Title: title})
	if err != nil {
		t.Fatalf("create task %q: %v", title, err)
	}
	return task
}

func mustReportBug(t *testing.T, svc *Service, projectSeq int64, title string) *models.Bug {
	t.Helper()
	bug, err := svc.ReportBug(context.Background(), "g1", asView(), projectSeq, BugDraft{Title: title})
	if err != nil {
		t.Fatalf("report bug %q: %v", title, err)
	}
	return bug
}

func TestRequireRankFailsClosed(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	// Unranked members are denied everything, even viewer-level ops.
	mustCreateProject(t, svc, "Alpha")
	_, err := svc.ReportBug(ctx, "g1", Actor{ID: "stranger"}, 1, BugDraft{Title: "Nope"})
	if !IsDenied(err) {
		t.Fatalf("expected denied for unranked member, got %v", err)
	}

	// Ranks in another guild don't carry over.
	if err := svc.store.SetTeamRole(ctx, "g2", "admin2", models.RoleAdmin); err != nil {
		t.Fatalf("seed role: %v", err)
	}
	_, err = svc.CreateProject(ctx, "g1", Actor{ID: "admin2"}, "Beta", "")
	if !IsDenied(err) {
		t.Fatalf("expected denied across guilds, got %v", err)
	}
}

func TestRankGateOrdering(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	// Project creation requires lead: dev, qa and viewer fail, lead and
	// admin pass.
	for _, actor := range []Actor{asDev(), asQA(), asView()} {
		if _, err := svc.CreateProject(ctx, "g1", actor, "Denied", ""); !IsDenied(err) {
			t.Fatalf("expected %s denied project create, got %v", actor.ID, err)
		}
	}
	if _, err := svc.CreateProject(ctx, "g1", asLead(), "ByLead", ""); err != nil {
		t.Fatalf("lead create: %v", err)
	}
	if _, err := svc.CreateProject(ctx, "g1", asAdmin(), "ByAdmin", ""); err != nil {
		t.Fatalf("admin create: %v", err)
	}

	// Project deletion requires admin.
	if err := svc.DeleteProject(ctx, "g1", asLead(), 1); !IsDenied(err) {
		t.Fatal("expected lead denied project delete")
	}
	if err := svc.DeleteProject(ctx, "g1", asAdmin(), 1); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}

func TestPlatformAdminOverride(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	// A platform admin with no stored role passes every gate.
	boss := Actor{ID: "platform-boss", PlatformAdmin: true}
	project, err := svc.CreateProject(ctx, "g1", boss, "Override", "")
	if err != nil {
		t.Fatalf("platform admin create: %v", err)
	}
	if err := svc.DeleteProject(ctx, "g1", boss, project.Seq); err != nil {
		t.Fatalf("platform admin delete: %v", err)
	}
}

func TestMutationsAppendAudit(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	project := mustCreateProject(t, svc, "Alpha")
	task := mustCreateTask(t, svc, project.Seq, "First")
	if _, err := svc.SetTaskStatus(ctx, "g1", asDev(), task.Seq, models.TaskTodo); err != nil {
		t.Fatalf("status: %v", err)
	}

	entries, err := svc.AuditLog(ctx, "g1", "", 0, 0)
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 audit entries, got %d", len(entries))
	}
	if entries[0].Action != "update_status" || entries[0].Actor != "dev" {
		t.Fatalf("expected newest entry to be the status change, got %+v", entries[0])
	}

	tasks, err := svc.AuditLog(ctx, "g1", models.KindTask, 0, 0)
	if err != nil {
		t.Fatalf("audit filtered: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 task entries, got %d", len(tasks))
	}
}

func TestSplitBulkNames(t *testing.T) {
	got := SplitBulkNames("alpha, beta ,,  gamma ")
	if len(got) != 3 || got[0] != "alpha" || got[1] != "beta" || got[2] != "gamma" {
		t.Fatalf("unexpected names: %v", got)
	}
	if got := SplitBulkNames("  ,, "); got != nil {
		t.Fatalf("expected nil for blank input, got %v", got)
	}
}
