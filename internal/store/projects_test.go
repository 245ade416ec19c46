package store

import (
	"context"
	"testing"
	"time"

	"devtrack/internal/models"
)

func TestCreateAndGetProject(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	project := mustProject(t, st, "g1", "Alpha")
	if project.ID == 0 {
		t.Fatal("expected internal id to be assigned")
	}
	if project.Seq != 1 {
		t.Fatalf("expected seq 1, got %d", project.Seq)
	}

	got, err := st.GetProjectBySeq(ctx, "g1", 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Name != "Alpha" {
		t.Fatalf("expected project Alpha, got %+v", got)
	}

	byName, err := st.GetProjectByName(ctx, "g1", "Alpha")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if byName == nil || byName.ID != project.ID {
		t.Fatalf("expected same project by name, got %+v", byName)
	}
}

func TestGetProjectScopedByGuild(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	mustProject(t, st, "g1", "Alpha")

	got, err := st.GetProjectBySeq(ctx, "g2", 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no project for other guild, got %+v", got)
	}
}

func TestProjectNameUniquePerGuild(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	mustProject(t, st, "g1", "Alpha")

	seq, err := st.NextSeq(ctx, "g1", models.KindProject)
	if err != nil {
		t.Fatalf("next seq: %v", err)
	}
	dup := &models.Project{GuildID: "g1", Seq: seq, Name: "Alpha", CreatedAt: time.Now().UTC()}
	err = st.CreateProject(ctx, dup)
	if err == nil {
		t.Fatal("expected unique constraint violation")
	}
	if !IsUniqueConstraint(err) {
		t.Fatalf("expected unique constraint error, got %v", err)
	}
	if !IsUniqueConstraint(err, "projects.name") {
		t.Fatalf("expected the name constraint identified, got %v", err)
	}
	if IsUniqueConstraint(err, "projects.seq") {
		t.Fatalf("expected the seq constraint not implicated, got %v", err)
	}

	// Same name in a different guild is fine.
	other := mustProject(t, st, "g2", "Alpha")
	if other.Seq != 1 {
		t.Fatalf("expected g2 project seq 1, got %d", other.Seq)
	}
}

func TestDeleteProjectCascadesOnFreshConnection(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	project := mustProject(t, st, "g1", "Alpha")
	task := mustTask(t, st, project, "Fix header")

	// Pin the startup connection so the delete runs on a connection the
	// pool opens afterwards; cascades must fire there too.
	held, err := st.db.Conn(ctx)
	if err != nil {
		t.Fatalf("pin connection: %v", err)
	}
	defer held.Close()

	deleted, err := st.DeleteProject(ctx, project.ID)
	if err != nil || !deleted {
		t.Fatalf("delete project: deleted=%v err=%v", deleted, err)
	}

	got, err := st.GetTaskBySeq(ctx, "g1", task.Seq)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got != nil {
		t.Fatalf("expected task cascade-deleted, got %+v", got)
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	project := mustProject(t, st, "g1", "Alpha")
	task := mustTask(t, st, project, "Fix header")
	bug := mustBug(t, st, project, "Broken footer")

	comment := &models.TaskComment{TaskID: task.ID, Author: "u1", Content: "on it", CreatedAt: now}
	if err := st.AddTaskComment(ctx, comment); err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if err := st.LinkTaskBug(ctx, task.ID, bug.ID); err != nil {
		t.Fatalf("link: %v", err)
	}

	clSeq, err := st.NextSeq(ctx, "g1", models.KindChecklist)
	if err != nil {
		t.Fatalf("next seq: %v", err)
	}
	checklist := &models.Checklist{GuildID: "g1", Seq: clSeq, TaskID: task.ID, Name: "Release", CreatedAt: now}
	if err := st.CreateChecklist(ctx, checklist); err != nil {
		t.Fatalf("create checklist: %v", err)
	}

	deleted, err := st.DeleteProject(ctx, project.ID)
	if err != nil || !deleted {
		t.Fatalf("delete project: deleted=%v err=%v", deleted, err)
	}

	gotTask, err := st.GetTaskBySeq(ctx, "g1", task.Seq)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if gotTask != nil {
		t.Fatalf("expected task cascade-deleted, got %+v", gotTask)
	}

	gotBug, err := st.GetBugBySeq(ctx, "g1", bug.Seq)
	if err != nil {
		t.Fatalf("get bug: %v", err)
	}
	if gotBug != nil {
		t.Fatalf("expected bug cascade-deleted, got %+v", gotBug)
	}

	comments, err := st.ListTaskComments(ctx, task.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 0 {
		t.Fatalf("expected comments cascade-deleted, got %d", len(comments))
	}

	// The checklist survives with its task link cleared.
	gotChecklist, err := st.GetChecklistBySeq(ctx, "g1", checklist.Seq)
	if err != nil {
		t.Fatalf("get checklist: %v", err)
	}
	if gotChecklist == nil {
		t.Fatal("expected checklist to survive project delete")
	}
	if gotChecklist.TaskID != 0 {
		t.Fatalf("expected checklist task link cleared, got %d", gotChecklist.TaskID)
	}
}

func TestListProjectsMostRecentFirst(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		seq, err := st.NextSeq(ctx, "g1", models.KindProject)
		if err != nil {
			t.Fatalf("next seq: %v", err)
		}
		project := &models.Project{
			GuildID:   "g1",
			Seq:       seq,
			Name:      name,
			CreatedAt: time.Now().UTC().Add(time.Duration(seq) * time.Second),
		}
		if err := st.CreateProject(ctx, project); err != nil {
			t.Fatalf("create %q: %v", name, err)
		}
	}

	projects, err := st.ListProjects(ctx, "g1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(projects) != 3 {
		t.Fatalf("expected 3 projects, got %d", len(projects))
	}
	if projects[0].Name != "Gamma" || projects[2].Name != "Alpha" {
		t.Fatalf("expected most recent first, got %q..%q", projects[0].Name, projects[2].Name)
	}
}
