package tracker

import (
	"context"
	"testing"

	"devtrack/internal/models"
)

// Walks the full lifecycle: project and task creation with fresh
// sequence numbers, a status transition, a rejected repeat transition,
// and cascade on project deletion.
func TestProjectTaskLifecycle(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	project, err := svc.CreateProject(ctx, "g1", asLead(), "Alpha", "")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if project.Seq != 1 {
		t.Fatalf("expected first project seq 1, got %d", project.Seq)
	}

	task, err := svc.CreateTask(ctx, "g1", asDev(), project.Seq, TaskDraft{Title: "Fix header"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.Seq != 1 {
		t.Fatalf("expected first task seq 1, got %d", task.Seq)
	}

	moved, err := svc.SetTaskStatus(ctx, "g1", asDev(), task.Seq, models.TaskInProgress)
	if err != nil {
		t.Fatalf("start task: %v", err)
	}
	if !moved.UpdatedAt.After(task.UpdatedAt) {
		t.Fatalf("expected updated_at to advance: %v -> %v", task.UpdatedAt, moved.UpdatedAt)
	}

	_, err = svc.SetTaskStatus(ctx, "g1", asDev(), task.Seq, models.TaskInProgress)
	if !IsConflict(err) {
		t.Fatalf("expected conflict repeating transition, got %v", err)
	}
	unchanged, err := svc.GetTask(ctx, "g1", task.Seq)
	if err != nil {
		t.Fatalf("reload task: %v", err)
	}
	if !unchanged.UpdatedAt.Equal(moved.UpdatedAt) {
		t.Fatal("updated_at moved on rejected transition")
	}

	if err := svc.DeleteProject(ctx, "g1", asAdmin(), project.Seq); err != nil {
		t.Fatalf("delete project: %v", err)
	}
	if _, err := svc.GetTask(ctx, "g1", task.Seq); !IsNotFound(err) {
		t.Fatalf("expected task gone with its project, got %v", err)
	}
}
