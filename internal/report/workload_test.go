package report

import (
	"context"
	"testing"

	"devtrack/internal/models"
)

func TestMemberWorkloadBands(t *testing.T) {
	reporter, st := testReporter(t)
	ctx := context.Background()

	if err := st.SetSetting(ctx, "g1", "workload_max_items", "10"); err != nil {
		t.Fatalf("set capacity: %v", err)
	}
	project := seedProject(t, st, "g1", "Alpha")

	// 6 open items of 10: available is anything under 70%.
	for i := 0; i < 5; i++ {
		seedTask(t, st, project, "Task", models.TaskTodo, "u1")
	}
	seedBug(t, st, project, "Bug", models.BugNew, "u1")

	load, err := reporter.MemberWorkload(ctx, "g1", "u1")
	if err != nil {
		t.Fatalf("workload: %v", err)
	}
	if load.Total() != 6 || load.Band != BandAvailable {
		t.Fatalf("expected 6 items available, got %+v", load)
	}

	// 7 of 10 crosses into high load.
	seedTask(t, st, project, "Task", models.TaskInProgress, "u1")
	load, err = reporter.MemberWorkload(ctx, "g1", "u1")
	if err != nil {
		t.Fatalf("workload: %v", err)
	}
	if load.Band != BandHighLoad {
		t.Fatalf("expected high load at 7/10, got %s", load.Band)
	}

	// 10 of 10 is overloaded.
	for i := 0; i < 3; i++ {
		seedTask(t, st, project, "Task", models.TaskBlocked, "u1")
	}
	load, err = reporter.MemberWorkload(ctx, "g1", "u1")
	if err != nil {
		t.Fatalf("workload: %v", err)
	}
	if load.Band != BandOverloaded {
		t.Fatalf("expected overloaded at 10/10, got %s", load.Band)
	}
}

func TestWorkloadIgnoresSettledItems(t *testing.T) {
	reporter, st := testReporter(t)
	ctx := context.Background()

	project := seedProject(t, st, "g1", "Alpha")
	seedTask(t, st, project, "Done", models.TaskDone, "u1")
	seedTask(t, st, project, "Someday", models.TaskBacklog, "u1")
	seedBug(t, st, project, "Fixed", models.BugClosed, "u1")

	load, err := reporter.MemberWorkload(ctx, "g1", "u1")
	if err != nil {
		t.Fatalf("workload: %v", err)
	}
	if load.Total() != 0 {
		t.Fatalf("expected done/backlog/closed excluded, got %+v", load)
	}
}

func TestWorkloadMonotone(t *testing.T) {
	reporter, st := testReporter(t)
	ctx := context.Background()

	project := seedProject(t, st, "g1", "Alpha")

	before, err := reporter.MemberWorkload(ctx, "g1", "u1")
	if err != nil {
		t.Fatalf("workload: %v", err)
	}

	// Adding an open assignment never shrinks the count.
	task := seedTask(t, st, project, "New", models.TaskTodo, "u1")
	after, err := reporter.MemberWorkload(ctx, "g1", "u1")
	if err != nil {
		t.Fatalf("workload: %v", err)
	}
	if after.Total() < before.Total() {
		t.Fatalf("workload shrank on assignment: %d -> %d", before.Total(), after.Total())
	}

	// Completing it never grows the count.
	if err := st.UpdateTaskStatus(ctx, task.ID, models.TaskDone, task.UpdatedAt); err != nil {
		t.Fatalf("complete: %v", err)
	}
	final, err := reporter.MemberWorkload(ctx, "g1", "u1")
	if err != nil {
		t.Fatalf("workload: %v", err)
	}
	if final.Total() > after.Total() {
		t.Fatalf("workload grew on completion: %d -> %d", after.Total(), final.Total())
	}
}

func TestTeamWorkloadBusiestFirst(t *testing.T) {
	reporter, st := testReporter(t)
	ctx := context.Background()

	project := seedProject(t, st, "g1", "Alpha")
	for user, role := range map[string]models.Role{
		"busy": models.RoleDeveloper,
		"idle": models.RoleViewer,
		"mid":  models.RoleQA,
	} {
		if err := st.SetTeamRole(ctx, "g1", user, role); err != nil {
			t.Fatalf("seed role: %v", err)
		}
	}

	for i := 0; i < 3; i++ {
		seedTask(t, st, project, "Task", models.TaskTodo, "busy")
	}
	seedBug(t, st, project, "Bug", models.BugNew, "mid")

	loads, err := reporter.TeamWorkload(ctx, "g1")
	if err != nil {
		t.Fatalf("team workload: %v", err)
	}
	if len(loads) != 3 {
		t.Fatalf("expected 3 members, got %d", len(loads))
	}
	if loads[0].UserID != "busy" || loads[1].UserID != "mid" || loads[2].UserID != "idle" {
		t.Fatalf("expected busiest first, got %+v", loads)
	}
}

func TestBandFor(t *testing.T) {
	cases := []struct {
		total, capacity int
		want            Band
	}{
		{0, 10, BandAvailable},
		{6, 10, BandAvailable},
		{7, 10, BandHighLoad},
		{9, 10, BandHighLoad},
		{10, 10, BandOverloaded},
		{15, 10, BandOverloaded},
		{2, 3, BandAvailable},
		{3, 3, BandOverloaded},
		{7, 9, BandHighLoad},
	}
	for _, tc := range cases {
		if got := bandFor(tc.total, tc.capacity); got != tc.want {
			t.Fatalf("bandFor(%d, %d) = %s, want %s", tc.total, tc.capacity, got, tc.want)
		}
	}
}
