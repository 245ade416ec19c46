package tracker

import (
	"context"
	"testing"

	"devtrack/internal/models"
)

func TestSetRoleRequiresAdmin(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if err := svc.SetRole(ctx, "g1", asLead(), "newbie", models.RoleViewer); !IsDenied(err) {
		t.Fatal("expected lead denied role assignment")
	}
	if err := svc.SetRole(ctx, "g1", asAdmin(), "newbie", models.RoleViewer); err != nil {
		t.Fatalf("admin assign: %v", err)
	}

	role, err := svc.GetRole(ctx, "g1", "newbie")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if role != models.RoleViewer {
		t.Fatalf("expected viewer, got %q", role)
	}
}

func TestSetRoleRejectsUnknownRole(t *testing.T) {
	svc := testService(t)

	err := svc.SetRole(context.Background(), "g1", asAdmin(), "newbie", "overlord")
	if !IsInvalid(err) {
		t.Fatalf("expected invalid role rejected, got %v", err)
	}
}

func TestHasRankMonotone(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	// Each member passes checks at or below their own rank and fails
	// above it.
	cases := []struct {
		user string
		rank int
	}{
		{"admin", 5}, {"lead", 4}, {"dev", 3}, {"qa", 2}, {"view", 1},
	}
	for _, tc := range cases {
		for _, min := range models.RolesByRank() {
			ok, err := svc.HasRank(ctx, "g1", tc.user, min)
			if err != nil {
				t.Fatalf("has rank: %v", err)
			}
			want := tc.rank >= models.RoleRank(min)
			if ok != want {
				t.Fatalf("%s vs %s: got %v, want %v", tc.user, min, ok, want)
			}
		}
	}

	// Unassigned members fail every check.
	for _, min := range models.RolesByRank() {
		ok, err := svc.HasRank(ctx, "g1", "nobody", min)
		if err != nil {
			t.Fatalf("has rank: %v", err)
		}
		if ok {
			t.Fatalf("expected unassigned member to fail %s check", min)
		}
	}
}

func TestRemoveRole(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if err := svc.RemoveRole(ctx, "g1", asAdmin(), "qa"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := svc.RemoveRole(ctx, "g1", asAdmin(), "qa"); !IsNotFound(err) {
		t.Fatal("expected not found removing twice")
	}

	// The demoted member immediately fails gates.
	project := mustCreateProject(t, svc, "Alpha")
	if _, err := svc.ReportBug(ctx, "g1", asQA(), project.Seq, BugDraft{Title: "Nope"}); !IsDenied(err) {
		t.Fatal("expected removed member denied")
	}
}

func TestListTeamOrderedByRank(t *testing.T) {
	svc := testService(t)

	members, err := svc.ListTeam(context.Background(), "g1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(members) != 5 {
		t.Fatalf("expected 5 members, got %d", len(members))
	}
	for i := 1; i < len(members); i++ {
		if members[i-1].Rank() < members[i].Rank() {
			t.Fatalf("expected rank-descending order, got %+v", members)
		}
	}
	if members[0].UserID != "admin" {
		t.Fatalf("expected admin first, got %q", members[0].UserID)
	}
}
