package report

import (
	"context"
	"fmt"
	"sort"
)

// Band buckets a member's load against the guild's ceiling.
type Band string

const (
	BandAvailable  Band = "available"   // below 70% of capacity
	BandHighLoad   Band = "high_load"   // 70-99%
	BandOverloaded Band = "overloaded"  // at or over capacity
)

// Workload is one member's open assignment count.
type Workload struct {
	UserID      string `json:"user_id"`
	ActiveTasks int    `json:"active_tasks"`
	OpenBugs    int    `json:"open_bugs"`
	Capacity    int    `json:"capacity"`
	Band        Band   `json:"band"`
}

// Total is the number of items counting against the member's capacity.
func (w Workload) Total() int {
	return w.ActiveTasks + w.OpenBugs
}

// MemberWorkload computes one member's load: active tasks (outside
// done/backlog) plus open bugs, banded against workload_max_items.
func (r *Reporter) MemberWorkload(ctx context.Context, guildID, userID string) (*Workload, error) {
	capacity, err := r.intSetting(ctx, guildID, "workload_max_items")
	if err != nil {
		return nil, err
	}
	return r.memberWorkload(ctx, guildID, userID, capacity)
}

func (r *Reporter) memberWorkload(ctx context.Context, guildID, userID string, capacity int) (*Workload, error) {
	tasks, err := r.store.CountActiveTasksAssigned(ctx, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}
	bugs, err := r.store.CountOpenBugsAssigned(ctx, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("count bugs: %w", err)
	}

	load := &Workload{
		UserID:      userID,
		ActiveTasks: tasks,
		OpenBugs:    bugs,
		Capacity:    capacity,
	}
	load.Band = bandFor(load.Total(), capacity)
	return load, nil
}

// TeamWorkload computes the workload of every ranked member, busiest
// first.
func (r *Reporter) TeamWorkload(ctx context.Context, guildID string) ([]Workload, error) {
	capacity, err := r.intSetting(ctx, guildID, "workload_max_items")
	if err != nil {
		return nil, err
	}
	members, err := r.store.ListTeamMembers(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("list team: %w", err)
	}

	loads := make([]Workload, 0, len(members))
	for _, member := range members {
		load, err := r.memberWorkload(ctx, guildID, member.UserID, capacity)
		if err != nil {
			return nil, err
		}
		loads = append(loads, *load)
	}

	sort.SliceStable(loads, func(i, j int) bool {
		if ti, tj := loads[i].Total(), loads[j].Total(); ti != tj {
			return ti > tj
		}
		return loads[i].UserID < loads[j].UserID
	})
	return loads, nil
}

func bandFor(total, capacity int) Band {
	if capacity <= 0 {
		return BandAvailable
	}
	switch {
	case total >= capacity:
		return BandOverloaded
	case total*10 >= capacity*7:
		return BandHighLoad
	default:
		return BandAvailable
	}
}
