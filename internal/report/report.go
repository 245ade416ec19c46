package report

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"devtrack/internal/models"
	"devtrack/internal/store"
)

// Reporter computes read-only aggregations over the store. Entity
// resolution (seq lookups, not-found handling) is the caller's job;
// everything here takes already-resolved entities or plain guild ids.
type Reporter struct {
	store *store.Store
	now   func() time.Time
}

func New(st *store.Store) *Reporter {
	return &Reporter{
		store: st,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// ProjectSnapshot is the status breakdown of one project.
type ProjectSnapshot struct {
	Project    models.Project             `json:"project"`
	TaskCounts map[models.TaskStatus]int  `json:"task_counts"`
	BugCounts  map[models.BugSeverity]int `json:"open_bug_counts"`
	TotalTasks int                        `json:"total_tasks"`
	OpenBugs   int                        `json:"open_bugs"`
}

// Snapshot counts a project's tasks by status and its open bugs by
// severity.
func (r *Reporter) Snapshot(ctx context.Context, project *models.Project) (*ProjectSnapshot, error) {
	taskCounts, err := r.store.TaskStatusCounts(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}
	bugCounts, err := r.store.OpenBugSeverityCounts(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("count bugs: %w", err)
	}

	snapshot := &ProjectSnapshot{
		Project:    *project,
		TaskCounts: taskCounts,
		BugCounts:  bugCounts,
	}
	for _, count := range taskCounts {
		snapshot.TotalTasks += count
	}
	for _, count := range bugCounts {
		snapshot.OpenBugs += count
	}
	return snapshot, nil
}

// StaleReport lists the entities nobody has touched since the cutoff.
type StaleReport struct {
	Cutoff time.Time     `json:"cutoff"`
	Days   int           `json:"days"`
	Tasks  []models.Task `json:"tasks"`
	Bugs   []models.Bug  `json:"bugs"`
}

// Stale returns active tasks and open bugs not updated for
// thresholdDays, oldest first. A thresholdDays of 0 falls back to the
// guild's stale_days setting.
func (r *Reporter) Stale(ctx context.Context, guildID string, thresholdDays, limit int) (*StaleReport, error) {
	if thresholdDays <= 0 {
		days, err := r.intSetting(ctx, guildID, "stale_days")
		if err != nil {
			return nil, err
		}
		thresholdDays = days
	}

	cutoff := r.now().AddDate(0, 0, -thresholdDays)
	tasks, err := r.store.ListStaleTasks(ctx, guildID, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("list stale tasks: %w", err)
	}
	bugs, err := r.store.ListStaleBugs(ctx, guildID, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("list stale bugs: %w", err)
	}

	return &StaleReport{Cutoff: cutoff, Days: thresholdDays, Tasks: tasks, Bugs: bugs}, nil
}

func (r *Reporter) intSetting(ctx context.Context, guildID, key string) (int, error) {
	value, err := r.store.GetSetting(ctx, guildID, key)
	if err != nil {
		return 0, fmt.Errorf("read setting %s: %w", key, err)
	}
	if value == "" {
		value = store.DefaultSetting(key)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("setting %s holds non-numeric value %q", key, value)
	}
	return n, nil
}
