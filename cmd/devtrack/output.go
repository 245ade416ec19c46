package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"devtrack/internal/models"
	"devtrack/internal/report"
	"devtrack/internal/tracker"
)

func writeJSON(payload any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(os.Stdout, format, args...)
	return err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func colorTaskStatus(status models.TaskStatus) string {
	switch status {
	case models.TaskDone:
		return color.New(color.FgGreen).Sprint(status)
	case models.TaskInProgress:
		return color.New(color.FgYellow).Sprint(status)
	case models.TaskBlocked:
		return color.New(color.FgRed).Sprint(status)
	case models.TaskReview:
		return color.New(color.FgCyan).Sprint(status)
	default:
		return string(status)
	}
}

func colorBugStatus(status models.BugStatus) string {
	switch status {
	case models.BugClosed:
		return color.New(color.FgGreen).Sprint(status)
	case models.BugNew:
		return color.New(color.FgRed).Sprint(status)
	case models.BugInProgress, models.BugNeedsQA:
		return color.New(color.FgYellow).Sprint(status)
	default:
		return string(status)
	}
}

func colorSeverity(severity models.BugSeverity) string {
	switch severity {
	case models.SeverityCritical:
		return color.New(color.FgRed, color.Bold).Sprint(severity)
	case models.SeverityMedium:
		return color.New(color.FgYellow).Sprint(severity)
	default:
		return string(severity)
	}
}

func colorBand(band report.Band) string {
	switch band {
	case report.BandOverloaded:
		return color.New(color.FgRed).Sprint(band)
	case report.BandHighLoad:
		return color.New(color.FgYellow).Sprint(band)
	default:
		return color.New(color.FgGreen).Sprint(band)
	}
}

func formatTaskLine(task models.Task) string {
	line := fmt.Sprintf("#%d [%s] [%s] %s", task.Seq, colorTaskStatus(task.Status), task.Priority, task.Title)
	if task.Assignee != "" {
		line += " @" + task.Assignee
	}
	return line
}

func formatBugLine(bug models.Bug) string {
	line := fmt.Sprintf("#%d [%s] [%s] %s", bug.Seq, colorBugStatus(bug.Status), colorSeverity(bug.Severity), bug.Title)
	if bug.Assignee != "" {
		line += " @" + bug.Assignee
	}
	return line
}

func writeTaskList(tasks []models.Task) error {
	for _, task := range tasks {
		if err := writePlain("%s\n", formatTaskLine(task)); err != nil {
			return err
		}
	}
	return nil
}

func writeBugList(bugs []models.Bug) error {
	for _, bug := range bugs {
		if err := writePlain("%s\n", formatBugLine(bug)); err != nil {
			return err
		}
	}
	return nil
}

func writeTaskDetail(task *models.Task) error {
	lines := []string{
		fmt.Sprintf("task: #%d", task.Seq),
		fmt.Sprintf("title: %s", task.Title),
		fmt.Sprintf("status: %s", colorTaskStatus(task.Status)),
		fmt.Sprintf("priority: %s", task.Priority),
	}
	if task.Assignee != "" {
		lines = append(lines, fmt.Sprintf("assignee: %s", task.Assignee))
	}
	if task.Creator != "" {
		lines = append(lines, fmt.Sprintf("creator: %s", task.Creator))
	}
	if task.Description != "" {
		lines = append(lines, fmt.Sprintf("description: %s", task.Description))
	}
	lines = append(lines,
		fmt.Sprintf("created_at: %s", formatTime(task.CreatedAt)),
		fmt.Sprintf("updated_at: %s", formatTime(task.UpdatedAt)),
	)
	return writePlain("%s\n", strings.Join(lines, "\n"))
}

func writeBugDetail(bug *models.Bug) error {
	lines := []string{
		fmt.Sprintf("bug: #%d", bug.Seq),
		fmt.Sprintf("title: %s", bug.Title),
		fmt.Sprintf("status: %s", colorBugStatus(bug.Status)),
		fmt.Sprintf("severity: %s", colorSeverity(bug.Severity)),
	}
	if bug.Assignee != "" {
		lines = append(lines, fmt.Sprintf("assignee: %s", bug.Assignee))
	}
	if bug.Reporter != "" {
		lines = append(lines, fmt.Sprintf("reporter: %s", bug.Reporter))
	}
	if len(bug.Tags) > 0 {
		lines = append(lines, fmt.Sprintf("tags: %s", strings.Join(bug.Tags, ", ")))
	}
	if bug.Description != "" {
		lines = append(lines, fmt.Sprintf("description: %s", bug.Description))
	}
	lines = append(lines,
		fmt.Sprintf("created_at: %s", formatTime(bug.CreatedAt)),
		fmt.Sprintf("updated_at: %s", formatTime(bug.UpdatedAt)),
	)
	return writePlain("%s\n", strings.Join(lines, "\n"))
}

func writeProjectDetail(project *models.Project) error {
	lines := []string{
		fmt.Sprintf("project: #%d", project.Seq),
		fmt.Sprintf("name: %s", project.Name),
	}
	if project.Description != "" {
		lines = append(lines, fmt.Sprintf("description: %s", project.Description))
	}
	lines = append(lines, fmt.Sprintf("created_at: %s", formatTime(project.CreatedAt)))
	return writePlain("%s\n", strings.Join(lines, "\n"))
}

// batchResultPayload is the JSON shape of one batch item; errors come
// out as strings.
type batchResultPayload struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Seq   int64  `json:"seq,omitempty"`
	Error string `json:"error,omitempty"`
}

func writeBatchResults(results []tracker.BatchResult, jsonOutput bool) error {
	if jsonOutput {
		payload := make([]batchResultPayload, 0, len(results))
		for _, result := range results {
			item := batchResultPayload{Index: result.Index, Name: result.Name, Seq: result.Seq}
			if result.Err != nil {
				item.Error = result.Err.Error()
			}
			payload = append(payload, item)
		}
		return writeJSON(payload)
	}

	ok := color.New(color.FgGreen).Sprint("ok")
	failed := color.New(color.FgRed).Sprint("failed")
	for _, result := range results {
		if result.Err != nil {
			if err := writePlain("%s %q: %v\n", failed, result.Name, result.Err); err != nil {
				return err
			}
			continue
		}
		if err := writePlain("%s #%d %s\n", ok, result.Seq, result.Name); err != nil {
			return err
		}
	}
	return nil
}
