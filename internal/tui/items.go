package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Joseda-hg/taskmanager/internal/model"
	"github.com/Joseda-hg/taskmanager/internal/report"
)

func taskState(task model.Task, today time.Time) string {
	switch {
	case task.Completed:
		return "done"
	case task.IsOverdue(today):
		return "overdue"
	default:
		return "open"
	}
}

func formatTaskSummary(task model.Task, today time.Time) string {
	return fmt.Sprintf("#%d %s | %s | due %s | %s", task.Number, task.Title, task.Username, model.FormatDate(task.DueDate), taskState(task, today))
}

func formatTaskDetail(task model.Task, today time.Time) string {
	return strings.Join([]string{
		fmt.Sprintf("Task number:   %d", task.Number),
		fmt.Sprintf("Task:          %s", task.Title),
		fmt.Sprintf("Assigned to:   %s", task.Username),
		fmt.Sprintf("Date Assigned: %s", model.FormatDate(task.AssignedDate)),
		fmt.Sprintf("Due Date:      %s", model.FormatDate(task.DueDate)),
		fmt.Sprintf("State:         %s", taskState(task, today)),
		"",
		task.Description,
	}, "\n")
}

func formatTaskOverview(overview model.TaskOverview) string {
	return report.FormatTaskOverview(overview, ": ")
}

func formatUserOverview(overview model.UserOverview) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Users: %d | Tasks: %d", overview.TotalUsers, overview.TotalTasks)
	if overview.Unassigned > 0 {
		fmt.Fprintf(&builder, " | Unassigned: %d", overview.Unassigned)
	}
	builder.WriteString("\n")
	for _, stat := range overview.Users {
		fmt.Fprintf(&builder, "%-12s %3d assigned %6.2f%% | done %6.2f%% | open %6.2f%% | overdue %6.2f%%\n",
			stat.Username, stat.Assigned, stat.AssignedPercent, stat.CompletedPercent, stat.IncompletePercent, stat.OverduePercent)
	}
	return builder.String()
}
