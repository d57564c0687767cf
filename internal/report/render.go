package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Joseda-hg/taskmanager/internal/model"
)

// RenderTaskOverview writes the overview as key;value lines.
func RenderTaskOverview(w io.Writer, overview model.TaskOverview) error {
	_, err := io.WriteString(w, FormatTaskOverview(overview, ";"))
	return err
}

// FormatTaskOverview joins each key and value with sep, one pair per line.
func FormatTaskOverview(overview model.TaskOverview, sep string) string {
	pairs := []struct {
		key   string
		value string
	}{
		{"total_number_of_tasks", fmt.Sprintf("%d", overview.Total)},
		{"completed_tasks", fmt.Sprintf("%d", overview.Completed)},
		{"uncompleted_tasks", fmt.Sprintf("%d", overview.Uncompleted)},
		{"overdue_tasks", fmt.Sprintf("%d", overview.Overdue)},
		{"incomplete_tasks_percentage", fmt.Sprintf("%.2f", overview.IncompletePercent)},
		{"overdue_tasks_percentage", fmt.Sprintf("%.2f", overview.OverduePercent)},
	}

	var builder strings.Builder
	for _, pair := range pairs {
		builder.WriteString(pair.key)
		builder.WriteString(sep)
		builder.WriteString(pair.value)
		builder.WriteString("\n")
	}
	return builder.String()
}

func RenderUserOverview(w io.Writer, overview model.UserOverview) error {
	if _, err := fmt.Fprintf(w, "Total number of users: %d\nTotal number of tasks: %d\n", overview.TotalUsers, overview.TotalTasks); err != nil {
		return err
	}
	for _, stat := range overview.Users {
		if _, err := io.WriteString(w, FormatUserStat(stat)); err != nil {
			return err
		}
	}
	return nil
}

func FormatUserStat(stat model.UserStat) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "\nUser: %s\n", stat.Username)
	fmt.Fprintf(&builder, "Total tasks assigned: %d\n", stat.Assigned)
	fmt.Fprintf(&builder, "Percentage of total tasks assigned: %.2f%%\n", stat.AssignedPercent)
	fmt.Fprintf(&builder, "Percentage of tasks completed: %.2f%%\n", stat.CompletedPercent)
	fmt.Fprintf(&builder, "Percentage of tasks still to be completed: %.2f%%\n", stat.IncompletePercent)
	fmt.Fprintf(&builder, "Percentage of overdue tasks not yet completed: %.2f%%\n", stat.OverduePercent)
	return builder.String()
}
