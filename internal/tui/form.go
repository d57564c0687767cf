package tui

import (
	"fmt"
	"strings"

	"github.com/Joseda-hg/taskmanager/internal/tracker"
)

type formField struct {
	Label string
	Value string
}

const (
	fieldAssignee = iota
	fieldTitle
	fieldDescription
	fieldDue
)

func buildFormFields(assignee string) []formField {
	fields := []formField{
		{Label: "Assigned to"},
		{Label: "Title"},
		{Label: "Description"},
		{Label: "Due (YYYY-MM-DD)"},
	}
	fields[fieldAssignee].Value = assignee
	return fields
}

func parseFormFields(fields []formField) (tracker.TaskInput, error) {
	due := strings.TrimSpace(fields[fieldDue].Value)
	if due == "" {
		return tracker.TaskInput{}, fmt.Errorf("due date is required")
	}
	dueDate, err := tracker.ParseDueDate(due)
	if err != nil {
		return tracker.TaskInput{}, fmt.Errorf("invalid due date")
	}

	return tracker.TaskInput{
		Username:    strings.TrimSpace(fields[fieldAssignee].Value),
		Title:       strings.TrimSpace(fields[fieldTitle].Value),
		Description: strings.TrimSpace(fields[fieldDescription].Value),
		DueDate:     dueDate,
	}, nil
}
