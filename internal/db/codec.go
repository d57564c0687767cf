package db

import (
	"strconv"
	"strings"

	"github.com/Joseda-hg/taskmanager/internal/model"
)

const (
	fieldSeparator = ";"
	taskFields     = 7
	userFields     = 2
	completedYes   = "Yes"
	completedNo    = "No"
)

// EncodeTask renders a task as number;username;title;description;due;assigned;Yes|No.
func EncodeTask(task model.Task) string {
	return strings.Join([]string{
		strconv.FormatInt(task.Number, 10),
		task.Username,
		task.Title,
		task.Description,
		model.FormatDate(task.DueDate),
		model.FormatDate(task.AssignedDate),
		formatCompleted(task.Completed),
	}, fieldSeparator)
}

func DecodeTask(line string) (model.Task, error) {
	parts := strings.Split(line, fieldSeparator)
	if len(parts) != taskFields {
		return model.Task{}, malformedf("task has %d fields, want %d", len(parts), taskFields)
	}

	number, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return model.Task{}, malformedf("invalid task number %q", parts[0])
	}
	due, err := model.ParseDate(strings.TrimSpace(parts[4]))
	if err != nil {
		return model.Task{}, malformedf("invalid due date %q", parts[4])
	}
	assigned, err := model.ParseDate(strings.TrimSpace(parts[5]))
	if err != nil {
		return model.Task{}, malformedf("invalid assigned date %q", parts[5])
	}
	completed, err := parseCompleted(strings.TrimSpace(parts[6]))
	if err != nil {
		return model.Task{}, err
	}

	return model.Task{
		Number:       number,
		Username:     parts[1],
		Title:        parts[2],
		Description:  parts[3],
		DueDate:      due,
		AssignedDate: assigned,
		Completed:    completed,
	}, nil
}

func EncodeUser(user model.User) string {
	return user.Username + fieldSeparator + user.Password
}

func DecodeUser(line string) (model.User, error) {
	parts := strings.Split(line, fieldSeparator)
	if len(parts) != userFields {
		return model.User{}, malformedf("user has %d fields, want %d", len(parts), userFields)
	}
	if parts[0] == "" {
		return model.User{}, malformedf("empty username")
	}
	return model.User{Username: parts[0], Password: parts[1]}, nil
}

func formatCompleted(completed bool) string {
	if completed {
		return completedYes
	}
	return completedNo
}

func parseCompleted(value string) (bool, error) {
	switch value {
	case completedYes:
		return true, nil
	case completedNo:
		return false, nil
	default:
		return false, malformedf("invalid completion flag %q", value)
	}
}
