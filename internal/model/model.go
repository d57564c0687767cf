package model

import "time"

const DateLayout = "2006-01-02"

type Task struct {
	Number       int64     `json:"number"`
	Username     string    `json:"username"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	DueDate      time.Time `json:"due_date"`
	AssignedDate time.Time `json:"assigned_date"`
	Completed    bool      `json:"completed"`
}

type User struct {
	Username string `json:"username"`
	Password string `json:"-"`
}

// TaskOverview is the global report over every task.
type TaskOverview struct {
	Total             int     `json:"total_number_of_tasks"`
	Completed         int     `json:"completed_tasks"`
	Uncompleted       int     `json:"uncompleted_tasks"`
	Overdue           int     `json:"overdue_tasks"`
	IncompletePercent float64 `json:"incomplete_tasks_percentage"`
	OverduePercent    float64 `json:"overdue_tasks_percentage"`
}

type UserStat struct {
	Username          string  `json:"username"`
	Assigned          int     `json:"assigned"`
	Completed         int     `json:"completed"`
	Incomplete        int     `json:"incomplete"`
	Overdue           int     `json:"overdue"`
	AssignedPercent   float64 `json:"assigned_percentage"`
	CompletedPercent  float64 `json:"completed_percentage"`
	IncompletePercent float64 `json:"incomplete_percentage"`
	OverduePercent    float64 `json:"overdue_percentage"`
}

// UserOverview is the per-user report. Unassigned counts tasks whose owner
// is not a registered user.
type UserOverview struct {
	TotalUsers int        `json:"total_number_of_users"`
	TotalTasks int        `json:"total_number_of_tasks"`
	Unassigned int        `json:"unassigned_tasks"`
	Users      []UserStat `json:"users"`
}

// Date truncates t to its calendar date, expressed at UTC midnight so it
// compares cleanly with parsed YYYY-MM-DD values.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// IsOverdue reports whether an incomplete task is past its due date.
func (t Task) IsOverdue(today time.Time) bool {
	return !t.Completed && t.DueDate.Before(Date(today))
}
