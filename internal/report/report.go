// Package report computes and renders task statistics.
package report

import (
	"errors"
	"math"
	"time"

	"github.com/Joseda-hg/taskmanager/internal/model"
)

// ErrEmptyCollection is returned when a ratio is requested over no tasks.
var ErrEmptyCollection = errors.New("no tasks to compute percentages over")

type Classification struct {
	Total       int
	Completed   int
	Uncompleted int
	Overdue     int
}

func Classify(tasks []model.Task, today time.Time) Classification {
	c := Classification{Total: len(tasks)}
	for _, task := range tasks {
		if task.Completed {
			c.Completed++
			continue
		}
		c.Uncompleted++
		if task.IsOverdue(today) {
			c.Overdue++
		}
	}
	return c
}

// Percentages returns the incomplete and overdue shares of all tasks.
func (c Classification) Percentages() (incomplete, overdue float64, err error) {
	if c.Total == 0 {
		return 0, 0, ErrEmptyCollection
	}
	return percent(c.Uncompleted, c.Total), percent(c.Overdue, c.Total), nil
}

// TaskOverview never fails: an empty collection reports zero percentages.
func TaskOverview(tasks []model.Task, today time.Time) model.TaskOverview {
	c := Classify(tasks, today)
	overview := model.TaskOverview{
		Total:       c.Total,
		Completed:   c.Completed,
		Uncompleted: c.Uncompleted,
		Overdue:     c.Overdue,
	}
	if incomplete, overdue, err := c.Percentages(); err == nil {
		overview.IncompletePercent = incomplete
		overview.OverduePercent = overdue
	}
	return overview
}

// UserOverview builds one UserStat per username, in the given order. Tasks
// owned by names outside usernames only count towards TotalTasks and
// Unassigned.
func UserOverview(tasks []model.Task, usernames []string, today time.Time) model.UserOverview {
	index := make(map[string]int, len(usernames))
	stats := make([]model.UserStat, len(usernames))
	for i, name := range usernames {
		index[name] = i
		stats[i].Username = name
	}

	overview := model.UserOverview{TotalUsers: len(usernames), TotalTasks: len(tasks)}
	for _, task := range tasks {
		i, ok := index[task.Username]
		if !ok {
			overview.Unassigned++
			continue
		}
		stat := &stats[i]
		stat.Assigned++
		if task.Completed {
			stat.Completed++
			continue
		}
		stat.Incomplete++
		if task.IsOverdue(today) {
			stat.Overdue++
		}
	}

	for i := range stats {
		stat := &stats[i]
		stat.AssignedPercent = percent(stat.Assigned, len(tasks))
		stat.CompletedPercent = percent(stat.Completed, stat.Assigned)
		if stat.Assigned > 0 {
			// Complement of the rounded completed share so the pair sums to 100.
			stat.IncompletePercent = round2(100 - stat.CompletedPercent)
		}
		stat.OverduePercent = percent(stat.Overdue, stat.Assigned)
	}
	overview.Users = stats
	return overview
}

// percent is part/whole*100 rounded to two decimals, or 0 for an empty whole.
func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round2(float64(part) / float64(whole) * 100)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
