package tracker

import (
	"time"

	"github.com/Joseda-hg/taskmanager/internal/model"
	"github.com/Joseda-hg/taskmanager/internal/report"
)

// TaskRepository holds tasks in insertion order.
type TaskRepository struct {
	tasks  []model.Task
	lastID int64
}

// NewTaskRepository seeds the number counter from the highest loaded
// number so appended tasks never reuse one.
func NewTaskRepository(tasks []model.Task) *TaskRepository {
	repo := &TaskRepository{tasks: append([]model.Task(nil), tasks...)}
	for _, task := range tasks {
		if task.Number > repo.lastID {
			repo.lastID = task.Number
		}
	}
	return repo
}

func (r *TaskRepository) NextNumber() int64 {
	return r.lastID + 1
}

// Append stores task, which must carry the number from NextNumber.
func (r *TaskRepository) Append(task model.Task) {
	r.tasks = append(r.tasks, task)
	if task.Number > r.lastID {
		r.lastID = task.Number
	}
}

func (r *TaskRepository) All() []model.Task {
	return append([]model.Task(nil), r.tasks...)
}

func (r *TaskRepository) Len() int {
	return len(r.tasks)
}

func (r *TaskRepository) FilterByUser(username string) []model.Task {
	var result []model.Task
	for _, task := range r.tasks {
		if task.Username == username {
			result = append(result, task)
		}
	}
	return result
}

func (r *TaskRepository) Classify(today time.Time) report.Classification {
	return report.Classify(r.tasks, today)
}
