package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Joseda-hg/taskmanager/internal/model"
)

// SQLiteStore keeps the same records as TextStore in a SQLite database.
type SQLiteStore struct {
	DB *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{DB: db}
}

func (s *SQLiteStore) LoadUsers(ctx context.Context) ([]model.User, error) {
	if err := s.seedDefaultUser(ctx); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, "SELECT username, password FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.Username, &user.Password); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *SQLiteStore) LoadTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, number, username, title, description, due_date, assigned_date, completed
FROM tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var (
			rowID     int64
			task      model.Task
			due       string
			assigned  string
			completed bool
		)
		if err := rows.Scan(&rowID, &task.Number, &task.Username, &task.Title, &task.Description, &due, &assigned, &completed); err != nil {
			return nil, err
		}
		if task.DueDate, err = model.ParseDate(due); err != nil {
			return nil, &RecordError{Path: "tasks", Line: int(rowID), Msg: fmt.Sprintf("invalid due date %q", due)}
		}
		if task.AssignedDate, err = model.ParseDate(assigned); err != nil {
			return nil, &RecordError{Path: "tasks", Line: int(rowID), Msg: fmt.Sprintf("invalid assigned date %q", assigned)}
		}
		task.Completed = completed
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (s *SQLiteStore) AppendTask(ctx context.Context, task model.Task) error {
	_, err := s.DB.ExecContext(ctx, `INSERT INTO tasks (number, username, title, description, due_date, assigned_date, completed)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		task.Number,
		task.Username,
		task.Title,
		task.Description,
		model.FormatDate(task.DueDate),
		model.FormatDate(task.AssignedDate),
		task.Completed,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AppendUser(ctx context.Context, user model.User) error {
	if _, err := s.DB.ExecContext(ctx, "INSERT INTO users (username, password) VALUES (?, ?)", user.Username, user.Password); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.DB.Close()
}

func (s *SQLiteStore) seedDefaultUser(ctx context.Context) error {
	var count int
	if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}
	return s.AppendUser(ctx, DefaultUser)
}
