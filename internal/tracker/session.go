// Package tracker owns the in-memory task and user collections of a
// session and the operations the front ends run against them.
package tracker

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Joseda-hg/taskmanager/internal/db"
	"github.com/Joseda-hg/taskmanager/internal/model"
	"github.com/Joseda-hg/taskmanager/internal/report"
)

const AdminUsername = "admin"

type TaskInput struct {
	Username    string
	Title       string
	Description string
	DueDate     time.Time
}

type Stats struct {
	Users int `json:"users"`
	Tasks int `json:"tasks"`
}

type Option func(*Session)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// Session is the state of one running tracker. It is safe for use by the
// HTTP server and scheduler alongside the interactive front end.
type Session struct {
	mu      sync.Mutex
	store   db.RecordStore
	tasks   *TaskRepository
	users   *UserDirectory
	now     func() time.Time
	current string
}

// Open loads users and then tasks from store exactly once.
func Open(ctx context.Context, store db.RecordStore, opts ...Option) (*Session, error) {
	users, err := store.LoadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	tasks, err := store.LoadTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	s := &Session{
		store: store,
		tasks: NewTaskRepository(tasks),
		users: NewUserDirectory(users),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Session) Today() time.Time {
	return model.Date(s.now())
}

func (s *Session) Login(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.users.Exists(username) {
		return &AuthError{Username: username, Reason: ReasonUnknownUser}
	}
	if !s.users.Authenticate(username, password) {
		return &AuthError{Username: username, Reason: ReasonWrongPassword}
	}
	s.current = username
	return nil
}

// Authenticate checks credentials without changing the current user.
func (s *Session) Authenticate(username, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users.Authenticate(username, password)
}

func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = ""
}

func (s *Session) CurrentUser() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Session) IsAdmin() bool {
	return s.CurrentUser() == AdminUsername
}

func (s *Session) UserExists(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users.Exists(username)
}

func (s *Session) Usernames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users.Usernames()
}

// Register appends a new user to the store and the directory. The
// directory is left untouched on failure.
func (s *Session) Register(ctx context.Context, username, password string) (model.User, error) {
	if err := checkField("username", username, true); err != nil {
		return model.User{}, err
	}
	if err := checkField("password", password, false); err != nil {
		return model.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.users.Exists(username) {
		return model.User{}, fmt.Errorf("%w: %q", ErrDuplicateUsername, username)
	}

	user := model.User{Username: username, Password: password}
	if err := s.store.AppendUser(ctx, user); err != nil {
		return model.User{}, fmt.Errorf("save user: %w", err)
	}
	if err := s.users.Add(user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// AddTask creates an incomplete task assigned today and persists it.
func (s *Session) AddTask(ctx context.Context, input TaskInput) (model.Task, error) {
	if err := checkField("title", input.Title, true); err != nil {
		return model.Task{}, err
	}
	if err := checkField("description", input.Description, false); err != nil {
		return model.Task{}, err
	}
	if input.DueDate.IsZero() {
		return model.Task{}, fmt.Errorf("%w: due date is required", ErrInvalidDate)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.users.Exists(input.Username) {
		return model.Task{}, fmt.Errorf("%w: %q", ErrUnknownUser, input.Username)
	}

	task := model.Task{
		Number:       s.tasks.NextNumber(),
		Username:     input.Username,
		Title:        input.Title,
		Description:  input.Description,
		DueDate:      model.Date(input.DueDate),
		AssignedDate: s.Today(),
		Completed:    false,
	}
	if err := s.store.AppendTask(ctx, task); err != nil {
		return model.Task{}, fmt.Errorf("save task: %w", err)
	}
	s.tasks.Append(task)
	return task, nil
}

func (s *Session) AllTasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.All()
}

func (s *Session) TasksFor(username string) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.FilterByUser(username)
}

func (s *Session) MyTasks() ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == "" {
		return nil, ErrNotLoggedIn
	}
	return s.tasks.FilterByUser(s.current), nil
}

func (s *Session) Classify() report.Classification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Classify(s.Today())
}

func (s *Session) TaskOverview() model.TaskOverview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return report.TaskOverview(s.tasks.All(), s.Today())
}

func (s *Session) UserOverview() model.UserOverview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return report.UserOverview(s.tasks.All(), s.users.Usernames(), s.Today())
}

// Statistics is restricted to the admin user.
func (s *Session) Statistics() (Stats, error) {
	return s.StatisticsAs(s.CurrentUser())
}

// StatisticsAs runs Statistics on behalf of username instead of the
// logged in user.
func (s *Session) StatisticsAs(username string) (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if username != AdminUsername {
		return Stats{}, fmt.Errorf("%w: statistics are only available to %s", ErrNotPermitted, AdminUsername)
	}
	return Stats{Users: s.users.Len(), Tasks: s.tasks.Len()}, nil
}

// GenerateReports recomputes both reports from one snapshot and overwrites
// the report files before releasing the session.
func (s *Session) GenerateReports(w *report.Writer) (model.TaskOverview, model.UserOverview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.tasks.All()
	today := s.Today()
	tasks := report.TaskOverview(all, today)
	users := report.UserOverview(all, s.users.Usernames(), today)
	if err := w.Write(tasks, users); err != nil {
		return model.TaskOverview{}, model.UserOverview{}, fmt.Errorf("write reports: %w", err)
	}
	return tasks, users, nil
}

// ParseDueDate parses a YYYY-MM-DD date.
func ParseDueDate(value string) (time.Time, error) {
	parsed, err := model.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return parsed, nil
}

func checkField(name, value string, required bool) error {
	if required && strings.TrimSpace(value) == "" {
		return invalidFieldf("%s is required", name)
	}
	if strings.ContainsAny(value, ";\r\n") {
		return invalidFieldf("%s must not contain ';' or line breaks", name)
	}
	return nil
}
