package db

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Joseda-hg/taskmanager/internal/model"
)

const (
	UsersFile = "user.txt"
	TasksFile = "tasks.txt"
)

// TextStore keeps users and tasks in semicolon-delimited files, one record
// per line. Existing lines are never rewritten.
type TextStore struct {
	dir string
}

func NewTextStore(dir string) (*TextStore, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %q: %w", dir, err)
	}
	return &TextStore{dir: dir}, nil
}

func (s *TextStore) UsersPath() string { return filepath.Join(s.dir, UsersFile) }

func (s *TextStore) TasksPath() string { return filepath.Join(s.dir, TasksFile) }

func (s *TextStore) LoadUsers(ctx context.Context) ([]model.User, error) {
	path := s.UsersPath()
	if err := seedFile(path, ""); err != nil {
		return nil, err
	}

	var users []model.User
	err := readLines(ctx, path, func(line string, lineNo int) error {
		user, err := DecodeUser(line)
		if err != nil {
			return atLine(err, path, lineNo)
		}
		users = append(users, user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		if err := appendLine(path, EncodeUser(DefaultUser)); err != nil {
			return nil, fmt.Errorf("seed %s: %w", UsersFile, err)
		}
		users = append(users, DefaultUser)
	}
	return users, nil
}

func (s *TextStore) LoadTasks(ctx context.Context) ([]model.Task, error) {
	path := s.TasksPath()
	if err := seedFile(path, ""); err != nil {
		return nil, err
	}

	var tasks []model.Task
	err := readLines(ctx, path, func(line string, lineNo int) error {
		task, err := DecodeTask(line)
		if err != nil {
			return atLine(err, path, lineNo)
		}
		tasks = append(tasks, task)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TextStore) AppendTask(ctx context.Context, task model.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return appendLine(s.TasksPath(), EncodeTask(task))
}

func (s *TextStore) AppendUser(ctx context.Context, user model.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return appendLine(s.UsersPath(), EncodeUser(user))
}

func (s *TextStore) Close() error { return nil }

func seedFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("seed %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readLines(ctx context.Context, path string, fn func(line string, lineNo int) error) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := fn(line, lineNo); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return nil
}

// appendLine writes line to the end of path, first terminating a previous
// record that was stored without a trailing newline.
func appendLine(path, line string) error {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	var prefix string
	if size := info.Size(); size > 0 {
		last := make([]byte, 1)
		if _, err := file.ReadAt(last, size-1); err != nil && err != io.EOF {
			return err
		}
		if last[0] != '\n' {
			prefix = "\n"
		}
	}

	if _, err := file.WriteString(prefix + line + "\n"); err != nil {
		return fmt.Errorf("append %s: %w", filepath.Base(path), err)
	}
	return nil
}
