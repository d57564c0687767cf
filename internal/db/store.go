package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/Joseda-hg/taskmanager/internal/model"
)

const (
	BackendText   = "text"
	BackendSQLite = "sqlite"
)

// DefaultUser is written to an empty user store.
var DefaultUser = model.User{Username: "admin", Password: "password"}

type RecordStore interface {
	LoadTasks(ctx context.Context) ([]model.Task, error)
	LoadUsers(ctx context.Context) ([]model.User, error)
	AppendTask(ctx context.Context, task model.Task) error
	AppendUser(ctx context.Context, user model.User) error
	Close() error
}

type Options struct {
	Backend string
	DataDir string
	DBPath  string
}

// OpenStore returns the record store selected by opts.Backend.
func OpenStore(opts Options) (RecordStore, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendText:
		return NewTextStore(opts.DataDir)
	case BackendSQLite:
		sqlDB, err := Open(opts.DBPath)
		if err != nil {
			return nil, err
		}
		return NewSQLiteStore(sqlDB), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
