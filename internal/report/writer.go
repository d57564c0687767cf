package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Joseda-hg/taskmanager/internal/model"
)

const (
	TaskReportFile   = "task_report.txt"
	UserOverviewFile = "user_overview.txt"
)

// Writer overwrites the two report files in Dir on every call. Writes are
// serialized so concurrent callers never interleave file contents.
type Writer struct {
	Dir string

	mu sync.Mutex
}

func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = "."
	}
	return &Writer{Dir: dir}
}

func (w *Writer) TaskReportPath() string { return filepath.Join(w.Dir, TaskReportFile) }

func (w *Writer) UserOverviewPath() string { return filepath.Join(w.Dir, UserOverviewFile) }

func (w *Writer) Write(tasks model.TaskOverview, users model.UserOverview) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("create report dir %q: %w", w.Dir, err)
	}

	var userBuf bytes.Buffer
	if err := RenderUserOverview(&userBuf, users); err != nil {
		return err
	}
	if err := os.WriteFile(w.UserOverviewPath(), userBuf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", UserOverviewFile, err)
	}

	var taskBuf bytes.Buffer
	if err := RenderTaskOverview(&taskBuf, tasks); err != nil {
		return err
	}
	if err := os.WriteFile(w.TaskReportPath(), taskBuf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", TaskReportFile, err)
	}
	return nil
}
