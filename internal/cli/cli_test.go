package cli

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Joseda-hg/taskmanager/internal/db"
	"github.com/Joseda-hg/taskmanager/internal/report"
	"github.com/Joseda-hg/taskmanager/internal/tracker"
)

func TestLoginRetriesUntilValid(t *testing.T) {
	app, out, _ := newTestApp(t, lines(
		"ghost", "x",
		"admin", "nope",
		"admin", "password",
		"e",
	))

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	output := out.String()
	for _, want := range []string{"User does not exist", "Wrong password", "Login Successful!", "Goodbye!!!"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestAddTaskRepromptsForUserAndDate(t *testing.T) {
	app, out, session := newTestApp(t, lines(
		"admin", "password",
		"a",
		"ghost",
		"admin",
		"T1",
		"first task",
		"01/01/2999",
		"2999-01-01",
		"va",
		"e",
	))

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "User does not exist.") {
		t.Fatalf("expected unknown user message, got:\n%s", output)
	}
	if !strings.Contains(output, "Invalid datetime format") {
		t.Fatalf("expected date format message, got:\n%s", output)
	}
	if !strings.Contains(output, "Task successfully added.") {
		t.Fatalf("expected success message, got:\n%s", output)
	}
	if !strings.Contains(output, "Due Date: \t 2999-01-01") {
		t.Fatalf("expected task listing, got:\n%s", output)
	}

	tasks := session.AllTasks()
	if len(tasks) != 1 || tasks[0].Title != "T1" || tasks[0].Username != "admin" {
		t.Fatalf("unexpected tasks %+v", tasks)
	}
}

func TestRegisterUser(t *testing.T) {
	app, out, session := newTestApp(t, lines(
		"admin", "password",
		"r",
		"admin",
		"sam", "pw", "different",
		"sam", "pw", "pw",
		"e",
	))

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "Username already exists.") {
		t.Fatalf("expected duplicate message, got:\n%s", output)
	}
	if !strings.Contains(output, "Passwords do not match.") {
		t.Fatalf("expected mismatch message, got:\n%s", output)
	}
	if !session.Authenticate("sam", "pw") {
		t.Fatalf("expected sam to be registered")
	}
}

func TestGenerateReportsWritesFiles(t *testing.T) {
	app, out, _ := newTestApp(t, lines("admin", "password", "gr", "e"))

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if !strings.Contains(out.String(), "total_number_of_tasks: 0") {
		t.Fatalf("expected empty task report, got:\n%s", out.String())
	}

	data, err := os.ReadFile(app.reports.TaskReportPath())
	if err != nil {
		t.Fatalf("read task report: %v", err)
	}
	if !strings.HasPrefix(string(data), "total_number_of_tasks;0\n") {
		t.Fatalf("unexpected task report %q", string(data))
	}
	if _, err := os.Stat(app.reports.UserOverviewPath()); err != nil {
		t.Fatalf("expected user overview file: %v", err)
	}
}

func TestDisplayStatisticsRequiresAdmin(t *testing.T) {
	app, out, session := newTestApp(t, lines("sam", "pw", "ds", "e"))
	if _, err := session.Register(context.Background(), "sam", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Only admin can display statistics.") {
		t.Fatalf("expected admin-only message, got:\n%s", out.String())
	}

	app, out, _ = newTestApp(t, lines("admin", "password", "ds", "e"))
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Number of users: \t\t 1") {
		t.Fatalf("expected statistics, got:\n%s", out.String())
	}
}

func TestRunStopsAtEndOfInput(t *testing.T) {
	app, _, _ := newTestApp(t, lines("admin", "password", "unknown"))
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("expected clean exit at end of input, got %v", err)
	}
}

func lines(values ...string) string {
	return strings.Join(values, "\n") + "\n"
}

func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer, *tracker.Session) {
	t.Helper()
	store, err := db.NewTextStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	session, err := tracker.Open(context.Background(), store, tracker.WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	out := &bytes.Buffer{}
	return New(session, report.NewWriter(t.TempDir()), strings.NewReader(input), out), out, session
}
