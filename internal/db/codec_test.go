package db

import (
	"errors"
	"testing"
	"time"

	"github.com/Joseda-hg/taskmanager/internal/model"
)

func TestTaskLineRoundTrip(t *testing.T) {
	for _, completed := range []bool{false, true} {
		task := model.Task{
			Number:       7,
			Username:     "admin",
			Title:        "Write report",
			Description:  "Quarterly numbers",
			DueDate:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			AssignedDate: time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC),
			Completed:    completed,
		}

		decoded, err := DecodeTask(EncodeTask(task))
		if err != nil {
			t.Fatalf("decode task: %v", err)
		}
		if decoded != task {
			t.Fatalf("expected %+v, got %+v", task, decoded)
		}
	}
}

func TestEncodeTaskLayout(t *testing.T) {
	task := model.Task{
		Number:       1,
		Username:     "sam",
		Title:        "T1",
		Description:  "first",
		DueDate:      time.Date(2999, 1, 1, 0, 0, 0, 0, time.UTC),
		AssignedDate: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
	}

	want := "1;sam;T1;first;2999-01-01;2024-05-06;No"
	if got := EncodeTask(task); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestDecodeTaskRejectsMalformedLines(t *testing.T) {
	lines := map[string]string{
		"too few fields":  "1;admin;title",
		"bad number":      "x;admin;t;d;2024-01-01;2024-01-01;No",
		"bad due date":    "1;admin;t;d;01/02/2024;2024-01-01;No",
		"bad assigned":    "1;admin;t;d;2024-01-01;yesterday;No",
		"bad completion":  "1;admin;t;d;2024-01-01;2024-01-01;maybe",
		"too many fields": "1;admin;t;d;2024-01-01;2024-01-01;No;extra",
	}

	for name, line := range lines {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeTask(line)
			if !errors.Is(err, ErrMalformedRecord) {
				t.Fatalf("expected ErrMalformedRecord, got %v", err)
			}
		})
	}
}

func TestDecodeUser(t *testing.T) {
	user, err := DecodeUser("admin;password")
	if err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if user.Username != "admin" || user.Password != "password" {
		t.Fatalf("unexpected user %+v", user)
	}

	if _, err := DecodeUser("admin"); !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord for missing delimiter, got %v", err)
	}
	if _, err := DecodeUser(";password"); !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord for empty username, got %v", err)
	}
}
