package tracker

import (
	"testing"

	"github.com/Joseda-hg/taskmanager/internal/model"
)

func TestTaskRepositoryFilterPreservesOrder(t *testing.T) {
	repo := NewTaskRepository([]model.Task{
		{Number: 4, Username: "sam"},
		{Number: 2, Username: "admin"},
		{Number: 9, Username: "sam"},
	})

	got := repo.FilterByUser("sam")
	if len(got) != 2 || got[0].Number != 4 || got[1].Number != 9 {
		t.Fatalf("unexpected filter result %+v", got)
	}
	if len(repo.FilterByUser("nobody")) != 0 {
		t.Fatalf("expected no tasks for unknown user")
	}
	if repo.NextNumber() != 10 {
		t.Fatalf("expected next number 10, got %d", repo.NextNumber())
	}
}

func TestUserDirectoryKeepsRegistrationOrder(t *testing.T) {
	dir := NewUserDirectory([]model.User{
		{Username: "admin", Password: "password"},
		{Username: "sam", Password: "a"},
		{Username: "admin", Password: "changed"},
	})

	names := dir.Usernames()
	if len(names) != 2 || names[0] != "admin" || names[1] != "sam" {
		t.Fatalf("unexpected order %v", names)
	}
	if !dir.Authenticate("admin", "changed") {
		t.Fatalf("expected latest password to win")
	}
	if dir.Authenticate("sam", "A") {
		t.Fatalf("expected exact password match")
	}
	if err := dir.Add(model.User{Username: "sam"}); err != ErrDuplicateUsername {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}
