// Package cli is the line-based login prompt and menu. All re-prompting for
// invalid input happens here; the tracker only returns errors.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Joseda-hg/taskmanager/internal/model"
	"github.com/Joseda-hg/taskmanager/internal/report"
	"github.com/Joseda-hg/taskmanager/internal/tracker"
)

// ErrInputClosed is returned when input ends before a prompt is answered.
var ErrInputClosed = errors.New("input closed")

const menuText = `
r - Registering a user
a - Adding a task
va - View all tasks
vm - View my task
gr - Generate Reports
ds - Display statistics
e - Exit
`

type App struct {
	session *tracker.Session
	reports *report.Writer
	in      *bufio.Scanner
	out     io.Writer
}

func New(session *tracker.Session, reports *report.Writer, in io.Reader, out io.Writer) *App {
	return &App{
		session: session,
		reports: reports,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run logs in and then serves the menu until exit or end of input.
func (a *App) Run(ctx context.Context) error {
	if err := a.Login(); err != nil {
		if errors.Is(err, ErrInputClosed) {
			return nil
		}
		return err
	}
	err := a.Menu(ctx)
	if errors.Is(err, ErrInputClosed) {
		return nil
	}
	return err
}

// Login prompts until valid credentials are entered.
func (a *App) Login() error {
	for {
		fmt.Fprintln(a.out, "LOGIN")
		username, err := a.prompt("Username: ")
		if err != nil {
			return err
		}
		password, err := a.prompt("Password: ")
		if err != nil {
			return err
		}

		err = a.session.Login(username, password)
		var authErr *tracker.AuthError
		switch {
		case err == nil:
			fmt.Fprintln(a.out, "Login Successful!")
			return nil
		case errors.As(err, &authErr) && authErr.Reason == tracker.ReasonUnknownUser:
			fmt.Fprintln(a.out, "User does not exist")
		case errors.As(err, &authErr):
			fmt.Fprintln(a.out, "Wrong password")
		default:
			return err
		}
	}
}

func (a *App) Menu(ctx context.Context) error {
	for {
		fmt.Fprint(a.out, menuText)
		choice, err := a.prompt("Please choose an option from above: ")
		if err != nil {
			return err
		}

		switch strings.ToLower(strings.TrimSpace(choice)) {
		case "r":
			err = a.registerUser(ctx)
		case "a":
			err = a.addTask(ctx)
		case "va":
			a.viewAll()
		case "vm":
			err = a.viewMine()
		case "gr":
			err = a.generateReports()
		case "ds":
			err = a.displayStatistics()
		case "e":
			fmt.Fprintln(a.out, "Goodbye!!!")
			return nil
		default:
			fmt.Fprintln(a.out, "You have made a wrong choice, Please Try again")
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) registerUser(ctx context.Context) error {
	fmt.Fprintln(a.out, "\nRegister a New User")
	for {
		username, err := a.prompt("Enter new username: ")
		if err != nil {
			return err
		}
		username = strings.TrimSpace(username)
		if a.session.UserExists(username) {
			fmt.Fprintln(a.out, "Username already exists. Please try a different username.")
			continue
		}

		password, err := a.prompt("Enter new password: ")
		if err != nil {
			return err
		}
		confirm, err := a.prompt("Confirm new password: ")
		if err != nil {
			return err
		}
		password = strings.TrimSpace(password)
		if password != strings.TrimSpace(confirm) {
			fmt.Fprintln(a.out, "Passwords do not match. Please try again.")
			continue
		}

		_, err = a.session.Register(ctx, username, password)
		switch {
		case err == nil:
			fmt.Fprintln(a.out, "New user added successfully.")
			return nil
		case errors.Is(err, tracker.ErrDuplicateUsername), errors.Is(err, tracker.ErrInvalidField):
			fmt.Fprintln(a.out, err)
		default:
			return err
		}
	}
}

func (a *App) addTask(ctx context.Context) error {
	var input tracker.TaskInput
	for {
		username, err := a.prompt("Name of person assigned to task: ")
		if err != nil {
			return err
		}
		if a.session.UserExists(username) {
			input.Username = username
			break
		}
		fmt.Fprintln(a.out, "User does not exist.")
	}

	var err error
	if input.Title, err = a.prompt("Title of Task: "); err != nil {
		return err
	}
	if input.Description, err = a.prompt("Description of Task: "); err != nil {
		return err
	}

	for {
		value, err := a.prompt("Due date of task (YYYY-MM-DD): ")
		if err != nil {
			return err
		}
		due, err := tracker.ParseDueDate(value)
		if err == nil {
			input.DueDate = due
			break
		}
		fmt.Fprintln(a.out, "Invalid datetime format. Please use the format specified")
	}

	_, err = a.session.AddTask(ctx, input)
	switch {
	case err == nil:
		fmt.Fprintln(a.out, "Task successfully added.")
	case errors.Is(err, tracker.ErrInvalidField), errors.Is(err, tracker.ErrUnknownUser):
		fmt.Fprintln(a.out, err)
	default:
		return err
	}
	return nil
}

func (a *App) viewAll() {
	for _, task := range a.session.AllTasks() {
		fmt.Fprint(a.out, "\n\n\n")
		fmt.Fprintln(a.out, FormatTask(task))
	}
}

func (a *App) viewMine() error {
	tasks, err := a.session.MyTasks()
	if err != nil {
		return err
	}
	for _, task := range tasks {
		fmt.Fprintln(a.out, "\n-----------TASK-------------")
		fmt.Fprintln(a.out, FormatTask(task))
	}
	return nil
}

func (a *App) generateReports() error {
	tasks, users, err := a.session.GenerateReports(a.reports)
	if err != nil {
		return err
	}
	for _, stat := range users.Users {
		fmt.Fprintln(a.out, report.FormatUserStat(stat))
	}
	fmt.Fprintln(a.out, "Task Report:")
	fmt.Fprint(a.out, report.FormatTaskOverview(tasks, ": "))
	fmt.Fprintln(a.out, "Task report written successfully!")
	return nil
}

func (a *App) displayStatistics() error {
	stats, err := a.session.Statistics()
	if errors.Is(err, tracker.ErrNotPermitted) {
		fmt.Fprintln(a.out, "Only admin can display statistics.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "-----------------------------------")
	fmt.Fprintf(a.out, "Number of users: \t\t %d\n", stats.Users)
	fmt.Fprintf(a.out, "Number of tasks: \t\t %d\n", stats.Tasks)
	fmt.Fprintln(a.out, "-----------------------------------")
	return nil
}

// FormatTask renders the task block shown by the view commands.
func FormatTask(task model.Task) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Task number: \t\t %d\n", task.Number)
	fmt.Fprintf(&builder, "Task: \t\t %s\n", task.Title)
	fmt.Fprintf(&builder, "Assigned to: \t %s\n", task.Username)
	fmt.Fprintf(&builder, "Date Assigned: \t %s\n", model.FormatDate(task.AssignedDate))
	fmt.Fprintf(&builder, "Due Date: \t %s\n", model.FormatDate(task.DueDate))
	fmt.Fprintf(&builder, "Task Description: \n %s\n", task.Description)
	return builder.String()
}

func (a *App) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			return "", err
		}
		return "", ErrInputClosed
	}
	return strings.TrimRight(a.in.Text(), "\r"), nil
}
