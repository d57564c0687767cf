package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Joseda-hg/taskmanager/internal/model"
	"github.com/Joseda-hg/taskmanager/internal/report"
	"github.com/Joseda-hg/taskmanager/internal/tracker"
)

const userKey = "user"

type Server struct {
	session *tracker.Session
	reports *report.Writer
}

type taskPayload struct {
	Number       int64  `json:"number"`
	Username     string `json:"username"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	DueDate      string `json:"due_date"`
	AssignedDate string `json:"assigned_date"`
	Completed    bool   `json:"completed"`
}

type createTaskRequest struct {
	Username    string `json:"username"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewServer(session *tracker.Session, reports *report.Writer) *Server {
	return &Server{session: session, reports: reports}
}

// Handler builds the echo router. Every route requires basic auth against
// the user directory.
func (s *Server) Handler() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	api := e.Group("/api")
	api.Use(middleware.BasicAuth(s.authenticate))

	api.GET("/tasks", s.listTasks)
	api.POST("/tasks", s.createTask)
	api.GET("/tasks/mine", s.listMyTasks)
	api.GET("/tasks/:number", s.getTask)
	api.GET("/reports/tasks", s.taskOverview)
	api.GET("/reports/users", s.userOverview)
	api.POST("/reports", s.generateReports)

	adminOnly := requireUser(tracker.AdminUsername)
	api.POST("/users", s.createUser, adminOnly)
	api.GET("/stats", s.stats, adminOnly)

	return e
}

func (s *Server) authenticate(username, password string, c echo.Context) (bool, error) {
	if !s.session.Authenticate(username, password) {
		return false, nil
	}
	c.Set(userKey, username)
	return true, nil
}

func requireUser(username string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if currentUser(c) != username {
				return c.JSON(http.StatusForbidden, echo.Map{"error": tracker.ErrNotPermitted.Error()})
			}
			return next(c)
		}
	}
}

func currentUser(c echo.Context) string {
	name, _ := c.Get(userKey).(string)
	return name
}

func (s *Server) listTasks(c echo.Context) error {
	tasks := s.session.AllTasks()
	if owner := strings.TrimSpace(c.QueryParam("user")); owner != "" {
		tasks = s.session.TasksFor(owner)
	}
	return c.JSON(http.StatusOK, toPayloads(tasks))
}

func (s *Server) listMyTasks(c echo.Context) error {
	return c.JSON(http.StatusOK, toPayloads(s.session.TasksFor(currentUser(c))))
}

func (s *Server) getTask(c echo.Context) error {
	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid task number"})
	}
	for _, task := range s.session.AllTasks() {
		if task.Number == number {
			return c.JSON(http.StatusOK, toPayload(task))
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
}

func (s *Server) createTask(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if req.Username == "" {
		req.Username = currentUser(c)
	}

	due, err := tracker.ParseDueDate(req.DueDate)
	if err != nil {
		return writeError(c, err)
	}

	task, err := s.session.AddTask(c.Request().Context(), tracker.TaskInput{
		Username:    req.Username,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toPayload(task))
}

func (s *Server) createUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	user, err := s.session.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (s *Server) taskOverview(c echo.Context) error {
	return c.JSON(http.StatusOK, s.session.TaskOverview())
}

func (s *Server) userOverview(c echo.Context) error {
	return c.JSON(http.StatusOK, s.session.UserOverview())
}

func (s *Server) generateReports(c echo.Context) error {
	tasks, users, err := s.session.GenerateReports(s.reports)
	if err != nil {
		return writeError(c, err)
	}

	payload := struct {
		Tasks model.TaskOverview `json:"tasks"`
		Users model.UserOverview `json:"users"`
	}{Tasks: tasks, Users: users}
	return c.JSON(http.StatusOK, payload)
}

func (s *Server) stats(c echo.Context) error {
	stats, err := s.session.StatisticsAs(currentUser(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func toPayloads(tasks []model.Task) []taskPayload {
	result := make([]taskPayload, 0, len(tasks))
	for _, task := range tasks {
		result = append(result, toPayload(task))
	}
	return result
}

func toPayload(task model.Task) taskPayload {
	return taskPayload{
		Number:       task.Number,
		Username:     task.Username,
		Title:        task.Title,
		Description:  task.Description,
		DueDate:      model.FormatDate(task.DueDate),
		AssignedDate: model.FormatDate(task.AssignedDate),
		Completed:    task.Completed,
	}
}

func writeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, tracker.ErrUnknownUser),
		errors.Is(err, tracker.ErrInvalidField),
		errors.Is(err, tracker.ErrInvalidDate):
		status = http.StatusBadRequest
	case errors.Is(err, tracker.ErrDuplicateUsername):
		status = http.StatusConflict
	case errors.Is(err, tracker.ErrNotPermitted):
		status = http.StatusForbidden
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}
