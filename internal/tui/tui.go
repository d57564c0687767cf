package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/Joseda-hg/taskmanager/internal/model"
	"github.com/Joseda-hg/taskmanager/internal/report"
	"github.com/Joseda-hg/taskmanager/internal/tracker"
	goerrors "github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"
)

const (
	viewHeader   = "header"
	viewFooter   = "footer"
	viewAll      = "all"
	viewMine     = "mine"
	viewDetail   = "detail"
	viewOverview = "overview"
	viewUsers    = "users"
	viewForm     = "form"
	viewHelp     = "help"
)

var focusOrder = []string{viewAll, viewMine, viewDetail, viewOverview, viewUsers}

type UI struct {
	session *tracker.Session
	reports *report.Writer
	gui     *gocui.Gui

	all          []model.Task
	mine         []model.Task
	taskOverview model.TaskOverview
	userOverview model.UserOverview

	selectedAll  int
	selectedMine int
	focus        string
	lastList     string

	form       *formState
	formEditor *formEditor
	helpActive bool
	status     string
}

type formState struct {
	fields []formField
	index  int
}

type formEditor struct {
	ui *UI
}

// Run shows the dashboard for the logged in user of session until quit.
func Run(session *tracker.Session, reports *report.Writer) error {
	gui, err := gocui.NewGui(gocui.NewGuiOpts{OutputMode: gocui.OutputNormal})
	if err != nil {
		return err
	}
	defer gui.Close()

	ui := newUI(session, reports)
	ui.gui = gui
	ui.formEditor = &formEditor{ui: ui}

	gui.SetManagerFunc(ui.layout)
	if err := ui.bindKeys(gui); err != nil {
		return err
	}
	if err := ui.loadTasks(); err != nil {
		return err
	}

	if err := gui.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}

	return nil
}

func newUI(session *tracker.Session, reports *report.Writer) *UI {
	return &UI{
		session:  session,
		reports:  reports,
		focus:    viewAll,
		lastList: viewAll,
	}
}

type binding struct {
	view    string
	key     any
	handler func(*gocui.Gui, *gocui.View) error
}

func (u *UI) bindKeys(gui *gocui.Gui) error {
	bindings := []binding{
		{"", gocui.KeyCtrlC, u.quit},
		{"", 'q', u.quit},
		{"", 'r', u.reload},
		{"", 'g', u.generateReports},
		{"", 'a', u.addTask},
		{"", '?', u.toggleHelp},
		{"", gocui.KeyTab, u.switchFocus},
		{"", '1', u.focusPane(viewAll)},
		{"", '2', u.focusPane(viewMine)},
		{"", '3', u.focusPane(viewDetail)},
		{"", '4', u.focusPane(viewOverview)},
		{"", '5', u.focusPane(viewUsers)},
		{viewForm, gocui.KeyEnter, u.submitForm},
		{viewForm, gocui.KeyTab, u.nextFormField},
		{viewForm, gocui.KeyBacktab, u.prevFormField},
		{viewForm, gocui.KeyArrowDown, u.nextFormField},
		{viewForm, gocui.KeyArrowUp, u.prevFormField},
		{viewForm, gocui.KeyEsc, u.cancelForm},
		{viewHelp, gocui.KeyEsc, u.closeHelp},
		{viewHelp, 'q', u.closeHelp},
		{viewHelp, '?', u.closeHelp},
	}
	for _, name := range focusOrder {
		bindings = append(bindings,
			binding{name, gocui.KeyArrowDown, u.moveDown},
			binding{name, 'j', u.moveDown},
			binding{name, gocui.KeyArrowUp, u.moveUp},
			binding{name, 'k', u.moveUp},
		)
	}

	for _, b := range bindings {
		if err := gui.SetKeybinding(b.view, b.key, gocui.ModNone, b.handler); err != nil {
			return err
		}
	}
	return nil
}

func (u *UI) layout(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	if maxX <= 0 || maxY <= 0 {
		return nil
	}

	headerView, err := gui.SetView(viewHeader, 0, 0, maxX-1, 0, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	headerView.Frame = false
	headerView.Wrap = true
	headerView.FgColor = gocui.ColorDefault
	u.renderHeader(headerView)

	footerY1 := max(maxY-2, 1)
	footerY0 := max(footerY1-2, 1)
	footerView, err := gui.SetView(viewFooter, 0, footerY0, maxX-1, footerY1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	footerView.Frame = false
	footerView.Wrap = true
	footerView.FgColor = gocui.ColorDefault | gocui.AttrDim
	u.renderFooter(footerView)

	bodyTop := 1
	bodyBottom := footerY0 - 1
	if bodyBottom < bodyTop {
		return nil
	}

	l := computeLayout(maxX, bodyBottom-bodyTop+1)
	leftX1 := l.leftWidth - 1
	rightX0 := leftX1 + 1
	if rightX0 >= maxX {
		rightX0 = leftX1
	}
	rightX1 := maxX - 1

	allY1 := bodyTop + l.allHeight - 1
	detailY1 := bodyTop + l.detailHeight - 1
	overviewY1 := detailY1 + l.overviewHeight

	panes := []struct {
		name   string
		title  string
		x0, y0 int
		x1, y1 int
		color  gocui.Attribute
		render func(*gocui.View)
	}{
		{viewAll, "1 All Tasks", 0, bodyTop, leftX1, allY1, gocui.ColorYellow, func(v *gocui.View) {
			u.renderTaskList(v, u.all, u.selectedAll, u.focus == viewAll)
		}},
		{viewMine, "2 My Tasks", 0, allY1 + 1, leftX1, bodyBottom, gocui.ColorGreen, func(v *gocui.View) {
			u.renderTaskList(v, u.mine, u.selectedMine, u.focus == viewMine)
		}},
		{viewDetail, "3 Task", rightX0, bodyTop, rightX1, detailY1, gocui.ColorDefault, u.renderDetail},
		{viewOverview, "4 Task Overview", rightX0, detailY1 + 1, rightX1, overviewY1, gocui.ColorCyan, u.renderOverview},
		{viewUsers, "5 User Overview", rightX0, overviewY1 + 1, rightX1, bodyBottom, gocui.ColorMagenta, u.renderUsers},
	}

	for _, pane := range panes {
		view, err := gui.SetView(pane.name, pane.x0, pane.y0, pane.x1, pane.y1, 0)
		if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		if goerrors.Is(err, gocui.ErrUnknownView) {
			view.Title = pane.title
			view.TitleColor = pane.color
		}
		isList := pane.name == viewAll || pane.name == viewMine
		applyViewStyle(view, u.focus == pane.name, isList)
		pane.render(view)
	}

	_, _ = gui.SetViewOnTop(viewHeader)
	_, _ = gui.SetViewOnTop(viewFooter)

	if u.form != nil {
		if err := u.showForm(gui); err != nil {
			return err
		}
	} else {
		_ = gui.DeleteView(viewForm)
	}

	if u.helpActive {
		if err := u.showHelp(gui); err != nil {
			return err
		}
	} else {
		_ = gui.DeleteView(viewHelp)
	}

	if gui.CurrentView() == nil {
		_, _ = gui.SetCurrentView(u.focus)
	}

	gui.Cursor = u.form != nil

	return nil
}

type layout struct {
	leftWidth      int
	allHeight      int
	mineHeight     int
	detailHeight   int
	overviewHeight int
	usersHeight    int
}

// overviewLines is the six key/value lines plus the frame.
const overviewLines = 8

func computeLayout(width, height int) layout {
	safeWidth := max(width-2, 20)
	safeHeight := max(height, 12)

	leftWidth := safeWidth / 2
	if leftWidth < 30 {
		leftWidth = min(30, safeWidth-10)
	}

	allHeight := max(int(float64(safeHeight)*0.6), 4)
	mineHeight := max(safeHeight-allHeight, 3)

	overviewHeight := min(overviewLines, safeHeight-6)
	detailHeight := max(int(float64(safeHeight)*0.35), 3)
	usersHeight := safeHeight - detailHeight - overviewHeight
	if usersHeight < 3 {
		usersHeight = 3
		detailHeight = safeHeight - overviewHeight - usersHeight
	}

	return layout{
		leftWidth:      leftWidth,
		allHeight:      allHeight,
		mineHeight:     mineHeight,
		detailHeight:   detailHeight,
		overviewHeight: overviewHeight,
		usersHeight:    usersHeight,
	}
}

// loadTasks refreshes every pane from the session.
func (u *UI) loadTasks() error {
	u.all = u.session.AllTasks()
	mine, err := u.session.MyTasks()
	if err != nil {
		return err
	}
	u.mine = mine
	u.taskOverview = u.session.TaskOverview()
	u.userOverview = u.session.UserOverview()

	if u.selectedAll >= len(u.all) {
		u.selectedAll = max(len(u.all)-1, 0)
	}
	if u.selectedMine >= len(u.mine) {
		u.selectedMine = max(len(u.mine)-1, 0)
	}
	return nil
}

func (u *UI) renderHeader(view *gocui.View) {
	view.Clear()
	fmt.Fprintf(view, "User: %s | Today: %s | Tasks: %d | Overdue: %d",
		u.session.CurrentUser(), model.FormatDate(u.session.Today()), u.taskOverview.Total, u.taskOverview.Overdue)
}

func (u *UI) renderFooter(view *gocui.View) {
	view.Clear()
	view.SetOrigin(0, 0)
	view.SetCursor(0, 0)

	fmt.Fprintln(view, "a add task | g generate reports | r reload | tab cycle | 1-5 panes | j/k move | ? help | q quit")
	if u.status != "" {
		fmt.Fprint(view, u.status)
	}
}

func (u *UI) renderTaskList(view *gocui.View, tasks []model.Task, selected int, focused bool) {
	view.Clear()
	today := u.session.Today()
	for i, task := range tasks {
		prefix := " "
		if i == selected {
			if focused {
				prefix = ">"
			} else {
				prefix = "*"
			}
		}
		fmt.Fprintf(view, "%s %s\n", prefix, formatTaskSummary(task, today))
	}
	if focused && len(tasks) > 0 {
		view.SetCursor(0, min(selected, len(tasks)-1))
	}
}

func (u *UI) renderDetail(view *gocui.View) {
	view.Clear()
	view.Wrap = true
	task := u.selectedTask()
	if task == nil {
		fmt.Fprint(view, "No task selected")
		return
	}
	fmt.Fprint(view, formatTaskDetail(*task, u.session.Today()))
}

func (u *UI) renderOverview(view *gocui.View) {
	view.Clear()
	fmt.Fprint(view, formatTaskOverview(u.taskOverview))
}

func (u *UI) renderUsers(view *gocui.View) {
	view.Clear()
	fmt.Fprint(view, formatUserOverview(u.userOverview))
}

func (u *UI) selectedTask() *model.Task {
	switch u.lastList {
	case viewMine:
		if u.selectedMine < len(u.mine) {
			return &u.mine[u.selectedMine]
		}
	default:
		if u.selectedAll < len(u.all) {
			return &u.all[u.selectedAll]
		}
	}
	return nil
}

func (u *UI) switchFocus(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	next := focusOrder[0]
	for i, name := range focusOrder {
		if name == u.focus {
			next = focusOrder[(i+1)%len(focusOrder)]
			break
		}
	}
	return u.setFocus(gui, next)
}

func (u *UI) focusPane(name string) func(*gocui.Gui, *gocui.View) error {
	return func(gui *gocui.Gui, _ *gocui.View) error {
		if u.inputActive() {
			return nil
		}
		return u.setFocus(gui, name)
	}
}

func (u *UI) setFocus(gui *gocui.Gui, name string) error {
	u.focus = name
	if name == viewAll || name == viewMine {
		u.lastList = name
	}
	if gui != nil {
		_, _ = gui.SetCurrentView(name)
	}
	return nil
}

func (u *UI) moveDown(gui *gocui.Gui, view *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	switch u.focus {
	case viewAll:
		if u.selectedAll < len(u.all)-1 {
			u.selectedAll++
		}
	case viewMine:
		if u.selectedMine < len(u.mine)-1 {
			u.selectedMine++
		}
	default:
		return scrollDown(view)
	}
	return nil
}

func (u *UI) moveUp(gui *gocui.Gui, view *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	switch u.focus {
	case viewAll:
		if u.selectedAll > 0 {
			u.selectedAll--
		}
	case viewMine:
		if u.selectedMine > 0 {
			u.selectedMine--
		}
	default:
		return scrollUp(view)
	}
	return nil
}

func scrollDown(view *gocui.View) error {
	if view == nil {
		return nil
	}
	ox, oy := view.Origin()
	if oy < view.LinesHeight()-1 {
		view.SetOrigin(ox, oy+1)
	}
	return nil
}

func scrollUp(view *gocui.View) error {
	if view == nil {
		return nil
	}
	ox, oy := view.Origin()
	if oy > 0 {
		view.SetOrigin(ox, oy-1)
	}
	return nil
}

func (u *UI) reload(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	u.status = ""
	return u.loadTasks()
}

func (u *UI) generateReports(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	if _, _, err := u.session.GenerateReports(u.reports); err != nil {
		u.status = err.Error()
		return nil
	}
	u.status = fmt.Sprintf("reports written to %s", u.reports.Dir)
	return u.loadTasks()
}

func (u *UI) addTask(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	u.form = &formState{fields: buildFormFields(u.session.CurrentUser()), index: fieldTitle}
	return nil
}

func (u *UI) showForm(gui *gocui.Gui) error {
	if u.form == nil {
		return nil
	}

	maxX, maxY := gui.Size()
	width := max(60, maxX/2)
	height := min(8, max(6, maxY/2))
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2

	view, err := gui.SetView(viewForm, x0, y0, x0+width, y0+height, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Wrap = true
	}
	view.Title = "New Task"
	view.Editable = true
	view.KeybindOnEdit = true
	view.Editor = u.formEditor
	u.renderForm(view)
	_, _ = gui.SetCurrentView(viewForm)
	return nil
}

func (u *UI) submitForm(gui *gocui.Gui, _ *gocui.View) error {
	if u.form == nil {
		return nil
	}

	input, err := parseFormFields(u.form.fields)
	if err != nil {
		u.status = err.Error()
		return nil
	}

	if _, err := u.session.AddTask(context.Background(), input); err != nil {
		u.status = err.Error()
		return nil
	}

	u.form = nil
	u.status = "Task successfully added."
	if gui != nil {
		_ = gui.DeleteView(viewForm)
		_, _ = gui.SetCurrentView(u.focus)
	}
	return u.loadTasks()
}

func (u *UI) cancelForm(gui *gocui.Gui, _ *gocui.View) error {
	u.form = nil
	_ = gui.DeleteView(viewForm)
	_, _ = gui.SetCurrentView(u.focus)
	return nil
}

func (u *UI) nextFormField(gui *gocui.Gui, view *gocui.View) error {
	if u.form == nil {
		return nil
	}
	if u.form.index < len(u.form.fields)-1 {
		u.form.index++
	}
	u.renderForm(view)
	return nil
}

func (u *UI) prevFormField(gui *gocui.Gui, view *gocui.View) error {
	if u.form == nil {
		return nil
	}
	if u.form.index > 0 {
		u.form.index--
	}
	u.renderForm(view)
	return nil
}

func (u *UI) renderForm(view *gocui.View) {
	if u.form == nil || view == nil {
		return
	}
	view.Clear()
	for index, field := range u.form.fields {
		prefix := "  "
		if index == u.form.index {
			prefix = "> "
		}
		fmt.Fprintf(view, "%s%s: %s\n", prefix, field.Label, field.Value)
	}
	current := u.form.fields[u.form.index]
	cursorX := len([]rune(current.Label+": ")) + len([]rune(current.Value)) + 2
	view.SetCursor(cursorX, u.form.index)
}

func (e *formEditor) Edit(view *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	ui := e.ui
	if ui == nil || ui.form == nil || view == nil {
		return false
	}
	field := &ui.form.fields[ui.form.index]

	switch key {
	case gocui.KeyBackspace, gocui.KeyBackspace2:
		runes := []rune(field.Value)
		if len(runes) > 0 {
			field.Value = string(runes[:len(runes)-1])
		}
	case gocui.KeySpace:
		field.Value += " "
	case gocui.KeyCtrlU:
		field.Value = ""
	}

	// ';' is the record separator and cannot be stored.
	if ch != 0 && ch != '\n' && ch != '\r' && ch != ';' && mod == 0 {
		field.Value += string(ch)
	}

	ui.renderForm(view)
	return true
}

func (u *UI) toggleHelp(gui *gocui.Gui, _ *gocui.View) error {
	if u.form != nil {
		return nil
	}
	u.helpActive = !u.helpActive
	return nil
}

func (u *UI) closeHelp(gui *gocui.Gui, _ *gocui.View) error {
	u.helpActive = false
	_ = gui.DeleteView(viewHelp)
	_, _ = gui.SetCurrentView(u.focus)
	return nil
}

func (u *UI) showHelp(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	width := max(60, maxX/2)
	height := 12
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2

	view, err := gui.SetView(viewHelp, x0, y0, x0+width, y0+height, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Title = "Help"
		view.Wrap = true
	}
	view.Clear()
	fmt.Fprint(view, helpText())
	_, _ = gui.SetCurrentView(viewHelp)
	return nil
}

func (u *UI) inputActive() bool {
	return u.form != nil
}

func (u *UI) quit(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	return gocui.ErrQuit
}

func helpText() string {
	return strings.Join([]string{
		"Navigation:",
		"  Tab cycle panes | 1 All | 2 Mine | 3 Task | 4 Task Overview | 5 User Overview",
		"  j/k or arrows move selection or scroll",
		"",
		"Actions:",
		"  a add task | enter save (form) | tab next field | esc cancel",
		"  g generate task_report.txt and user_overview.txt",
		"  r reload",
		"",
		"Other:",
		"  ? help | esc/q close help | q quit",
	}, "\n")
}

func applyViewStyle(view *gocui.View, focused bool, highlight bool) {
	view.Frame = true
	view.Highlight = focused && highlight
	view.HighlightInactive = false
	view.SelBgColor = gocui.ColorBlue
	view.SelFgColor = gocui.ColorBlack
	view.InactiveViewSelBgColor = gocui.ColorDefault
	if focused {
		view.FrameColor = gocui.ColorCyan
		view.TitleColor = gocui.ColorCyan
	} else {
		view.FrameColor = gocui.ColorDefault
	}
}
