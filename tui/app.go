// ABOUTME: Top-level Bubble Tea AppModel: a lesson list beside a scrollable lesson viewport and a status bar.
// ABOUTME: Implements tea.Model (Init, Update, View) and routes keys to whichever panel has focus.
package tui

import (
	"fmt"
	"strings"

	"github.com/2389-research/lessonview/lesson"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FocusTarget indicates which panel currently has keyboard focus.
type FocusTarget int

const (
	FocusList FocusTarget = iota
	FocusContent
)

func (f FocusTarget) String() string {
	if f == FocusContent {
		return "treść"
	}
	return "lista"
}

// listWidth is the outer width of the lesson list panel.
const listWidth = 24

// Options configures the AppModel.
type Options struct {
	// Lesson is opened first when it exists; otherwise the first lesson is.
	Lesson lesson.ID
	// Style is a glamour standard style name; empty picks one automatically.
	Style string
}

type lessonItem struct{ id lesson.ID }

func (i lessonItem) Title() string       { return lesson.Label(i.id) }
func (i lessonItem) Description() string { return "" }
func (i lessonItem) FilterValue() string { return lesson.Label(i.id) }

// AppModel is the top-level Bubble Tea model.
type AppModel struct {
	list      list.Model
	content   viewport.Model
	statusBar StatusBarModel
	renderer  *LessonRenderer

	lessons []lesson.ID
	current lesson.ID
	err     error // last render failure, shown in place of the lesson

	focus  FocusTarget
	width  int
	height int
}

// NewAppModel creates an AppModel browsing lessons through viewer.
func NewAppModel(viewer *lesson.Viewer, lessons []lesson.ID, opts Options) AppModel {
	items := make([]list.Item, 0, len(lessons))
	for _, id := range lessons {
		items = append(items, lessonItem{id: id})
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(items, delegate, listWidth-2, 20)
	l.Title = "Lekcje"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	m := AppModel{
		list:      l,
		content:   viewport.New(80, 20),
		statusBar: NewStatusBarModel(len(lessons)),
		renderer:  NewLessonRenderer(viewer, opts.Style),
		lessons:   lessons,
		focus:     FocusList,
	}

	if id, ok := lesson.ResolveSelection("", lessons, opts.Lesson); ok {
		m.current = id
		m.list.Select(m.indexOf(id))
		m.statusBar.SetLesson(lesson.Label(id), m.indexOf(id)+1)
	}
	return m
}

// Current returns the lesson shown in the viewport.
func (m AppModel) Current() lesson.ID {
	return m.current
}

// Init implements tea.Model. Content is rendered once the window size is known.
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.width < 40 || m.height < 10 {
		return fmt.Sprintf("Terminal too small (%dx%d). Minimum: 40x10.", m.width, m.height)
	}

	panelHeight := m.height - 1
	left := panelStyle(m.focus == FocusList).
		Width(listWidth - 2).
		Height(panelHeight - 2).
		Render(m.list.View())

	var body string
	switch {
	case len(m.lessons) == 0:
		body = "Brak lekcji do wyświetlenia."
	case m.err != nil:
		body = ErrorStyle.Render("Błąd: " + m.err.Error())
	default:
		body = m.content.View()
	}
	right := panelStyle(m.focus == FocusContent).
		Width(m.width - listWidth - 2).
		Height(panelHeight - 2).
		Render(body)

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")
	b.WriteString(m.statusBar.View())
	return b.String()
}

func (m AppModel) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	// Borders take two columns and two rows on each panel; the status bar one row.
	innerHeight := max(msg.Height-1-2, 1)
	m.list.SetSize(listWidth-2, innerHeight)
	m.content.Width = max(msg.Width-listWidth-2, 1)
	m.content.Height = innerHeight
	m.statusBar.SetWidth(msg.Width)

	m.open(m.current)
	return m, nil
}

func (m AppModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.focus == FocusList {
			m.focus = FocusContent
		} else {
			m.focus = FocusList
		}
		m.statusBar.SetFocus(m.focus)
		return m, nil
	case "enter":
		if m.focus == FocusList {
			if item, ok := m.list.SelectedItem().(lessonItem); ok {
				m.open(item.id)
				m.focus = FocusContent
				m.statusBar.SetFocus(m.focus)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == FocusList {
		m.list, cmd = m.list.Update(msg)
	} else {
		m.content, cmd = m.content.Update(msg)
	}
	return m, cmd
}

// open renders id into the viewport. Nothing is rendered before the first
// window size message since the wrap width is unknown.
func (m *AppModel) open(id lesson.ID) {
	if len(m.lessons) == 0 || !lesson.Contains(m.lessons, id) {
		return
	}
	m.current = id
	m.statusBar.SetLesson(lesson.Label(id), m.indexOf(id)+1)
	if m.width == 0 {
		return
	}

	out, err := m.renderer.Render(id, m.content.Width)
	m.err = err
	if err != nil {
		m.content.SetContent("")
		return
	}
	m.content.SetContent(out)
	m.content.GotoTop()
}

func (m AppModel) indexOf(id lesson.ID) int {
	for i, l := range m.lessons {
		if l == id {
			return i
		}
	}
	return 0
}

// Run starts the TUI on the alternate screen and blocks until the user quits.
func Run(viewer *lesson.Viewer, lessons []lesson.ID, opts Options) error {
	p := tea.NewProgram(NewAppModel(viewer, lessons, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
