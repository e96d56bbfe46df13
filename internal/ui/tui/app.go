// Package tui is the read-only attendpay dashboard.
package tui

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/attendpay/internal/ui/format"
)

type screen int

const (
	screenHome screen = iota
	screenSection
)

type section int

const (
	sectionEmployees section = iota
	sectionToday
	sectionReports
	sectionProfile
	sectionQuit
)

type menuItem struct {
	section section
	title   string
	desc    string
}

func (m menuItem) Title() string       { return m.title }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.title }

type model struct {
	theme Theme
	deps  Deps

	scr     screen
	menu    list.Model
	active  menuItem
	body    string
	loading bool
	toast   string

	workspaceFound bool
	workspaceRoot  string
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	t := DefaultTheme()

	items := []list.Item{
		menuItem{sectionEmployees, "Employees", "Everyone on the payroll"},
		menuItem{sectionToday, "Today's Attendance", "Who is in, out, on leave"},
		menuItem{sectionReports, "Salary Reports", "Latest generated batch"},
		menuItem{sectionProfile, "Profile", "Operator details"},
		menuItem{sectionQuit, "Quit", "Exit attendpay"},
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "attendpay"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	m := model{
		theme: t,
		deps:  deps,
		scr:   screenHome,
		menu:  l,
	}

	switch {
	case deps.WorkspaceRoot != "" && deps.Source != nil:
		m.workspaceFound = true
		m.workspaceRoot = deps.WorkspaceRoot
	case deps.WorkspaceLocator != nil:
		if wd, err := os.Getwd(); err == nil {
			if root, findErr := deps.WorkspaceLocator.FindRoot(wd); findErr == nil {
				m.workspaceRoot = root
			}
		}
	}

	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w, h := msg.Width, msg.Height
		m.menu.SetSize(w-4, h-12)
		return m, nil

	case sectionLoadedMsg:
		if msg.section != m.active.section || m.scr != screenSection {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.deps.Logger.Warn("tui.section.failed", "section", m.active.title, "err", msg.err)
			m.toast = format.UserMessage(msg.err)
			m.body = ""
			return m, nil
		}
		m.body = msg.body
		return m, nil

	case tea.KeyMsg:
		if m.menu.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			if m.scr == screenHome {
				return m, tea.Quit
			}
			return m.home(), nil

		case "enter":
			if m.scr == screenHome {
				it, ok := m.menu.SelectedItem().(menuItem)
				if !ok {
					return m, nil
				}
				if it.section == sectionQuit {
					return m, tea.Quit
				}
				if !m.workspaceFound {
					m.toast = "No workspace loaded"
					return m, nil
				}
				m.scr = screenSection
				m.active = it
				m.body = ""
				m.toast = ""
				m.loading = true
				return m, cmdLoadSection(m.deps, it.section)
			}

		case "r":
			if m.scr == screenSection {
				m.loading = true
				return m, cmdLoadSection(m.deps, m.active.section)
			}

		case "esc", "b":
			if m.scr != screenHome {
				return m.home(), nil
			}
		}
	}

	if m.scr == screenHome {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) home() model {
	m.scr = screenHome
	m.active = menuItem{}
	m.body = ""
	m.loading = false
	return m
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("attendpay") + "\n" +
		m.theme.Subtitle.Render("Attendance and salary tracking") + "\n"

	var workspaceBanner string
	switch {
	case m.workspaceFound:
		workspaceBanner = m.theme.Help.Render(fmt.Sprintf("Workspace: %s", m.workspaceRoot))
	case m.workspaceRoot != "":
		workspaceBanner = m.theme.Card.Render(
			fmt.Sprintf("⚠ Workspace at %s could not be opened.\n\nCheck attendpay.yaml and the log file.", m.workspaceRoot),
		)
	default:
		workspaceBanner = m.theme.Card.Render(
			"⚠ No workspace found.\n\nCreate one with `attendpay init`.",
		)
	}

	toast := ""
	if m.toast != "" {
		toast = "\n" + m.theme.Toast.Render(m.toast)
	}

	switch m.scr {
	case screenHome:
		stats := ""
		if m.workspaceFound {
			stats = renderStats(m.theme, overview(m.deps.Source, m.deps.Now())) + "\n\n"
		}
		help := m.theme.Help.Render("↑/↓ navigate • enter open • / search • q quit")
		if m.deps.Debug && m.deps.LogPath != "" {
			help += "\n" + m.theme.Help.Render("debug log: "+m.deps.LogPath)
		}
		return wrap.Render(header + "\n" + workspaceBanner + "\n\n" + stats + m.theme.Card.Render(m.menu.View()) + "\n" + help + toast)

	case screenSection:
		body := m.body
		if m.loading {
			body = m.theme.Help.Render("Loading…")
		}
		card := m.theme.Card.Render(
			fmt.Sprintf("%s\n\n%s\n\n%s",
				m.theme.Title.Render(m.active.title),
				body,
				m.theme.Help.Render("r refresh • esc/b back • q home"),
			),
		)
		return wrap.Render(header + "\n" + workspaceBanner + "\n\n" + card + toast)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}
