package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/foodcourt/internal/session"
	"github.com/naveenspark/foodcourt/pkg/domain"
)

// logoutMsg asks the app to end the session.
type logoutMsg struct{}

// homeEntry is a destination offered on the home screen.
type homeEntry struct {
	label    string
	desc     string
	to       route
	required domain.Role
	logout   bool
}

var homeEntries = []homeEntry{
	{label: "Restaurants", desc: "browse menus and order", to: routeRestaurants},
	{label: "My orders", desc: "track, cancel and pay", to: routeOrders},
	{label: "Add menu item", desc: "extend a restaurant's menu", to: routeAddMenuItem, required: domain.RoleManager},
	{label: "Manage restaurants", desc: "create and remove restaurants", to: routeAdminRestaurants, required: domain.RoleAdmin},
	{label: "Sign out", desc: "clear this session", logout: true},
}

type homeModel struct {
	session *session.Session
	entries []homeEntry
	cursor  int
}

func newHomeModel(s *session.Session) homeModel {
	return homeModel{session: s}
}

func (m homeModel) Init() tea.Cmd {
	return nil
}

func (m homeModel) identity() (domain.Identity, bool) {
	if m.session == nil {
		return domain.Identity{}, false
	}
	return m.session.Identity()
}

// visibleEntries filters destinations by the current role.
func (m homeModel) visibleEntries() []homeEntry {
	id, _ := m.identity()
	var out []homeEntry
	for _, e := range homeEntries {
		if e.required != "" && !id.Role.AtLeast(e.required) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (m homeModel) Update(msg tea.Msg) (homeModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	entries := m.visibleEntries()
	switch keyMsg.String() {
	case "enter":
		if m.cursor < len(entries) {
			e := entries[m.cursor]
			if e.logout {
				return m, func() tea.Msg { return logoutMsg{} }
			}
			return m, navigate(e.to)
		}
	default:
		m.cursor = moveCursor(m.cursor, keyMsg.String(), len(entries))
	}
	return m, nil
}

func (m homeModel) View() string {
	var b strings.Builder

	if id, ok := m.identity(); ok {
		fmt.Fprintf(&b, " Welcome back, %s %s\n", selectedStyle.Render(id.Username), RoleBadge(id.Role))
		if name := domain.CountryName(id.CountryID); name != "" {
			b.WriteString(" " + metaStyle.Render("ordering in "+name) + "\n")
		}
		b.WriteString("\n")
	}

	for i, e := range m.visibleEntries() {
		cursor := " "
		label := normalStyle.Render(fmt.Sprintf("%-20s", e.label))
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
			label = selectedStyle.Render(fmt.Sprintf("%-20s", e.label))
		}
		fmt.Fprintf(&b, " %s %s %s\n", cursor, label, dimStyle.Render(e.desc))
	}
	return b.String()
}
