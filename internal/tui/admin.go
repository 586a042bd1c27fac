package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/foodcourt/pkg/client"
	"github.com/naveenspark/foodcourt/pkg/domain"
)

const (
	adminName = iota
	adminCuisine
	adminAddress
	adminPhone
	adminCountry
	numAdminFields
)

type restaurantCreatedMsg struct {
	restaurant *domain.Restaurant
	err        error
}

type restaurantDeletedMsg struct {
	id  int64
	err error
}

// adminModel lists restaurants and lets an admin create or delete them.
type adminModel struct {
	client        *client.Client
	restaurants   []domain.Restaurant
	cursor        int
	loading       bool
	formOpen      bool
	fields        [numAdminFields]string
	countryIdx    int
	focus         int
	submitting    bool
	confirmDelete int64
	err           string
	status        string
}

func newAdminModel(c *client.Client) adminModel {
	return adminModel{client: c, loading: true}
}

func (m adminModel) Init() tea.Cmd {
	return loadRestaurants(m.client)
}

func (m adminModel) Update(msg tea.Msg) (adminModel, tea.Cmd) {
	switch msg := msg.(type) {
	case restaurantsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = client.Message(msg.err, "Failed to load restaurants")
			return m, nil
		}
		m.restaurants = msg.restaurants
		if m.cursor >= len(m.restaurants) {
			m.cursor = 0
		}

	case restaurantCreatedMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = client.Message(msg.err, "Failed to create restaurant")
			return m, nil
		}
		m.formOpen = false
		m.fields = [numAdminFields]string{}
		m.focus = adminName
		m.err = ""
		m.status = fmt.Sprintf("created %s", msg.restaurant.Name)
		return m, m.Init()

	case restaurantDeletedMsg:
		if msg.err != nil {
			m.err = client.Message(msg.err, "Failed to delete restaurant")
			return m, nil
		}
		m.status = fmt.Sprintf("deleted restaurant #%d", msg.id)
		return m, m.Init()

	case tea.KeyMsg:
		if m.formOpen {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m adminModel) updateList(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	key := msg.String()
	if m.confirmDelete != 0 {
		id := m.confirmDelete
		m.confirmDelete = 0
		if key != "y" {
			m.status = "delete cancelled"
			return m, nil
		}
		c := m.client
		return m, func() tea.Msg {
			return restaurantDeletedMsg{id: id, err: c.DeleteRestaurant(context.Background(), id)}
		}
	}

	m.status = ""
	m.err = ""
	switch key {
	case "n":
		m.formOpen = true
		m.fields[adminCountry] = domain.Countries[m.countryIdx].Name
	case "d":
		if m.cursor < len(m.restaurants) {
			m.confirmDelete = m.restaurants[m.cursor].ID
		}
	case "r":
		m.loading = true
		return m, m.Init()
	default:
		m.cursor = moveCursor(m.cursor, key, len(m.restaurants))
	}
	return m, nil
}

func (m adminModel) updateForm(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.err = ""
	switch key := msg.String(); key {
	case "ctrl+s":
		return m.submit()
	case "esc":
		m.formOpen = false
	case "tab", "down", "enter":
		m.focus = cycleIndex(m.focus, 1, numAdminFields)
	case "shift+tab", "up":
		m.focus = cycleIndex(m.focus, -1, numAdminFields)
	default:
		if m.focus == adminCountry {
			switch key {
			case "h", "left":
				m.countryIdx = cycleIndex(m.countryIdx, -1, len(domain.Countries))
			case "l", "right":
				m.countryIdx = cycleIndex(m.countryIdx, 1, len(domain.Countries))
			}
			m.fields[adminCountry] = domain.Countries[m.countryIdx].Name
			return m, nil
		}
		m.fields[m.focus] = editRune(m.fields[m.focus], key)
	}
	return m, nil
}

func (m adminModel) submit() (adminModel, tea.Cmd) {
	req := client.CreateRestaurantRequest{
		Name:        strings.TrimSpace(m.fields[adminName]),
		Cuisine:     strings.TrimSpace(m.fields[adminCuisine]),
		Address:     strings.TrimSpace(m.fields[adminAddress]),
		PhoneNumber: strings.TrimSpace(m.fields[adminPhone]),
		CountryID:   domain.Countries[m.countryIdx].ID,
	}
	if req.Name == "" || req.Cuisine == "" || req.Address == "" {
		m.err = "Please fill in all required fields"
		return m, nil
	}
	if err := req.Validate(); err != nil {
		m.err = err.Error()
		return m, nil
	}

	m.submitting = true
	c := m.client
	return m, func() tea.Msg {
		r, err := c.CreateRestaurant(context.Background(), req)
		return restaurantCreatedMsg{restaurant: r, err: err}
	}
}

func (m adminModel) View() string {
	var b strings.Builder

	if m.formOpen {
		b.WriteString(" " + sectionHeaderStyle.Render("New restaurant") + "\n")
		renderForm(&b, []formField{
			{label: "name", value: m.fields[adminName], required: true},
			{label: "cuisine", value: m.fields[adminCuisine], required: true, hint: "e.g. South Indian"},
			{label: "address", value: m.fields[adminAddress], required: true},
			{label: "phone", value: m.fields[adminPhone]},
			{label: "country", value: m.fields[adminCountry], required: true, choice: true},
		}, m.focus)
	} else {
		if m.loading && len(m.restaurants) == 0 {
			b.WriteString(" " + dimStyle.Render("loading...") + "\n")
		}
		for i, r := range m.restaurants {
			writeRestaurantRow(&b, r, i == m.cursor)
		}
		if !m.loading && len(m.restaurants) == 0 {
			b.WriteString(" " + dimStyle.Render("no restaurants yet, press n to create one") + "\n")
		}
	}

	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString(" " + dimStyle.Render("saving..."))
	case m.confirmDelete != 0:
		b.WriteString(" " + errorStyle.Render(fmt.Sprintf("delete restaurant #%d? press y to confirm", m.confirmDelete)))
	case m.err != "":
		b.WriteString(" " + errorStyle.Render(m.err))
	case m.status != "":
		b.WriteString(" " + okStyle.Render(m.status))
	}
	return b.String()
}

func (m adminModel) helpKeys() []string {
	if m.formOpen {
		return []string{"tab", "next", "h/l", "country", "ctrl+s", "create", "esc", "close"}
	}
	return []string{"j/k", "nav", "n", "new", "d", "delete", "r", "refresh", "esc", "back"}
}
