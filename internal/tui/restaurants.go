package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/foodcourt/pkg/client"
	"github.com/naveenspark/foodcourt/pkg/domain"
)

type restaurantsLoadedMsg struct {
	restaurants []domain.Restaurant
	err         error
}

type restaurantsModel struct {
	client      *client.Client
	restaurants []domain.Restaurant
	cursor      int
	loading     bool
	err         string
}

func newRestaurantsModel(c *client.Client) restaurantsModel {
	return restaurantsModel{client: c, loading: true}
}

func (m restaurantsModel) Init() tea.Cmd {
	return loadRestaurants(m.client)
}

// loadRestaurants is shared by every view that lists restaurants.
func loadRestaurants(c *client.Client) tea.Cmd {
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		restaurants, err := c.ListRestaurants(context.Background())
		return restaurantsLoadedMsg{restaurants: restaurants, err: err}
	}
}

func (m restaurantsModel) Update(msg tea.Msg) (restaurantsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case restaurantsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = client.Message(msg.err, "Failed to load restaurants")
			return m, nil
		}
		m.restaurants = msg.restaurants
		m.err = ""
		if m.cursor >= len(m.restaurants) {
			m.cursor = 0
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if m.cursor < len(m.restaurants) {
				id := m.restaurants[m.cursor].ID
				return m, func() tea.Msg { return navigateMsg{to: routeRestaurant, restaurantID: id} }
			}
		case "r":
			m.loading = true
			return m, m.Init()
		default:
			m.cursor = moveCursor(m.cursor, msg.String(), len(m.restaurants))
		}
	}
	return m, nil
}

func (m restaurantsModel) View() string {
	var b strings.Builder

	if m.err != "" {
		b.WriteString(" " + errorStyle.Render(m.err) + "\n")
	}
	if m.loading && len(m.restaurants) == 0 {
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return b.String()
	}
	if len(m.restaurants) == 0 && m.err == "" {
		b.WriteString(" " + dimStyle.Render("no restaurants yet") + "\n")
		return b.String()
	}

	for i, r := range m.restaurants {
		writeRestaurantRow(&b, r, i == m.cursor)
	}
	return b.String()
}

// writeRestaurantRow renders one restaurant line with its cuisine and country.
func writeRestaurantRow(b *strings.Builder, r domain.Restaurant, active bool) {
	cursor := " "
	name := normalStyle.Render(fmt.Sprintf("%-28s", truncStr(r.Name, 28)))
	if active {
		cursor = accentStyle.Render("▸")
		name = selectedStyle.Render(fmt.Sprintf("%-28s", truncStr(r.Name, 28)))
	}
	country := r.CountryName
	if country == "" {
		country = domain.CountryName(r.CountryID)
	}
	row := fmt.Sprintf(" %s %s %s  %s", cursor, name, dimStyle.Render(fmt.Sprintf("%-16s", truncStr(r.Cuisine, 16))), metaStyle.Render(country))
	if !r.IsActive {
		row += "  " + errorStyle.Render("closed")
	}
	if active {
		row = selectedRowBg.Render(row)
	}
	b.WriteString(row + "\n")
}
