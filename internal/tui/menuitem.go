package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/naveenspark/foodcourt/pkg/client"
	"github.com/naveenspark/foodcourt/pkg/domain"
)

const (
	itemRestaurant = iota
	itemName
	itemDescription
	itemPrice
	itemCategory
	itemImageURL
	numItemFields
)

type menuItemCreatedMsg struct {
	item *domain.MenuItem
	err  error
}

// menuItemModel is the add-menu-item form.
type menuItemModel struct {
	client        *client.Client
	restaurants   []domain.Restaurant
	restaurantIdx int
	categoryIdx   int
	fields        [numItemFields]string
	focus         int
	loading       bool
	submitting    bool
	err           string
	status        string
}

func newMenuItemModel(c *client.Client) menuItemModel {
	return menuItemModel{client: c, loading: true}
}

func (m menuItemModel) Init() tea.Cmd {
	return loadRestaurants(m.client)
}

func (m menuItemModel) Update(msg tea.Msg) (menuItemModel, tea.Cmd) {
	switch msg := msg.(type) {
	case restaurantsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = client.Message(msg.err, "Failed to load restaurants")
			return m, nil
		}
		m.restaurants = msg.restaurants
		if m.restaurantIdx >= len(m.restaurants) {
			m.restaurantIdx = 0
		}

	case menuItemCreatedMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = client.Message(msg.err, "Failed to add menu item")
			return m, nil
		}
		m.status = fmt.Sprintf("added %s to %s", msg.item.Name, m.selectedRestaurantName())
		m.fields = [numItemFields]string{}
		m.categoryIdx = 0
		m.focus = itemName

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m menuItemModel) selectedRestaurant() (domain.Restaurant, bool) {
	if m.restaurantIdx < len(m.restaurants) {
		return m.restaurants[m.restaurantIdx], true
	}
	return domain.Restaurant{}, false
}

func (m menuItemModel) selectedRestaurantName() string {
	r, _ := m.selectedRestaurant()
	return r.Name
}

func (m menuItemModel) handleKey(msg tea.KeyMsg) (menuItemModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.err = ""
	m.status = ""
	switch key := msg.String(); key {
	case "ctrl+s":
		return m.submit()
	case "tab", "down", "enter":
		m.focus = cycleIndex(m.focus, 1, numItemFields)
	case "shift+tab", "up":
		m.focus = cycleIndex(m.focus, -1, numItemFields)
	default:
		switch m.focus {
		case itemRestaurant:
			m.restaurantIdx = cycleChoice(m.restaurantIdx, key, len(m.restaurants))
		case itemCategory:
			m.categoryIdx = cycleChoice(m.categoryIdx, key, len(domain.Categories))
		default:
			m.fields[m.focus] = editRune(m.fields[m.focus], key)
		}
	}
	return m, nil
}

// cycleChoice moves a choice index with h/l.
func cycleChoice(idx int, key string, n int) int {
	switch key {
	case "h", "left":
		return cycleIndex(idx, -1, n)
	case "l", "right":
		return cycleIndex(idx, 1, n)
	}
	return idx
}

func (m menuItemModel) submit() (menuItemModel, tea.Cmd) {
	r, ok := m.selectedRestaurant()
	name := strings.TrimSpace(m.fields[itemName])
	rawPrice := strings.TrimSpace(m.fields[itemPrice])
	if !ok || name == "" || rawPrice == "" {
		m.err = "Please fill in all required fields"
		return m, nil
	}
	price, err := decimal.NewFromString(rawPrice)
	if err != nil {
		m.err = "price must be a number"
		return m, nil
	}

	req := client.CreateMenuItemRequest{
		Name:        name,
		Description: strings.TrimSpace(m.fields[itemDescription]),
		Price:       price,
		Category:    domain.Categories[m.categoryIdx],
		ImageURL:    strings.TrimSpace(m.fields[itemImageURL]),
	}
	if err := req.Validate(); err != nil {
		m.err = err.Error()
		return m, nil
	}

	m.submitting = true
	c := m.client
	return m, func() tea.Msg {
		item, err := c.CreateMenuItem(context.Background(), r.ID, req)
		return menuItemCreatedMsg{item: item, err: err}
	}
}

func (m menuItemModel) View() string {
	var b strings.Builder

	restaurant := "(none)"
	if m.loading {
		restaurant = "loading..."
	} else if r, ok := m.selectedRestaurant(); ok {
		restaurant = r.Name
	}

	renderForm(&b, []formField{
		{label: "restaurant", value: restaurant, required: true, choice: true},
		{label: "name", value: m.fields[itemName], required: true},
		{label: "description", value: m.fields[itemDescription]},
		{label: "price", value: m.fields[itemPrice], required: true, hint: "e.g. 249.00"},
		{label: "category", value: domain.Categories[m.categoryIdx], choice: true},
		{label: "image url", value: m.fields[itemImageURL], hint: "optional"},
	}, m.focus)

	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString(" " + dimStyle.Render("saving..."))
	case m.err != "":
		b.WriteString(" " + errorStyle.Render(m.err))
	case m.status != "":
		b.WriteString(" " + okStyle.Render(m.status))
	}
	return b.String()
}
