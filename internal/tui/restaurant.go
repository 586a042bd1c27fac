package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/foodcourt/internal/browser"
	"github.com/naveenspark/foodcourt/internal/session"
	"github.com/naveenspark/foodcourt/pkg/client"
	"github.com/naveenspark/foodcourt/pkg/domain"
)

// fallbackImageURL is shown when a restaurant has no image of its own.
const fallbackImageURL = "https://images.unsplash.com/photo-1555992336-03a23c4d4d2f?w=1200&q=80&auto=format&fit=crop"

type restaurantLoadedMsg struct {
	id         int64
	restaurant *domain.Restaurant
	menu       []domain.MenuItem
	err        error
}

type orderPlacedMsg struct {
	order *domain.Order
	err   error
}

type imageOpenedMsg struct {
	err error
}

// restaurantModel shows one restaurant's menu and the cart being built.
type restaurantModel struct {
	client        *client.Client
	session       *session.Session
	id            int64
	restaurant    *domain.Restaurant
	menu          []domain.MenuItem
	cart          domain.Cart
	paymentMethod string
	cursor        int
	loading       bool
	placing       bool
	err           string
	status        string
}

func newRestaurantModel(c *client.Client, s *session.Session, id int64) restaurantModel {
	return restaurantModel{
		client:        c,
		session:       s,
		id:            id,
		paymentMethod: domain.PaymentCreditCard,
		loading:       true,
	}
}

func (m restaurantModel) Init() tea.Cmd {
	c := m.client
	id := m.id
	if c == nil || id == 0 {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		r, err := c.GetRestaurant(ctx, id)
		if err != nil {
			return restaurantLoadedMsg{id: id, err: err}
		}
		menu, err := c.ListMenuItems(ctx, id)
		if err != nil {
			return restaurantLoadedMsg{id: id, err: err}
		}
		return restaurantLoadedMsg{id: id, restaurant: r, menu: menu}
	}
}

func (m restaurantModel) identity() domain.Identity {
	if m.session == nil {
		return domain.Identity{}
	}
	id, _ := m.session.Identity()
	return id
}

func (m restaurantModel) currency() domain.Currency {
	var r domain.Restaurant
	if m.restaurant != nil {
		r = *m.restaurant
	}
	return domain.CurrencyFor(r, m.identity())
}

func (m restaurantModel) Update(msg tea.Msg) (restaurantModel, tea.Cmd) {
	switch msg := msg.(type) {
	case restaurantLoadedMsg:
		// A fetch for a restaurant the user already left.
		if msg.id != m.id {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = client.Message(msg.err, "Failed to load restaurant")
			return m, nil
		}
		m.restaurant = msg.restaurant
		m.menu = msg.menu
		m.err = ""
		if m.cursor >= len(m.menu) {
			m.cursor = 0
		}

	case orderPlacedMsg:
		m.placing = false
		if msg.err != nil {
			m.err = client.Message(msg.err, "Failed to place order")
			return m, nil
		}
		m.cart.Clear()
		notice := fmt.Sprintf("order #%d placed", msg.order.ID)
		return m, func() tea.Msg { return navigateMsg{to: routeOrders, notice: notice} }

	case imageOpenedMsg:
		if msg.err != nil {
			m.err = "could not open browser: " + msg.err.Error()
		} else {
			m.status = "photo opened in browser"
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m restaurantModel) handleKey(msg tea.KeyMsg) (restaurantModel, tea.Cmd) {
	if m.placing {
		return m, nil
	}
	m.status = ""
	switch msg.String() {
	case "+", "=", "a", "l", "right":
		if m.cursor < len(m.menu) {
			item := m.menu[m.cursor]
			if !item.IsAvailable {
				m.err = item.Name + " is not available"
				return m, nil
			}
			m.err = ""
			m.cart.Add(item.ID)
		}
	case "-", "d", "h", "left":
		if m.cursor < len(m.menu) {
			m.cart.Remove(m.menu[m.cursor].ID)
		}
	case "p":
		m.paymentMethod = domain.NextPaymentMethod(m.paymentMethod)
	case "enter":
		return m.checkout()
	case "o":
		url := fallbackImageURL
		if m.restaurant != nil && m.restaurant.ImageURL != "" {
			url = m.restaurant.ImageURL
		}
		return m, func() tea.Msg { return imageOpenedMsg{err: browser.Open(url)} }
	case "r":
		m.loading = true
		return m, m.Init()
	default:
		m.cursor = moveCursor(m.cursor, msg.String(), len(m.menu))
	}
	return m, nil
}

// checkout places the order. Only managers and admins may order.
func (m restaurantModel) checkout() (restaurantModel, tea.Cmd) {
	if m.cart.Len() == 0 {
		m.err = "Cart is empty"
		return m, nil
	}
	if !m.identity().Role.AtLeast(domain.RoleManager) {
		m.err = "Only ADMIN or MANAGER can create orders"
		return m, nil
	}

	req := client.CreateOrderRequest{
		RestaurantID:  m.id,
		Items:         m.cart.OrderItems(),
		PaymentMethod: m.paymentMethod,
	}
	if err := req.Validate(); err != nil {
		m.err = err.Error()
		return m, nil
	}

	m.placing = true
	m.err = ""
	c := m.client
	return m, func() tea.Msg {
		order, err := c.CreateOrder(context.Background(), req)
		return orderPlacedMsg{order: order, err: err}
	}
}

func (m restaurantModel) View() string {
	var b strings.Builder

	if m.loading && m.restaurant == nil {
		b.WriteString(" " + dimStyle.Render("loading menu...") + "\n")
		return b.String()
	}
	if m.restaurant == nil {
		b.WriteString(" " + errorStyle.Render(m.err) + "\n")
		return b.String()
	}

	r := m.restaurant
	cur := m.currency()
	fmt.Fprintf(&b, " %s  %s\n", selectedStyle.Render(r.Name), dimStyle.Render(r.Cuisine))
	details := []string{r.Address}
	if r.PhoneNumber != "" {
		details = append(details, r.PhoneNumber)
	}
	b.WriteString(" " + metaStyle.Render(strings.Join(details, " · ")) + "\n\n")

	b.WriteString(" " + sectionHeaderStyle.Render("Menu") + "\n")
	if len(m.menu) == 0 {
		b.WriteString(" " + dimStyle.Render("this restaurant has no menu items yet") + "\n")
	}
	for i, item := range m.menu {
		cursor := " "
		name := normalStyle.Render(fmt.Sprintf("%-26s", truncStr(item.Name, 26)))
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
			name = selectedStyle.Render(fmt.Sprintf("%-26s", truncStr(item.Name, 26)))
		}
		qty := ""
		if q := m.cart.Quantity(item.ID); q > 0 {
			qty = accentStyle.Render(fmt.Sprintf("×%d", q))
		}
		row := fmt.Sprintf(" %s %s %s %s %s", cursor, name,
			CategoryStyle(item.Category).Render(fmt.Sprintf("%-12s", item.Category)),
			priceStyle.Render(fmt.Sprintf("%12s", cur.Format(item.Price))), qty)
		if !item.IsAvailable {
			row += " " + metaStyle.Render("unavailable")
		}
		b.WriteString(row + "\n")
		if i == m.cursor && item.Description != "" {
			b.WriteString("     " + dimStyle.Render(truncStr(item.Description, 70)) + "\n")
		}
	}

	b.WriteString("\n " + sectionHeaderStyle.Render("Cart") + "\n")
	lines := m.cart.Lines(m.menu)
	if len(lines) == 0 {
		b.WriteString(" " + dimStyle.Render("empty, press + to add the selected dish") + "\n")
	}
	for _, line := range lines {
		fmt.Fprintf(&b, "   %-26s ×%-3d %12s\n", truncStr(line.Item.Name, 26), line.Quantity, cur.Format(line.Subtotal()))
	}
	fmt.Fprintf(&b, "   %s %s\n", selectedStyle.Render(fmt.Sprintf("%-31s", "Total")), priceStyle.Render(fmt.Sprintf("%12s", cur.Format(m.cart.Total(m.menu)))))
	fmt.Fprintf(&b, "   %s %s\n", metaStyle.Render("payment"), accentStyle.Render(m.paymentMethod))

	b.WriteString("\n")
	switch {
	case m.placing:
		b.WriteString(" " + dimStyle.Render("placing order..."))
	case m.err != "":
		b.WriteString(" " + errorStyle.Render(m.err))
	case m.status != "":
		b.WriteString(" " + okStyle.Render(m.status))
	}
	return b.String()
}

func (m restaurantModel) helpKeys() []string {
	return []string{"j/k", "nav", "+/-", "cart", "p", "payment", "enter", "order", "o", "photo", "esc", "back"}
}
