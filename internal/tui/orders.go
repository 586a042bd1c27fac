package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/foodcourt/internal/session"
	"github.com/naveenspark/foodcourt/pkg/client"
	"github.com/naveenspark/foodcourt/pkg/domain"
)

type ordersLoadedMsg struct {
	orders []domain.Order
	err    error
}

// orderUpdatedMsg carries the result of a cancel or payment change.
type orderUpdatedMsg struct {
	order  *domain.Order
	action string
	err    error
}

type copyResultMsg struct {
	text string
	err  error
}

type ordersModel struct {
	client  *client.Client
	session *session.Session
	orders  []domain.Order
	cursor  int
	loading bool
	busy    bool

	// confirmCancel holds the order awaiting a y to cancel.
	confirmCancel int64
	err           string
	status        string
}

func newOrdersModel(c *client.Client, s *session.Session) ordersModel {
	return ordersModel{client: c, session: s, loading: true}
}

func (m ordersModel) Init() tea.Cmd {
	c := m.client
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		orders, err := c.ListMyOrders(context.Background())
		return ordersLoadedMsg{orders: orders, err: err}
	}
}

func (m ordersModel) identity() domain.Identity {
	if m.session == nil {
		return domain.Identity{}
	}
	id, _ := m.session.Identity()
	return id
}

func (m ordersModel) Update(msg tea.Msg) (ordersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ordersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = client.Message(msg.err, "Failed to load orders")
			return m, nil
		}
		m.orders = msg.orders
		m.err = ""
		if m.cursor >= len(m.orders) {
			m.cursor = 0
		}

	case orderUpdatedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = client.Message(msg.err, "Failed to "+msg.action)
			return m, nil
		}
		m.err = ""
		for i := range m.orders {
			if m.orders[i].ID == msg.order.ID {
				m.orders[i] = *msg.order
			}
		}
		switch msg.action {
		case "cancel order":
			m.status = fmt.Sprintf("order #%d cancelled", msg.order.ID)
		default:
			m.status = fmt.Sprintf("order #%d will be paid by %s", msg.order.ID, msg.order.PaymentMethod)
		}

	case copyResultMsg:
		if msg.err != nil {
			m.err = "copy failed: " + msg.err.Error()
		} else {
			m.status = "copied order id " + msg.text
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m ordersModel) handleKey(msg tea.KeyMsg) (ordersModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.status = ""
	c := m.client

	if m.confirmCancel != 0 {
		id := m.confirmCancel
		m.confirmCancel = 0
		if msg.String() != "y" {
			m.status = fmt.Sprintf("order #%d kept", id)
			return m, nil
		}
		m.busy = true
		return m, func() tea.Msg {
			updated, err := c.CancelOrder(context.Background(), id)
			return orderUpdatedMsg{order: updated, action: "cancel order", err: err}
		}
	}

	switch msg.String() {
	case "x":
		if m.cursor < len(m.orders) {
			order := m.orders[m.cursor]
			if !order.Status.Cancellable() {
				m.err = "only pending orders can be cancelled"
				return m, nil
			}
			m.err = ""
			m.confirmCancel = order.ID
		}
	case "p":
		if m.cursor < len(m.orders) {
			if m.identity().Role != domain.RoleAdmin {
				m.err = "only admins can change the payment method"
				return m, nil
			}
			order := m.orders[m.cursor]
			next := domain.NextPaymentMethod(order.PaymentMethod)
			m.busy = true
			return m, func() tea.Msg {
				updated, err := c.UpdatePaymentMethod(context.Background(), order.ID, next)
				return orderUpdatedMsg{order: updated, action: "update payment method", err: err}
			}
		}
	case "c":
		if m.cursor < len(m.orders) {
			text := strconv.FormatInt(m.orders[m.cursor].ID, 10)
			return m, func() tea.Msg {
				return copyResultMsg{text: text, err: clipboard.WriteAll(text)}
			}
		}
	case "r":
		m.loading = true
		return m, m.Init()
	default:
		m.cursor = moveCursor(m.cursor, msg.String(), len(m.orders))
	}
	return m, nil
}

func (m ordersModel) View() string {
	var b strings.Builder

	if m.loading && len(m.orders) == 0 {
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return b.String()
	}
	if len(m.orders) == 0 && m.err == "" {
		b.WriteString(" " + dimStyle.Render("no orders yet, pick a restaurant to start") + "\n")
		return b.String()
	}

	cur := domain.CurrencyFor(domain.Restaurant{}, m.identity())
	for i, o := range m.orders {
		active := i == m.cursor
		cursor := " "
		idStyle := dimStyle
		if active {
			cursor = accentStyle.Render("▸")
			idStyle = selectedStyle
		}
		row := fmt.Sprintf(" %s %s %s %s %s %s",
			cursor,
			idStyle.Render(fmt.Sprintf("#%-5d", o.ID)),
			normalStyle.Render(fmt.Sprintf("%-24s", truncStr(o.RestaurantName, 24))),
			statusStyle(o.Status).Render(fmt.Sprintf("%-10s", o.Status)),
			priceStyle.Render(fmt.Sprintf("%12s", cur.Format(o.TotalAmount))),
			metaStyle.Render(o.PaymentMethod))
		if t := formatTime(o.CreatedAt.Time); t != "" {
			row += "  " + metaStyle.Render(t)
		}
		b.WriteString(row + "\n")

		if active {
			for _, it := range o.OrderItems {
				fmt.Fprintf(&b, "     %s ×%d %s\n",
					dimStyle.Render(truncStr(it.MenuItemName, 30)), it.Quantity,
					metaStyle.Render(cur.Format(it.Price)))
			}
		}
	}

	b.WriteString("\n")
	switch {
	case m.busy:
		b.WriteString(" " + dimStyle.Render("working..."))
	case m.confirmCancel != 0:
		b.WriteString(" " + errorStyle.Render(fmt.Sprintf("Are you sure you want to cancel order #%d? press y to confirm", m.confirmCancel)))
	case m.err != "":
		b.WriteString(" " + errorStyle.Render(m.err))
	case m.status != "":
		b.WriteString(" " + okStyle.Render(m.status))
	}
	return b.String()
}

func (m ordersModel) helpKeys() []string {
	keys := []string{"j/k", "nav", "x", "cancel"}
	if m.identity().Role == domain.RoleAdmin {
		keys = append(keys, "p", "payment")
	}
	return append(keys, "c", "copy id", "r", "refresh")
}
