package tui

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/naveenspark/foodcourt/pkg/domain"
)

func testOrders() []domain.Order {
	return []domain.Order{
		{ID: 1, RestaurantName: "Saravana", Status: domain.OrderPending, PaymentMethod: domain.PaymentUPI, TotalAmount: decimal.RequireFromString("240")},
		{ID: 2, RestaurantName: "Diner", Status: domain.OrderConfirmed, PaymentMethod: domain.PaymentCash, TotalAmount: decimal.RequireFromString("12.5")},
	}
}

func TestOrdersRender(t *testing.T) {
	s, _ := newTestSession(t, domain.RoleMember, domain.CountryIndia)
	m := newOrdersModel(nil, s)
	m, _ = m.Update(ordersLoadedMsg{orders: testOrders()})

	view := m.View()
	for _, want := range []string{"#1", "Saravana", "PENDING", "₹240.00", "CONFIRMED"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestOrdersCancelOnlyPending(t *testing.T) {
	s, _ := newTestSession(t, domain.RoleMember, 0)
	m := newOrdersModel(nil, s)
	m, _ = m.Update(ordersLoadedMsg{orders: testOrders()})
	m.cursor = 1

	m, cmd := m.Update(key("x"))
	if cmd != nil {
		t.Error("confirmed order must not be cancellable")
	}
	if !strings.Contains(m.err, "pending") {
		t.Errorf("err = %q", m.err)
	}
}

func TestOrdersCancel(t *testing.T) {
	s, store := newTestSession(t, domain.RoleMember, 0)
	var gotPath string
	c := newTestServer(t, store, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(domain.Order{ID: 1, RestaurantName: "Saravana", Status: domain.OrderCancelled}) //nolint:errcheck
	})
	m := newOrdersModel(c, s)
	m, _ = m.Update(ordersLoadedMsg{orders: testOrders()})

	m, cmd := m.Update(key("x"))
	if cmd != nil {
		t.Fatal("cancel must wait for confirmation")
	}
	m, cmd = m.Update(key("y"))
	if cmd == nil {
		t.Fatal("expected cancel command")
	}
	m, _ = m.Update(cmd())
	if gotPath != "/api/orders/1/cancel" {
		t.Errorf("path = %q", gotPath)
	}
	if m.orders[0].Status != domain.OrderCancelled {
		t.Errorf("status = %s, want CANCELLED", m.orders[0].Status)
	}
}

func TestOrdersPaymentAdminOnly(t *testing.T) {
	t.Run("member", func(t *testing.T) {
		s, _ := newTestSession(t, domain.RoleMember, 0)
		m := newOrdersModel(nil, s)
		m, _ = m.Update(ordersLoadedMsg{orders: testOrders()})
		m, cmd := m.Update(key("p"))
		if cmd != nil {
			t.Error("member must not change payment method")
		}
		if m.err == "" {
			t.Error("expected error message")
		}
	})

	t.Run("admin", func(t *testing.T) {
		s, store := newTestSession(t, domain.RoleAdmin, 0)
		var gotMethod string
		c := newTestServer(t, store, func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.URL.Query().Get("paymentMethod")
			json.NewEncoder(w).Encode(domain.Order{ID: 1, Status: domain.OrderPending, PaymentMethod: gotMethod}) //nolint:errcheck
		})
		m := newOrdersModel(c, s)
		m, _ = m.Update(ordersLoadedMsg{orders: testOrders()})
		m, cmd := m.Update(key("p"))
		if cmd == nil {
			t.Fatal("expected payment command")
		}
		m, _ = m.Update(cmd())
		if gotMethod != domain.PaymentCash {
			t.Errorf("paymentMethod = %q, want CASH after UPI", gotMethod)
		}
		if m.orders[0].PaymentMethod != domain.PaymentCash {
			t.Errorf("order payment = %q", m.orders[0].PaymentMethod)
		}
	})
}

func TestOrdersEmpty(t *testing.T) {
	m := newOrdersModel(nil, nil)
	m, _ = m.Update(ordersLoadedMsg{})
	if !strings.Contains(m.View(), "no orders yet") {
		t.Errorf("expected empty state:\n%s", m.View())
	}
}

func TestOrdersCancelNeedsConfirmation(t *testing.T) {
	s, _ := newTestSession(t, domain.RoleMember, 0)
	m := newOrdersModel(nil, s)
	m, _ = m.Update(ordersLoadedMsg{orders: testOrders()})

	m, _ = m.Update(key("x"))
	if m.confirmCancel != 1 {
		t.Fatalf("confirmCancel = %d, want 1", m.confirmCancel)
	}
	if !strings.Contains(m.View(), "Are you sure you want to cancel order #1?") {
		t.Errorf("expected confirmation prompt:\n%s", m.View())
	}

	m, cmd := m.Update(key("n"))
	if cmd != nil || m.confirmCancel != 0 {
		t.Errorf("any key but y must abort, cmd = %v, confirmCancel = %d", cmd != nil, m.confirmCancel)
	}
	if m.orders[0].Status != domain.OrderPending {
		t.Errorf("status = %s, want PENDING", m.orders[0].Status)
	}
}

func TestOrdersStartLoading(t *testing.T) {
	m := newOrdersModel(nil, nil)
	view := m.View()
	if strings.Contains(view, "no orders yet") {
		t.Errorf("empty state shown before the first load:\n%s", view)
	}
	if !strings.Contains(view, "loading") {
		t.Errorf("expected loading placeholder:\n%s", view)
	}
}
