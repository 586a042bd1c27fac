package tui

import (
	"strings"
	"testing"

	"github.com/naveenspark/foodcourt/pkg/domain"
)

func TestHomeEntriesFilteredByRole(t *testing.T) {
	tests := []struct {
		role        domain.Role
		wantAdmin   bool
		wantAddItem bool
	}{
		{domain.RoleMember, false, false},
		{domain.RoleManager, false, true},
		{domain.RoleAdmin, true, true},
	}
	for _, tc := range tests {
		t.Run(tc.role.String(), func(t *testing.T) {
			s, _ := newTestSession(t, tc.role, 0)
			view := newHomeModel(s).View()
			if got := strings.Contains(view, "Manage restaurants"); got != tc.wantAdmin {
				t.Errorf("Manage restaurants shown = %v, want %v", got, tc.wantAdmin)
			}
			if got := strings.Contains(view, "Add menu item"); got != tc.wantAddItem {
				t.Errorf("Add menu item shown = %v, want %v", got, tc.wantAddItem)
			}
			if !strings.Contains(view, "alice") {
				t.Errorf("expected welcome for alice:\n%s", view)
			}
		})
	}
}

func TestHomeEnterNavigates(t *testing.T) {
	s, _ := newTestSession(t, domain.RoleMember, domain.CountryIndia)
	m := newHomeModel(s)

	m, cmd := m.Update(key("j"))
	if cmd != nil || m.cursor != 1 {
		t.Fatalf("cursor = %d", m.cursor)
	}
	_, cmd = m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected navigation command")
	}
	nav, ok := cmd().(navigateMsg)
	if !ok || nav.to != routeOrders {
		t.Errorf("got %#v, want navigate to orders", nav)
	}
	if !strings.Contains(m.View(), "India") {
		t.Errorf("expected country line:\n%s", m.View())
	}
}

func TestHomeSignOut(t *testing.T) {
	s, _ := newTestSession(t, domain.RoleMember, 0)
	m := newHomeModel(s)
	m.cursor = len(m.visibleEntries()) - 1

	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected logout command")
	}
	if _, ok := cmd().(logoutMsg); !ok {
		t.Error("expected logoutMsg")
	}
}
