package tui

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/naveenspark/foodcourt/internal/session"
	"github.com/naveenspark/foodcourt/pkg/domain"
)

func TestRestaurantsLoadAndOpen(t *testing.T) {
	store := session.NewMemoryStore()
	c := newTestServer(t, store, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/restaurants" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]domain.Restaurant{
			{ID: 4, Name: "Saravana Bhavan", Cuisine: "South Indian", CountryID: domain.CountryIndia, IsActive: true},
			{ID: 9, Name: "Joe's Diner", Cuisine: "American", CountryName: "America"},
		})
	})

	m := newRestaurantsModel(c)
	msg := m.Init()()
	m, _ = m.Update(msg)

	view := m.View()
	for _, want := range []string{"Saravana Bhavan", "India", "Joe's Diner", "closed"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m, _ = m.Update(key("j"))
	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected navigate command")
	}
	nav, ok := cmd().(navigateMsg)
	if !ok {
		t.Fatalf("expected navigateMsg, got %T", cmd())
	}
	if nav.to != routeRestaurant || nav.restaurantID != 9 {
		t.Errorf("navigate = %+v, want restaurant 9", nav)
	}
}

func TestRestaurantsErrorKeepsList(t *testing.T) {
	m := newRestaurantsModel(nil)
	m, _ = m.Update(restaurantsLoadedMsg{restaurants: []domain.Restaurant{{ID: 1, Name: "Dosa Point"}}})
	m, _ = m.Update(restaurantsLoadedMsg{err: errors.New("boom")})

	view := m.View()
	if !strings.Contains(view, "Failed to load restaurants") {
		t.Errorf("expected fallback error message:\n%s", view)
	}
	if !strings.Contains(view, "Dosa Point") {
		t.Errorf("expected previous list to stay on screen:\n%s", view)
	}
}

func TestRestaurantsEmpty(t *testing.T) {
	m := newRestaurantsModel(nil)
	m, _ = m.Update(restaurantsLoadedMsg{})
	if !strings.Contains(m.View(), "no restaurants yet") {
		t.Errorf("view = %q", m.View())
	}
}
