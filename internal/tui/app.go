package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/foodcourt/internal/session"
	"github.com/naveenspark/foodcourt/pkg/client"
	"github.com/naveenspark/foodcourt/pkg/domain"
)

type route int

const (
	routeLogin route = iota
	routeHome
	routeRestaurants
	routeRestaurant
	routeOrders
	routeAdminRestaurants
	routeAddMenuItem
)

// routeRule says who may see a route. Public routes skip the guard.
type routeRule struct {
	title    string
	public   bool
	required domain.Role
}

var routes = map[route]routeRule{
	routeLogin:            {title: "Sign in", public: true},
	routeHome:             {title: "Home"},
	routeRestaurants:      {title: "Restaurants"},
	routeRestaurant:       {title: "Restaurant"},
	routeOrders:           {title: "My orders"},
	routeAdminRestaurants: {title: "Manage restaurants", required: domain.RoleAdmin},
	routeAddMenuItem:      {title: "Add menu item", required: domain.RoleManager},
}

// navigateMsg asks the app to switch routes.
type navigateMsg struct {
	to           route
	restaurantID int64
	notice       string
}

func navigate(to route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}

// sessionReadyMsg follows the one-time session initialization.
type sessionReadyMsg struct{}

// sessionEventMsg carries a session transition from the listener.
type sessionEventMsg struct {
	event session.Event
}

// App is the root Bubbletea model.
type App struct {
	client  *client.Client
	session *session.Session
	events  <-chan session.Event
	apiURL  string

	route       route
	restaurant  restaurantModel
	login       loginModel
	home        homeModel
	restaurants restaurantsModel
	orders      ordersModel
	admin       adminModel
	menuItem    menuItemModel

	helpOpen bool
	notice   string
	width    int
	height   int
	frame    int // logo shimmer animation frame
}

// NewApp creates the TUI. events delivers session transitions, including
// invalidations raised by the transport; it may be nil.
func NewApp(c *client.Client, s *session.Session, events <-chan session.Event, apiURL string) App {
	return App{
		client:      c,
		session:     s,
		events:      events,
		apiURL:      apiURL,
		route:       routeHome,
		login:       newLoginModel(s),
		home:        newHomeModel(s),
		restaurants: newRestaurantsModel(c),
		restaurant:  newRestaurantModel(c, s, 0),
		orders:      newOrdersModel(c, s),
		admin:       newAdminModel(c),
		menuItem:    newMenuItemModel(c),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.initSession(), a.listen(), shimmerTickCmd())
}

func (a App) initSession() tea.Cmd {
	s := a.session
	return func() tea.Msg {
		s.Init()
		return sessionReadyMsg{}
	}
}

// listen waits for the next session event. It is re-armed after each one.
func (a App) listen() tea.Cmd {
	if a.events == nil {
		return nil
	}
	ch := a.events
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return sessionEventMsg{event: e}
	}
}

func (a App) state() session.State {
	if a.session == nil {
		return session.State{}
	}
	return a.session.State()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case sessionReadyMsg:
		return a.enter(a.route)

	case sessionEventMsg:
		next := a.listen()
		switch msg.event {
		case session.EventSignedIn:
			a.notice = ""
			m, cmd := a.enter(routeHome)
			return m, tea.Batch(cmd, next)
		case session.EventSignedOut:
			a.notice = "signed out"
		case session.EventInvalidated:
			a.notice = "your session has ended, please sign in again"
		}
		m, cmd := a.enter(routeLogin)
		return m, tea.Batch(cmd, next)

	case navigateMsg:
		if msg.to == routeRestaurant {
			a.restaurant = newRestaurantModel(a.client, a.session, msg.restaurantID)
		}
		a.notice = msg.notice
		return a.enter(msg.to)

	case loginResultMsg:
		// With a listener, EventSignedIn drives navigation instead.
		if msg.err == nil && a.events == nil {
			return a.enter(routeHome)
		}

	case logoutMsg:
		if a.session != nil {
			a.session.Logout()
		}
		// Without a listener nobody hears EventSignedOut.
		if a.events == nil {
			a.notice = "signed out"
			return a.enter(routeLogin)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.helpOpen {
			switch msg.String() {
			case "?", "esc":
				a.helpOpen = false
			case "q":
				return a, tea.Quit
			}
			return a, nil
		}
		if !a.isEditing() {
			if m, cmd, handled := a.globalKey(msg.String()); handled {
				return m, cmd
			}
		} else if msg.String() == "esc" && a.route == routeAddMenuItem {
			return a.enter(routeHome)
		}
	}

	var cmd tea.Cmd
	switch a.route {
	case routeLogin:
		a.login, cmd = a.login.Update(msg)
	case routeHome:
		a.home, cmd = a.home.Update(msg)
	case routeRestaurants:
		a.restaurants, cmd = a.restaurants.Update(msg)
	case routeRestaurant:
		a.restaurant, cmd = a.restaurant.Update(msg)
	case routeOrders:
		a.orders, cmd = a.orders.Update(msg)
	case routeAdminRestaurants:
		a.admin, cmd = a.admin.Update(msg)
	case routeAddMenuItem:
		a.menuItem, cmd = a.menuItem.Update(msg)
	}
	return a, cmd
}

// globalKey handles navigation keys shared by every non-editing view.
func (a App) globalKey(key string) (App, tea.Cmd, bool) {
	var to route
	switch key {
	case "q":
		return a, tea.Quit, true
	case "?":
		a.helpOpen = true
		return a, nil, true
	case "1":
		to = routeHome
	case "2":
		to = routeRestaurants
	case "3":
		to = routeOrders
	case "4":
		to = routeAdminRestaurants
	case "5":
		to = routeAddMenuItem
	case "esc":
		if a.route == routeHome || a.route == routeLogin {
			return a, nil, false
		}
		to = routeHome
		if a.route == routeRestaurant {
			to = routeRestaurants
		}
	default:
		return a, nil, false
	}
	if a.route == routeLogin {
		return a, nil, false
	}
	a.notice = ""
	m, cmd := a.enter(to)
	return m, cmd, true
}

// enter switches to r after running the guard, following any redirect.
// The guard runs on every navigation and every session event.
func (a App) enter(r route) (App, tea.Cmd) {
	r, ok := a.resolve(r)
	if !ok {
		return a, nil
	}
	a.route = r

	switch r {
	case routeLogin:
		a.login = newLoginModel(a.session)
		return a, nil
	case routeHome:
		a.home = newHomeModel(a.session)
		return a, a.home.Init()
	case routeRestaurants:
		a.restaurants = newRestaurantsModel(a.client)
		return a, a.restaurants.Init()
	case routeRestaurant:
		return a, a.restaurant.Init()
	case routeOrders:
		a.orders = newOrdersModel(a.client, a.session)
		return a, a.orders.Init()
	case routeAdminRestaurants:
		a.admin = newAdminModel(a.client)
		return a, a.admin.Init()
	case routeAddMenuItem:
		a.menuItem = newMenuItemModel(a.client)
		return a, a.menuItem.Init()
	}
	return a, nil
}

// resolve applies the guard to r and returns where the user should land.
// It reports false while the session is still loading, in which case the
// current route stays put.
func (a App) resolve(r route) (route, bool) {
	rule := routes[r]
	st := a.state()
	if rule.public {
		// A signed-in user has no business on the login form.
		if r == routeLogin && !st.Loading && st.Authenticated() {
			return routeHome, true
		}
		return r, true
	}
	switch session.Check(st, rule.required) {
	case session.DecisionWait:
		return a.route, false
	case session.DecisionRedirectLogin:
		return routeLogin, true
	case session.DecisionRedirectHome:
		return routeHome, true
	}
	return r, true
}

func (a App) isEditing() bool {
	switch a.route {
	case routeLogin, routeAddMenuItem:
		return true
	case routeAdminRestaurants:
		return a.admin.formOpen
	}
	return false
}

func (a App) View() string {
	logo := renderShimmerLogo(a.frame)
	st := a.state()

	logoPad := (a.width - lipgloss.Width(logo)) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo

	var who string
	if st.Identity != nil {
		who = normalStyle.Render(st.Identity.Username) + " " + RoleBadge(st.Identity.Role)
		if name := domain.CountryName(st.Identity.CountryID); name != "" {
			who += " " + metaStyle.Render(name)
		}
	}
	title := sectionHeaderStyle.Render(routes[a.route].title)
	header += "\n " + title
	if who != "" {
		gap := a.width - lipgloss.Width(title) - lipgloss.Width(who) - 2
		if gap < 2 {
			gap = 2
		}
		header += strings.Repeat(" ", gap) + who
	}

	var body, help string
	switch {
	case st.Loading && !routes[a.route].public:
		// Nothing is decided until the session is known.
		body = "\n " + dimStyle.Render("loading session...")
		help = helpBar("q", "quit")
	case a.helpOpen:
		body = helpView(a.apiURL)
		help = helpBar("esc", "close")
	default:
		body, help = a.routeView()
	}

	if a.notice != "" {
		body = " " + accentStyle.Render(a.notice) + "\n" + body
	}

	// Chrome: header(2) + blank(1) + help(1)
	chrome := 4
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n\n%s\n%s", header, body, help)
}

func (a App) routeView() (string, string) {
	nav := []string{"1-5", "go", "?", "help", "q", "quit"}
	switch a.route {
	case routeLogin:
		return a.login.View(), helpBar("tab", "next", "enter", "sign in", "ctrl+c", "quit")
	case routeHome:
		return a.home.View(), helpBar(append([]string{"j/k", "nav", "enter", "open"}, nav...)...)
	case routeRestaurants:
		return a.restaurants.View(), helpBar(append([]string{"j/k", "nav", "enter", "menu", "r", "refresh"}, nav...)...)
	case routeRestaurant:
		return a.restaurant.View(), helpBar(a.restaurant.helpKeys()...)
	case routeOrders:
		return a.orders.View(), helpBar(append(a.orders.helpKeys(), nav...)...)
	case routeAdminRestaurants:
		return a.admin.View(), helpBar(a.admin.helpKeys()...)
	case routeAddMenuItem:
		return a.menuItem.View(), helpBar("tab", "next", "h/l", "cycle", "ctrl+s", "save", "esc", "back")
	}
	return "", ""
}
