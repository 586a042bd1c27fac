package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/foodcourt/pkg/domain"
)

// Shimmer animation for the FOODCOURT logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "FOODCOURT" as a slow wave of warm light,
// deep ember (#5a2a12) to saffron (#fbbf24).
func renderShimmerLogo(frame int) string {
	const text = "FOODCOURT"
	n := len(text)

	var out string
	t := float64(frame)

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)

		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18

		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		r := clampByte(90 + b*(251-90))
		g := clampByte(42 + b*(191-42))
		bl := clampByte(18 + b*(36-18))

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, bl)))
		out += s.Render(string(text[i]))

		if i < n-1 {
			out += " "
		}
	}

	return out
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f59e0b"))

	priceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#34d474"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878")).
				Bold(true)

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f59e0b")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	selectedRowBg = lipgloss.NewStyle().Background(lipgloss.Color("#1e1e2a"))

	categoryColors = map[string]lipgloss.Color{
		domain.CategoryAppetizer:  lipgloss.Color("#f0944a"),
		domain.CategoryMainCourse: lipgloss.Color("#d4a844"),
		domain.CategoryDessert:    lipgloss.Color("#c084e0"),
		domain.CategoryBeverage:   lipgloss.Color("#3ecce4"),
	}

	roleColors = map[domain.Role]lipgloss.Color{
		domain.RoleAdmin:   lipgloss.Color("#f87171"),
		domain.RoleManager: lipgloss.Color("#facc15"),
		domain.RoleMember:  lipgloss.Color("#60a5fa"),
	}

	statusColors = map[domain.OrderStatus]lipgloss.Color{
		domain.OrderPending:   lipgloss.Color("#facc15"),
		domain.OrderConfirmed: lipgloss.Color("#34d474"),
		domain.OrderCancelled: lipgloss.Color("#b45555"),
	}
)

// CategoryStyle returns a bold style colored for a menu category.
func CategoryStyle(category string) lipgloss.Style {
	if c, ok := categoryColors[category]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#606878")).Bold(true)
}

// RoleBadge returns a short colored badge for a role, e.g. "[ADMIN]".
func RoleBadge(role domain.Role) string {
	if role == "" {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("#8890a0")).Bold(true)
	if c, ok := roleColors[role]; ok {
		style = style.Foreground(c)
	}
	return style.Render("[" + role.String() + "]")
}

// statusStyle returns the style for an order status.
func statusStyle(status domain.OrderStatus) lipgloss.Style {
	if c, ok := statusColors[status]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return dimStyle
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpBar joins help entries given as key, label pairs.
func helpBar(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, helpEntry(pairs[i], pairs[i+1]))
	}
	return " " + strings.Join(parts, "  ")
}

// helpView renders the help overlay.
func helpView(apiURL string) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fbbf24")).
		Bold(true).
		Render("F O O D C O U R T")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)

	commands := []struct{ cmd, desc string }{
		{"foodcourt", "Open the interactive client"},
		{"foodcourt login", "Sign in from the command line"},
		{"foodcourt logout", "Clear the stored session"},
		{"foodcourt whoami", "Show the signed-in account"},
		{"foodcourt version", "Show version"},
	}
	keys := []struct{ key, desc string }{
		{"1", "Home"},
		{"2", "Restaurants"},
		{"3", "My orders"},
		{"4", "Manage restaurants (admin)"},
		{"5", "Add menu item (manager)"},
		{"esc", "Back"},
		{"q", "Quit"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n  %s\n\n", title, descStyle.Render(apiURL))

	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}

	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Keys"))
	for _, k := range keys {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", k.key)), descStyle.Render(k.desc))
	}
	return b.String()
}
