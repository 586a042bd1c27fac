package main

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/lipgloss"
)

var signedOutGreetings = [...]string{
	"The kitchen is open. The door is locked. You have the key somewhere.",
	"Somebody just ordered the last samosa. Could have been you.",
	"The menu is long and your session is short. Twenty-four hours, to be exact.",
	"Nothing in your cart. Nothing in your history. Let's fix both.",
	"The chefs do not take orders from strangers.",
	"Your usual table is waiting. Sign in to claim it.",
	"Every order starts the same way. With a password.",
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)
	quoteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA"))
)

func printBanner(w io.Writer) {
	fmt.Fprintf(w, "\n  %s\n", titleStyle.Render("F O O D C O U R T"))
}

func printSignedOut(w io.Writer) {
	msg := signedOutGreetings[rand.IntN(len(signedOutGreetings))]

	printBanner(w)
	fmt.Fprintf(w, "\n  %s\n\n  %s\n\n", quoteStyle.Render(msg), hintStyle.Render("Not signed in. To enter: foodcourt login"))
}

func success(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", successStyle.Render("✓"), msg)
}

func info(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", infoStyle.Render("→"), msg)
}
