package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/dayindex"
)

// gridStyles controls month grid styling.
type gridStyles struct {
	Header   lipgloss.Style
	Empty    lipgloss.Style
	Busy     lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
}

func defaultGridStyles() gridStyles {
	return gridStyles{
		Header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Busy:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
		Today:    lipgloss.NewStyle().Underline(true),
		Selected: lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
	}
}

// renderMonth produces the month grid with busy days bold, today underlined
// and the selected day highlighted.
func renderMonth(month, selected, now time.Time, idx *dayindex.Index, styles gridStyles) string {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	todayDay := 0
	if now.Year() == month.Year() && now.Month() == month.Month() {
		todayDay = now.Day()
	}
	selectedDay := 0
	if selected.Year() == month.Year() && selected.Month() == month.Month() {
		selectedDay = selected.Day()
	}

	title := month.Format("January 2006")
	var lines []string
	lines = append(lines, styles.Header.Render(title))
	lines = append(lines, styles.Header.Render("Su Mo Tu We Th Fr Sa"))

	offset := int(first.Weekday())
	totalCells := offset + daysInMonth
	rows := (totalCells + 6) / 7

	for row := 0; row < rows; row++ {
		var cells []string
		for col := 0; col < 7; col++ {
			day := row*7 + col - offset + 1
			if day < 1 || day > daysInMonth {
				cells = append(cells, styles.Empty.Render("  "))
				continue
			}

			date := time.Date(month.Year(), month.Month(), day, 0, 0, 0, 0, month.Location())
			style := styles.Empty
			if len(idx.Lookup(date)) > 0 {
				style = styles.Busy
			}
			if day == todayDay {
				style = style.Inherit(styles.Today)
			}
			if day == selectedDay {
				style = style.Inherit(styles.Selected)
			}
			cells = append(cells, style.Render(fmt.Sprintf("%2d", day)))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	return strings.Join(lines, "\n")
}
