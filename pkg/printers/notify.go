package printers

import (
	"github.com/fatih/color"
)

// Toast prints mutation outcomes the way the web client pops toasts.
type Toast struct{}

func (Toast) Success(msg string) {
	g := color.New(color.FgGreen)
	_, _ = g.Fprintf(color.Output, "✔ %s\n", msg)
}

func (Toast) Error(msg string) {
	r := color.New(color.FgRed, color.Bold)
	_, _ = r.Fprintf(color.Error, "✘ %s\n", msg)
}
