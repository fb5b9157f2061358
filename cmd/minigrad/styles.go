package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// styles renders the PASS/FAIL labels of the CLI output. Colors are only
// emitted when w is a terminal that supports them.
type styles struct {
	pass, fail lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	var opts []termenv.OutputOption
	if !color {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	r := lipgloss.NewRenderer(w, opts...)
	return styles{
		pass: r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		fail: r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	}
}
