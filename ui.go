package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	okColor  = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	errColor = lipgloss.AdaptiveColor{Light: "#770000", Dark: "#FF5F5F"}
)

type palette struct {
	ok       lipgloss.Style
	err      lipgloss.Style
	address  lipgloss.Style
	hostname lipgloss.Style
}

func newPalette(color bool) palette {
	if !color {
		plain := lipgloss.NewStyle()
		return palette{ok: plain, err: plain, address: plain, hostname: plain}
	}
	return palette{
		ok:       lipgloss.NewStyle().Foreground(okColor),
		err:      lipgloss.NewStyle().Foreground(errColor),
		address:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		hostname: lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),
	}
}

func (p palette) entry(address, hostname string) string {
	return p.address.Render(address) + " " + p.hostname.Render(hostname)
}

func (p palette) success(w io.Writer, msg, address, hostname string) {
	fmt.Fprintln(w, p.ok.Render(msg+":")+" "+p.entry(address, hostname))
}

func (p palette) failure(w io.Writer, err error) {
	fmt.Fprintln(w, p.err.Render(err.Error()))
}
