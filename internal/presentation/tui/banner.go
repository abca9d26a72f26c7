package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the inkling banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	// Using a subtle gradient-like color scheme (Teal/Indigo)
	lines := []struct {
		text  string
		color string
	}{
		{" _       _    _ _             ", "#2dd4bf"},
		{"(_)_ __ | | _| (_)_ __   __ _ ", "#22d3ee"},
		{"| | '_ \\| |/ / | | '_ \\ / _` |", "#38bdf8"},
		{"| | | | |   <| | | | | | (_| |", "#60a5fa"},
		{"|_|_| |_|_|\\_\\_|_|_| |_|\\__, |", "#818cf8"},
		{"                         |___/ ", "#a78bfa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
