package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the deduce ASCII banner followed by the version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"     _          _                 ", "#34d399"},
		{"  __| | ___  __| |_   _  ___ ___  ", "#2dd4bf"},
		{" / _` |/ _ \\/ _` | | | |/ __/ _ \\ ", "#22d3ee"},
		{"| (_| |  __/ (_| | |_| | (_|  __/ ", "#38bdf8"},
		{" \\__,_|\\___|\\__,_|\\__,_|\\___\\___| ", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	}
	fmt.Fprintln(w)
}
