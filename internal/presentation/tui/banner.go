package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`     _                       _          `, "#818cf8"},
	{` ___| |_ ___ _ ____      __(_)___  ___ `, "#a78bfa"},
	{`/ __| __/ _ \ '_ \ \ /\ / /| / __|/ _ \`, "#c084fc"},
	{`\__ \ ||  __/ |_) \ V  V / | \__ \  __/`, "#e879f9"},
	{`|___/\__\___| .__/ \_/\_/  |_|___/\___|`, "#f472b6"},
	{`             |_|                        `, "#fb7185"},
}

// PrintBanner writes the stepwise banner followed by the form title.
func PrintBanner(w io.Writer, title string) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	if title != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, out.String(title).Bold())
	}
	fmt.Fprintln(w)
}

// HeaderStyle returns a function that colors step headers for w. Plain
// writers get the header unchanged.
func HeaderStyle(w io.Writer) func(string) string {
	out := termenv.NewOutput(w)
	return func(s string) string {
		return out.String(s).Foreground(out.Color("#a78bfa")).Bold().String()
	}
}
