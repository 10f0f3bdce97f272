package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/synrais/padkeys/pkg/input"
	"github.com/synrais/padkeys/pkg/keys"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

func bannerText(info input.DeviceInfo, layout keys.Layout) (title, body string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Controller: %s\n", info.Name)
	fmt.Fprintf(&b, "Path:       %s\n", info.Path)
	if info.GUID != "" {
		fmt.Fprintf(&b, "GUID:       %s\n", info.GUID)
	}
	fmt.Fprintf(&b, "Axes: %d  Buttons: %d  Hats: %d\n\n", info.Axes, info.Buttons, info.Hats)

	fmt.Fprintf(&b, "D-pad / left stick  ->  %s %s %s %s\n",
		layout.Label(keys.Up), layout.Label(keys.Left), layout.Label(keys.Down), layout.Label(keys.Right))
	fmt.Fprintf(&b, "Buttons 0-3         ->  %s %s %s %s\n",
		layout.Label(keys.Up), layout.Label(keys.Down), layout.Label(keys.Left), layout.Label(keys.Right))
	fmt.Fprintf(&b, "Buttons 4, 5        ->  %s\n", layout.Label(keys.Confirm))
	b.WriteString("Ctrl+C to quit")
	return "padkeys: " + layout.String(), b.String()
}

// printBanner styles the banner only when out is a terminal.
func printBanner(out io.Writer, info input.DeviceInfo, layout keys.Layout) {
	title, body := bannerText(info, layout)
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintln(out, boxStyle.Render(titleStyle.Render(title)+"\n\n"+body))
		return
	}
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, body)
}
