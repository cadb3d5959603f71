package display

import (
	"fmt"
	"os"

	"github.com/backmassage/camconv/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, `  ____                 ____
 / ___|__ _ _ __ ___  / ___|___  _ ____   __
| |   / _`+"`"+` | '_ `+"`"+` _ \| |   / _ \| '_ \ \ / /
| |__| (_| | | | | | | |__| (_) | | | \ V /
 \____\__,_|_| |_| |_|\____\___/|_| |_|\_/
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
