// Package console drives a combat session over a line-based terminal.
package console

import "fmt"

// ANSI escape codes used by the console renderer.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"

	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightBlue   = "\033[94m"
	BrightCyan   = "\033[96m"
	BrightWhite  = "\033[97m"
)

// Colorize wraps text with the given ANSI color code and a reset suffix.
//
// Precondition: color must be a valid ANSI escape sequence.
// Postcondition: Returns text wrapped with the color code and Reset.
func Colorize(color, text string) string {
	return color + text + Reset
}

// StripANSI removes all ANSI escape sequences from a string.
//
// Postcondition: Returns text with all \033[...m sequences removed.
func StripANSI(s string) string {
	result := make([]byte, 0, len(s))
	i := 0
	for i < len(s) {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && s[j] != 'm' {
				j++
			}
			if j < len(s) {
				i = j + 1
				continue
			}
		}
		result = append(result, s[i])
		i++
	}
	return string(result)
}

// Styler applies colors only when Enabled, so the same renderer serves
// terminals and plain pipes.
type Styler struct {
	Enabled bool
}

// Paint colors text when s is enabled and returns it unchanged otherwise.
func (s Styler) Paint(color, text string) string {
	if !s.Enabled {
		return text
	}
	return Colorize(color, text)
}

// Paintf formats and paints.
func (s Styler) Paintf(color, format string, args ...interface{}) string {
	return s.Paint(color, fmt.Sprintf(format, args...))
}
