package davit

import (
	"fmt"
	"html/template"
	"strings"
)

// ViewToHTML converts a lipgloss-styled console view into HTML for
// embedding in a session report. Basic SGR colour and bold sequences
// become spans; any other escape sequences are dropped.
func ViewToHTML(view string) template.HTML {
	if strings.TrimSpace(stripANSI(view)) == "" {
		return template.HTML(`<div style="color: #666;">No console output captured</div>`)
	}
	return template.HTML(convertANSIToHTML(view))
}

// sgrColors maps the standard 30-37 foreground codes to CSS colours
// readable on the report's dark console background.
var sgrColors = map[int]string{
	30: "#6b7280", // black, lifted for visibility
	31: "#f87171",
	32: "#4ade80",
	33: "#facc15",
	34: "#60a5fa",
	35: "#c084fc",
	36: "#22d3ee",
	37: "#e5e7eb",
}

// convertANSIToHTML walks the view with a small state machine, opening
// and closing spans as SGR parameters change.
func convertANSIToHTML(text string) string {
	var result strings.Builder
	var openSpan bool

	i := 0
	for i < len(text) {
		char := text[i]

		if char == '\r' {
			i++
			continue
		}

		if char == 0x1b && i+1 < len(text) && text[i+1] == '[' {
			// Collect parameters up to the final byte.
			j := i + 2
			for j < len(text) && (text[j] == ';' || (text[j] >= '0' && text[j] <= '9')) {
				j++
			}
			if j < len(text) && text[j] == 'm' {
				if openSpan {
					result.WriteString("</span>")
					openSpan = false
				}
				if style := sgrStyle(text[i+2 : j]); style != "" {
					result.WriteString(fmt.Sprintf(`<span style="%s">`, style))
					openSpan = true
				}
				i = j + 1
				continue
			}
			// Not an SGR sequence; skip past the final byte.
			if j < len(text) {
				j++
			}
			i = j
			continue
		}

		switch char {
		case '<':
			result.WriteString("&lt;")
		case '>':
			result.WriteString("&gt;")
		case '&':
			result.WriteString("&amp;")
		case '\n':
			result.WriteString("\n")
		default:
			result.WriteByte(char)
		}
		i++
	}

	if openSpan {
		result.WriteString("</span>")
	}
	return result.String()
}

// sgrStyle converts an SGR parameter list like "1;31" into inline CSS.
// A reset (empty or "0") returns the empty string.
func sgrStyle(params string) string {
	var styles []string
	for _, p := range strings.Split(params, ";") {
		switch {
		case p == "" || p == "0":
			return ""
		case p == "1":
			styles = append(styles, "font-weight: bold")
		case p == "4":
			styles = append(styles, "text-decoration: underline")
		default:
			var code int
			if _, err := fmt.Sscanf(p, "%d", &code); err == nil {
				if color, ok := sgrColors[code]; ok {
					styles = append(styles, "color: "+color)
				}
			}
		}
	}
	return strings.Join(styles, "; ")
}

// stripANSI removes every escape sequence, leaving plain text.
func stripANSI(text string) string {
	var result strings.Builder
	i := 0
	for i < len(text) {
		if text[i] == 0x1b && i+1 < len(text) && text[i+1] == '[' {
			j := i + 2
			for j < len(text) && (text[j] == ';' || (text[j] >= '0' && text[j] <= '9')) {
				j++
			}
			if j < len(text) {
				j++ // Final byte
			}
			i = j
			continue
		}
		result.WriteByte(text[i])
		i++
	}
	return result.String()
}
