package tui

import (
	"regexp"
	"strings"

	"github.com/muesli/termenv"
)

const pointerMarker = "<---"

var (
	quotedRe    = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)
	containerRe = regexp.MustCompile(`^(\s*)\[( \(([^)]*)\))?`)
)

// Highlight colours a hierarchy dump for the terminal: container brackets and
// names, quoted text and the pointer marker. With the Ascii profile the text
// is returned unchanged.
func Highlight(dump string, p termenv.Profile) string {
	if p == termenv.Ascii {
		return dump
	}

	lines := strings.Split(dump, "\n")
	for i, line := range lines {
		lines[i] = highlightLine(line, p)
	}
	return strings.Join(lines, "\n")
}

func highlightLine(line string, p termenv.Profile) string {
	marker := ""
	if strings.HasSuffix(line, pointerMarker) {
		line = strings.TrimSuffix(line, pointerMarker)
		marker = termenv.String(pointerMarker).Foreground(p.Color("#facc15")).Bold().String()
	}

	if m := containerRe.FindStringSubmatchIndex(line); m != nil {
		indent := line[m[2]:m[3]]
		head := termenv.String("[").Foreground(p.Color("#94a3b8")).String()
		if m[6] >= 0 {
			name := termenv.String(line[m[6]:m[7]]).Foreground(p.Color("#22d3ee")).Bold().String()
			head += " (" + name + ")"
		}
		return indent + head + line[m[1]:] + marker
	}

	line = quotedRe.ReplaceAllStringFunc(line, func(s string) string {
		return termenv.String(s).Foreground(p.Color("#4ade80")).String()
	})
	return line + marker
}
