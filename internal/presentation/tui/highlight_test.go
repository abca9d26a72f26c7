package tui

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

const dump = "[\n    [ (A)\n        5,\n        \"hi\"  <---\n    ]\n]"

func TestHighlight_Ascii(t *testing.T) {
	assert.Equal(t, dump, Highlight(dump, termenv.Ascii))
}

func TestHighlight_Colours(t *testing.T) {
	out := Highlight(dump, termenv.TrueColor)

	assert.Contains(t, out, "\x1b[")
	assert.Equal(t, strings.Count(dump, "\n"), strings.Count(out, "\n"))

	lines := strings.Split(out, "\n")
	assert.True(t, strings.HasPrefix(lines[1], "    "), "indent is preserved: %q", lines[1])
	assert.Contains(t, lines[1], "A")
	assert.Contains(t, lines[3], `"hi"`)
	assert.Contains(t, lines[3], pointerMarker)
	assert.Equal(t, "        5,", lines[2], "plain leaves are untouched")
}
